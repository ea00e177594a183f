// Package navigator implements declarative stack-based navigation for
// tree-structured UIs.
//
// Core abstractions:
//   - HistoryEntry / HistoryStack: an ordered (depth, value) history for one
//     navigation scope with depth-based truncation on push
//   - Scope: one mounted navigation scope; observes a ChangeSource, pushes
//     on change, reverts state on pop, and nests under a parent Scope
//   - ChangeSource / ValueNotifier: the externally-owned observable value a
//     Scope derives its pages from
//   - Pop coordination: a single back gesture is resolved across the whole
//     scope tree, deepest active scope first, siblings ordered by PopPriority
//   - Flag: the shared observable "can anything pop" boolean owned by the
//     root scope (drives conditional back buttons)
//   - Scheduler: deferred task queue; event dispatch and flag recomputation
//     run after the current batch of mutations
//
// A page that consumes a back gesture itself (a modal dismissing, an
// in-page editor closing) simply does not forward the gesture to Pop; there
// is no separate handled flag.
//
// The package is single-threaded by contract: all mutations (pushes, pops,
// enable/topmost toggles, mount/dispose) must happen on the host UI event
// loop. Bridge implementations are the only collaborators expected to be
// safe for concurrent use.
package navigator
