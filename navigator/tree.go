package navigator

import "sort"

// anyScope is the type-erased view of a Scope[T] used by tree traversal, so
// scopes with different value types can nest in one tree.
type anyScope interface {
	active() bool
	childScopes() []anyScope
	parentScope() anyScope
	registerChild(c anyScope)
	unregisterChild(c anyScope)
	notifyListeners(ev Event)
	priority() *int
	sched() *Scheduler
	popFlag() *Flag

	// Implemented by the typed Scope layer.
	popLocal() bool
	shallowCanPop() bool
}

// node carries the tree mechanics shared by every Scope regardless of value
// type: non-owning parent/child links, activity flags, pop priority, and the
// per-tree scheduler and can-pop flag inherited from the root.
type node struct {
	self      anyScope
	parent    anyScope
	children  []anyScope
	enabled   bool
	topmost   bool
	popPri    *int
	scheduler *Scheduler
	flag      *Flag

	listeners    map[int]EventListener
	nextListener int
}

// active reports whether this scope is currently eligible for pops: enabled,
// topmost within its parent's presentation, and every ancestor active. It is
// re-derived on every call; caching it would go stale on ancestor changes.
func (n *node) active() bool {
	if !n.enabled || !n.topmost {
		return false
	}
	if n.parent == nil {
		return true
	}
	return n.parent.active()
}

func (n *node) childScopes() []anyScope { return n.children }
func (n *node) parentScope() anyScope { return n.parent }
func (n *node) priority() *int { return n.popPri }
func (n *node) sched() *Scheduler { return n.scheduler }
func (n *node) popFlag() *Flag { return n.flag }

// registerChild appends c to the child set. Registration order is preserved
// and breaks pop-priority ties.
func (n *node) registerChild(c anyScope) {
	for _, existing := range n.children {
		if existing == c {
			return
		}
	}
	n.children = append(n.children, c)
}

func (n *node) unregisterChild(c anyScope) {
	for i, existing := range n.children {
		if existing == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

func (n *node) notifyListeners(ev Event) {
	for _, fn := range n.listeners {
		fn(ev)
	}
}

// OnEvent registers a listener for this scope's events and those of every
// descendant. Returns a cancel func.
func (n *node) OnEvent(fn EventListener) (cancel func()) {
	if n.listeners == nil {
		n.listeners = make(map[int]EventListener)
	}
	id := n.nextListener
	n.nextListener++
	n.listeners[id] = fn
	return func() { delete(n.listeners, id) }
}

// Scheduler returns the tree's deferred task queue. The host flushes it once
// per frame, after its update pass.
func (n *node) Scheduler() *Scheduler { return n.scheduler }

// CanPopFlag returns the tree-wide observable "can anything pop" flag owned
// by the root scope.
func (n *node) CanPopFlag() *Flag { return n.flag }

// SetEnabled toggles the manual pop-eligibility kill switch.
func (n *node) SetEnabled(enabled bool) {
	if n.enabled == enabled {
		return
	}
	n.enabled = enabled
	n.scheduleRecompute()
}

// SetTopmost records the host's "currently presented on top" signal. An
// occluded scope leaves its parent's child set without being destroyed and
// rejoins it (at the end of registration order) when presented again.
func (n *node) SetTopmost(topmost bool) {
	if n.topmost == topmost {
		return
	}
	n.topmost = topmost
	if n.parent != nil {
		if topmost {
			n.parent.registerChild(n.self)
		} else {
			n.parent.unregisterChild(n.self)
		}
	}
	n.scheduleRecompute()
}

// scheduleRecompute queues a full recomputation of the tree-wide can-pop
// flag. Recomputations are coalesced per frame and always run against the
// live tree; incremental updates would go stale on structural changes.
func (n *node) scheduleRecompute() {
	scheduleRecompute(n.self, n.scheduler, n.flag)
}

func scheduleRecompute(from anyScope, sch *Scheduler, flag *Flag) {
	if from == nil || sch == nil || flag == nil {
		return
	}
	root := from
	for root.parentScope() != nil {
		root = root.parentScope()
	}
	sch.DeferKeyed("canpop", func() { flag.set(treeCanPop(root)) })
}

// dispatchUp invokes listeners on this scope and each ancestor in turn.
func dispatchUp(s anyScope, ev Event) {
	for cur := s; cur != nil; cur = cur.parentScope() {
		cur.notifyListeners(ev)
	}
}

// levels serializes the active subtree under s into depth-major order:
// level 0 is [s], level k+1 concatenates the children's level k results in
// registration order. An inactive scope contributes nothing, for itself or
// its descendants.
func levels(s anyScope) [][]anyScope {
	if !s.active() {
		return nil
	}
	out := [][]anyScope{{s}}
	for _, c := range s.childScopes() {
		for i, lv := range levels(c) {
			for len(out) <= i+1 {
				out = append(out, nil)
			}
			out[i+1] = append(out[i+1], lv...)
		}
	}
	return out
}

// treePop resolves one pop request against the subtree rooted at s: deepest
// level first, within a level by ascending PopPriority with nil priority
// last and ties broken by encounter order. The first scope whose local pop
// succeeds wins. Returns false when nothing in the subtree could pop; the
// caller should then let the host's default back behavior run.
func treePop(s anyScope) bool {
	lv := levels(s)
	for i := len(lv) - 1; i >= 0; i-- {
		candidates := make([]anyScope, len(lv[i]))
		copy(candidates, lv[i])
		sort.SliceStable(candidates, func(a, b int) bool {
			pa, pb := candidates[a].priority(), candidates[b].priority()
			switch {
			case pa == nil:
				return false
			case pb == nil:
				return true
			default:
				return *pa < *pb
			}
		})
		for _, c := range candidates {
			if c.popLocal() {
				return true
			}
		}
	}
	return false
}

// treeCanPop reports whether any active scope in the subtree under s has
// more than one page. Always computed over the live tree.
func treeCanPop(s anyScope) bool {
	if !s.active() {
		return false
	}
	if s.shallowCanPop() {
		return true
	}
	for _, c := range s.childScopes() {
		if treeCanPop(c) {
			return true
		}
	}
	return false
}
