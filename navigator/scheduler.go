package navigator

// Scheduler defers work until after the current batch of mutations. Pushes
// and pops queue their event dispatch and can-pop recomputation here so that
// listeners never observe the tree mid-mutation (e.g. a parent that has not
// yet registered a just-mounted child). The host calls Flush once per frame,
// after its update pass.
type Scheduler struct {
	tasks []task
}

type task struct {
	key string // "" = never coalesced
	fn  func()
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Defer queues fn to run on the next Flush.
func (s *Scheduler) Defer(fn func()) {
	s.tasks = append(s.tasks, task{fn: fn})
}

// DeferKeyed queues fn under key, replacing any pending task with the same
// key. Used to coalesce redundant recomputations when several scopes mutate
// within one frame.
func (s *Scheduler) DeferKeyed(key string, fn func()) {
	for i := range s.tasks {
		if s.tasks[i].key == key {
			s.tasks[i].fn = fn
			return
		}
	}
	s.tasks = append(s.tasks, task{key: key, fn: fn})
}

// Flush runs all pending tasks in order. Tasks queued while flushing run in
// the same flush, after everything already pending.
func (s *Scheduler) Flush() {
	for len(s.tasks) > 0 {
		t := s.tasks[0]
		s.tasks = s.tasks[1:]
		t.fn()
	}
}

// Pending returns the number of queued tasks.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}
