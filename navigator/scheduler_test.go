package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_FlushRunsInOrder(t *testing.T) {
	s := NewScheduler()
	var order []int
	s.Defer(func() { order = append(order, 1) })
	s.Defer(func() { order = append(order, 2) })
	assert.Equal(t, 2, s.Pending())

	s.Flush()
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 0, s.Pending())
}

func TestScheduler_DeferKeyedCoalesces(t *testing.T) {
	s := NewScheduler()
	runs := 0
	s.DeferKeyed("recompute", func() { runs++ })
	s.DeferKeyed("recompute", func() { runs++ })
	s.Defer(func() {})
	s.DeferKeyed("recompute", func() { runs++ })

	assert.Equal(t, 2, s.Pending())
	s.Flush()
	assert.Equal(t, 1, runs)
}

func TestScheduler_TasksQueuedDuringFlushRunSameFlush(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.Defer(func() {
		order = append(order, "outer")
		s.Defer(func() { order = append(order, "inner") })
	})
	s.Flush()
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestFlag_NotifiesOnChangeOnly(t *testing.T) {
	f := NewFlag(false)
	var seen []bool
	cancel := f.Subscribe(func(v bool) { seen = append(seen, v) })
	defer cancel()

	f.set(true)
	f.set(true)
	f.set(false)

	assert.Equal(t, []bool{true, false}, seen)
}

func TestFlag_CloseFreezesAtFalse(t *testing.T) {
	f := NewFlag(true)
	notified := false
	f.Subscribe(func(bool) { notified = true })

	f.close()
	assert.False(t, f.Get())

	f.set(true)
	assert.False(t, f.Get())
	assert.False(t, notified)

	// Subscribing after close is a harmless no-op.
	cancel := f.Subscribe(func(bool) {})
	cancel()
}
