package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueNotifier_SetNotifiesOnChange(t *testing.T) {
	n := NewValueNotifier(1)
	var seen []int
	cancel := n.Subscribe(func(v int) { seen = append(seen, v) })
	defer cancel()

	n.Set(2)
	n.Set(2) // no-op
	n.Set(3)

	assert.Equal(t, []int{2, 3}, seen)
	assert.Equal(t, 3, n.Value())
}

func TestValueNotifier_CancelStopsNotifications(t *testing.T) {
	n := NewValueNotifier("a")
	calls := 0
	cancel := n.Subscribe(func(string) { calls++ })
	n.Set("b")
	cancel()
	n.Set("c")
	assert.Equal(t, 1, calls)
}

func TestMap_ProjectsAndDeduplicates(t *testing.T) {
	type state struct {
		Screen string
		Count  int
	}
	src := NewValueNotifier(state{Screen: "home", Count: 0})
	screens := Map(src, func(s state) string { return s.Screen })

	assert.Equal(t, "home", screens.Value())

	var seen []string
	cancel := screens.Subscribe(func(v string) { seen = append(seen, v) })
	defer cancel()

	src.Set(state{Screen: "home", Count: 1}) // projection unchanged
	src.Set(state{Screen: "detail", Count: 1})
	src.Set(state{Screen: "detail", Count: 2}) // projection unchanged

	assert.Equal(t, []string{"detail"}, seen)
	assert.Equal(t, "detail", screens.Value())
}
