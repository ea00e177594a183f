package demoui

import (
	"fmt"
	"strings"

	"github.com/caseycrogers/implicit-navigator/navigator"
)

// Breadcrumbs renders a one-line trail of recent navigation transitions. It
// is fed by the event stream rather than the stacks themselves, the way an
// ancestor breadcrumb display would be in a real app.
type Breadcrumbs struct {
	trail []string
	max   int
}

// NewBreadcrumbs creates a breadcrumb tracker keeping the last max steps.
func NewBreadcrumbs(max int) *Breadcrumbs {
	if max <= 0 {
		max = 5
	}
	return &Breadcrumbs{max: max}
}

// Listener returns the event listener to register on the root scope.
func (b *Breadcrumbs) Listener() navigator.EventListener {
	return func(ev navigator.Event) {
		switch e := ev.(type) {
		case navigator.PushEvent:
			b.add(fmt.Sprintf("%v", e.NewValue))
		case navigator.PopEvent:
			b.add(fmt.Sprintf("back to %v", e.CurrentValue))
		}
	}
}

func (b *Breadcrumbs) add(step string) {
	b.trail = append(b.trail, step)
	if len(b.trail) > b.max {
		b.trail = b.trail[len(b.trail)-b.max:]
	}
}

// View renders the trail, oldest step first.
func (b *Breadcrumbs) View() string {
	if len(b.trail) == 0 {
		return Styles.Crumb.Render("·")
	}
	return Styles.Crumb.Render(strings.Join(b.trail, " › "))
}

// Steps returns a copy of the current trail.
func (b *Breadcrumbs) Steps() []string {
	out := make([]string, len(b.trail))
	copy(out, b.trail)
	return out
}
