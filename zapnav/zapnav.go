// Package zapnav provides a zap-backed event listener for structured
// navigation logs. The navigation core itself never logs (stray output
// corrupts terminal UIs); attach this listener only where a log sink is
// safe, e.g. a file-backed logger in a TUI or a service deployment.
package zapnav

import (
	"go.uber.org/zap"

	"github.com/caseycrogers/implicit-navigator/navigator"
)

// Listener returns an event listener that logs pushes and pops at info
// level with structured fields. Register it on the root scope to log the
// whole tree.
func Listener(logger *zap.Logger) navigator.EventListener {
	return func(ev navigator.Event) {
		switch e := ev.(type) {
		case navigator.PushEvent:
			logger.Info("navigation push",
				zap.String("scope", e.Scope),
				zap.Any("from", e.PreviousValue),
				depthField("from_depth", e.PreviousDepth),
				zap.Any("to", e.NewValue),
				depthField("to_depth", e.NewDepth),
			)
		case navigator.PopEvent:
			logger.Info("navigation pop",
				zap.String("scope", e.Scope),
				zap.Any("popped", e.PreviousValue),
				depthField("popped_depth", e.PreviousDepth),
				zap.Any("current", e.CurrentValue),
				depthField("current_depth", e.CurrentDepth),
			)
		}
	}
}

func depthField(key string, depth *int) zap.Field {
	if depth == nil {
		return zap.Skip()
	}
	return zap.Int(key, *depth)
}
