package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/caseycrogers/implicit-navigator/internal/demoui"
	"github.com/caseycrogers/implicit-navigator/navigator"
	"github.com/caseycrogers/implicit-navigator/otelnav"
	"github.com/caseycrogers/implicit-navigator/persist"
	"github.com/caseycrogers/implicit-navigator/persist/badgerstore"
	"github.com/caseycrogers/implicit-navigator/zapnav"
	"go.uber.org/zap"
)

func main() {
	logger := zap.NewNop()
	if os.Getenv("NAVDEMO_DEBUG") != "" {
		var err error
		logger, err = newFileLogger()
		if err != nil {
			fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
			os.Exit(1)
		}
	}
	defer logger.Sync()

	bridge, closeBridge := openBridge(logger)
	defer closeBridge()

	ctx := context.Background()
	tracker, err := otelnav.NewTracker(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tracing: %v\n", err)
		os.Exit(1)
	}
	defer tracker.Shutdown(ctx)

	app := demoui.NewApp(bridge)
	app.OnEvent(zapnav.Listener(logger))
	app.OnEvent(tracker.Listener())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// openBridge keeps section history under the user cache dir so it survives
// restarts. Falls back to an in-process bridge when no cache dir exists.
func openBridge(logger *zap.Logger) (navigator.Bridge, func()) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return persist.NewMemoryBridge(), func() {}
	}
	cfg := badgerstore.DefaultConfig(filepath.Join(cache, "navdemo"))
	cfg.Logger = logger
	store, err := badgerstore.Open(cfg)
	if err != nil {
		// A locked or corrupt store should not keep the demo from running.
		return persist.NewMemoryBridge(), func() {}
	}
	return store, func() { store.Close() }
}

func newFileLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"navdemo.log"}
	cfg.ErrorOutputPaths = []string{"navdemo.log"}
	return cfg.Build()
}
