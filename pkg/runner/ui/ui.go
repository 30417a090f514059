package ui

import (
	"context"
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/safesistemas/cejoana/pkg/record"
	"github.com/safesistemas/cejoana/pkg/store"
	"github.com/safesistemas/cejoana/pkg/tui/app"
)

// UI runs the interactive console.
type UI struct {
	Backend store.Backend
	// Start opens an entity directly instead of the menu.
	Start *record.Schema
	// LogFile receives the standard logger while the program owns the
	// terminal. Empty discards logging.
	LogFile string
}

func (u *UI) Do(ctx context.Context) error {
	if u.Backend == nil {
		return fmt.Errorf("can not start ui, no backend")
	}
	if u.LogFile != "" {
		f, err := tea.LogToFile(u.LogFile, "cejoana")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	opts := []app.Option{app.WithContext(ctx)}
	if u.Start != nil {
		opts = append(opts, app.WithStart(u.Start))
	}
	return app.Run(u.Backend, opts...)
}
