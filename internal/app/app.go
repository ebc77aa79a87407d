package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/atomicstack/tagmaster/internal/auth"
	"github.com/atomicstack/tagmaster/internal/backend"
	"github.com/atomicstack/tagmaster/internal/host"
	"github.com/atomicstack/tagmaster/internal/logging"
	"github.com/atomicstack/tagmaster/internal/picker"
	"github.com/atomicstack/tagmaster/internal/settings"
	"github.com/atomicstack/tagmaster/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// rescanInterval re-lists the project root even without change events.
const rescanInterval = 30 * time.Second

// Config describes user-provided application options.
type Config struct {
	ConfigDir      string
	Width          int
	Height         int
	Verbose        bool
	BoxSubjectType string
	BoxSubjectID   string
	BoxTokenURL    string
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	dir := cfg.ConfigDir
	if dir == "" {
		dir = settings.DefaultDir()
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	saved, err := settings.Load(settings.Path(dir))
	if err != nil {
		// a broken settings file should not block startup
		logging.Error(err)
		saved = settings.Settings{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := host.NewManager()
	defer manager.Stop()

	model := ui.NewModel(ui.Options{
		Context: ctx,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Verbose: cfg.Verbose,
		Host:    manager,
		Fetcher: &auth.BoxClient{
			TokenURL:    cfg.BoxTokenURL,
			SubjectType: cfg.BoxSubjectType,
			SubjectID:   cfg.BoxSubjectID,
		},
		Picker: picker.Dialog{Title: "Choose project folder"},
		Watch: func(root string) *backend.Watcher {
			return backend.NewWatcher(root, rescanInterval)
		},
		ConfigDir: dir,
		Settings:  saved,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
