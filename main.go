package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/tagmaster/internal/app"
	"github.com/atomicstack/tagmaster/internal/config"
	"github.com/atomicstack/tagmaster/internal/logging"
	"github.com/atomicstack/tagmaster/internal/logging/events"
	"github.com/atomicstack/tagmaster/internal/settings"
	"golang.org/x/term"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Environ()))
}

func run(args, environ []string) int {
	cfg, err := config.LoadArgs(args, environ)
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return exitUsage
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	events.App.Start(startupPayload(cfg, detectTerminal()))

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailed
	}
	return exitOK
}

// startupPayload records what the process was started with. The Box
// subject id is kept; no credential ever reaches this payload.
func startupPayload(cfg config.Config, tty terminalInfo) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	payload := map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    flags,
		"config":   cfg,
		"terminal": tty,
	}
	dir := cfg.App.ConfigDir
	if dir == "" {
		dir = settings.DefaultDir()
	}
	payload["settingsFile"] = settings.Path(dir)
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	return payload
}

// terminalInfo describes the terminal the UI will draw into.
type terminalInfo struct {
	Interactive bool   `json:"interactive"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Error       string `json:"error,omitempty"`
}

// detectTerminal reports stdout's size. Bubble Tea needs both stdin and
// stdout on a terminal to run interactively.
func detectTerminal() terminalInfo {
	in, out := int(os.Stdin.Fd()), int(os.Stdout.Fd())
	info := terminalInfo{Interactive: term.IsTerminal(in) && term.IsTerminal(out)}
	if !term.IsTerminal(out) {
		return info
	}
	width, height, err := term.GetSize(out)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.Width, info.Height = width, height
	return info
}
