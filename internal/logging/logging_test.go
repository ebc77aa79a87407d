package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTraceAndErrorWriteToConfiguredFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tagmaster.log")
	Configure(path)
	SetTraceEnabled(true)
	t.Cleanup(func() {
		SetTraceEnabled(false)
		Configure("")
	})

	Trace("test.event", map[string]interface{}{"n": 1})
	Error(errors.New("boom"))
	if err := Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", lines)
	}
	var entry struct {
		Event string `json:"event"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil || entry.Event != "test.event" {
		t.Fatalf("expected trace entry, got %q (%v)", lines[0], err)
	}
	if !strings.HasSuffix(lines[1], "boom") {
		t.Fatalf("expected error line, got %q", lines[1])
	}
}

func TestTraceDisabledWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiet.log")
	Configure(path)
	SetTraceEnabled(false)
	t.Cleanup(func() { Configure("") })

	Trace("ignored", nil)
	_ = Close()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file, got %v", err)
	}
}
