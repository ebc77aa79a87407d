// Package settings persists program settings to settings.yaml in the config
// directory:
//
//	Config: ~/.config/tagmaster/settings.yaml (override: TAGMASTER_CONFIG_DIR)
//	Tokens: ~/.config/tagmaster/auth.json
package settings

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/atomicstack/tagmaster/internal/atomicfile"
)

// FileName is the settings file inside the config directory.
const FileName = "settings.yaml"

// MaxRecent bounds the recent project list.
const MaxRecent = 10

// DefaultDir resolves the config directory. An empty result never occurs;
// without a home directory the working directory is used.
func DefaultDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "tagmaster")
	}
	return "."
}

// Path returns the settings file inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Recent is a previously opened project.
type Recent struct {
	Name     string    `yaml:"name"`
	Kind     string    `yaml:"kind"`
	Location string    `yaml:"location"`
	OpenedAt time.Time `yaml:"opened_at"`
}

// Settings is the persisted program state. The Box secret is never stored.
type Settings struct {
	BoxKey string   `yaml:"box_key,omitempty"`
	Recent []Recent `yaml:"recent,omitempty"`
}

// Load reads path. A missing file yields empty settings.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
	}
	s.Recent = normalise(s.Recent)
	return s, nil
}

// Save writes s to path atomically.
func Save(path string, s Settings) error {
	err := atomicfile.Write(path, func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode settings: %w", err)
		}
		return enc.Close()
	})
	if err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Remember moves r to the front of the recent list.
func (s *Settings) Remember(r Recent) {
	s.Recent = normalise(append([]Recent{r}, s.Recent...))
}

// Forget drops the recent entry at location.
func (s *Settings) Forget(kind, location string) bool {
	for i, r := range s.Recent {
		if r.Kind == kind && r.Location == location {
			s.Recent = append(s.Recent[:i:i], s.Recent[i+1:]...)
			return true
		}
	}
	return false
}

func normalise(list []Recent) []Recent {
	seen := make(map[string]struct{}, len(list))
	out := make([]Recent, 0, len(list))
	for _, r := range list {
		r.Name = strings.TrimSpace(r.Name)
		r.Location = strings.TrimSpace(r.Location)
		if r.Name == "" || r.Location == "" {
			continue
		}
		key := r.Kind + "\x00" + r.Location
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
		if len(out) == MaxRecent {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
