package config

import (
	"flag"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/atomicstack/tagmaster/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const envPrefix = "TAGMASTER_"

// LoadArgs parses args over the TAGMASTER_* variables found in environ.
// Flags win over the environment; unparsable environment values fall back
// to the flag default.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := newEnvironment(environ)

	fs := flag.NewFlagSet("tagmaster", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	configDir := fs.String("config-dir", env.str("CONFIG_DIR", ""), "directory holding settings.yaml and auth.json (default: user config dir)")
	width := fs.Int("width", env.int("WIDTH", 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", env.int("HEIGHT", 0), "desired viewport height in rows (0 uses terminal height)")
	trace := fs.Bool("trace", env.bool("TRACE", false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", env.bool("VERBOSE", false), "show running tasks in the status line")
	logFile := fs.String("log-file", env.str("LOG_FILE", ""), "path to the log file")
	subjectType := fs.String("box-subject-type", env.str("BOX_SUBJECT_TYPE", "enterprise"), "Box subject type for client credentials (enterprise or user)")
	subjectID := fs.String("box-subject-id", env.str("BOX_SUBJECT_ID", ""), "Box enterprise or user id")
	tokenURL := fs.String("box-token-url", env.str("BOX_TOKEN_URL", ""), "override the Box token endpoint")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	switch *subjectType {
	case "enterprise", "user":
	default:
		return Config{}, fmt.Errorf("box-subject-type must be enterprise or user (got %q)", *subjectType)
	}

	return Config{
		App: app.Config{
			ConfigDir:      *configDir,
			Width:          *width,
			Height:         *height,
			Verbose:        *verbose,
			BoxSubjectType: *subjectType,
			BoxSubjectID:   *subjectID,
			BoxTokenURL:    *tokenURL,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"configDir":      *configDir,
			"width":          strconv.Itoa(*width),
			"height":         strconv.Itoa(*height),
			"trace":          strconv.FormatBool(*trace),
			"verbose":        strconv.FormatBool(*verbose),
			"logFile":        *logFile,
			"boxSubjectType": *subjectType,
			"boxSubjectID":   *subjectID,
			"boxTokenURL":    *tokenURL,
		},
		Args: append([]string(nil), args...),
	}, nil
}

// environment holds the TAGMASTER_* variables with the prefix stripped.
type environment map[string]string

func newEnvironment(environ []string) environment {
	env := environment{}
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if name, found := strings.CutPrefix(key, envPrefix); found && name != "" {
			env[name] = value
		}
	}
	return env
}

func (e environment) str(name, fallback string) string {
	if v, ok := e[name]; ok {
		return v
	}
	return fallback
}

func (e environment) int(name string, fallback int) int {
	v := strings.TrimSpace(e[name])
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func (e environment) bool(name string, fallback bool) bool {
	v := strings.TrimSpace(e[name])
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate checks values that parse but cannot work at runtime.
func Validate(cfg Config) error {
	if u := strings.TrimSpace(cfg.App.BoxTokenURL); u != "" {
		parsed, err := url.Parse(u)
		if err != nil {
			return fmt.Errorf("box-token-url: %w", err)
		}
		if parsed.Scheme != "https" && parsed.Scheme != "http" {
			return fmt.Errorf("box-token-url must be http or https (got %q)", u)
		}
	}
	return nil
}
