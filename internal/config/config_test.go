package config

import "testing"

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("expected defaults to load, got %v", err)
	}
	if cfg.App.BoxSubjectType != "enterprise" {
		t.Fatalf("expected enterprise subject type, got %q", cfg.App.BoxSubjectType)
	}
	if cfg.App.Width != 0 || cfg.App.Height != 0 || cfg.Logging.Trace {
		t.Fatalf("expected zero-value sizing and trace off, got %+v", cfg)
	}
}

func TestLoadArgsEnvironmentAndFlags(t *testing.T) {
	env := []string{
		"TAGMASTER_CONFIG_DIR=/env/dir",
		"TAGMASTER_WIDTH=100",
		"TAGMASTER_TRACE=true",
		"TAGMASTER_BOX_SUBJECT_ID=42",
		"MALFORMED",
	}
	cfg, err := LoadArgs([]string{"-config-dir", "/flag/dir", "-box-subject-type", "user"}, env)
	if err != nil {
		t.Fatalf("expected config to load, got %v", err)
	}
	if cfg.App.ConfigDir != "/flag/dir" {
		t.Fatalf("expected flag to override env, got %q", cfg.App.ConfigDir)
	}
	if cfg.App.Width != 100 || !cfg.Logging.Trace || cfg.App.BoxSubjectID != "42" {
		t.Fatalf("expected env values applied, got %+v", cfg)
	}
	if cfg.App.BoxSubjectType != "user" {
		t.Fatalf("expected user subject type, got %q", cfg.App.BoxSubjectType)
	}
	if cfg.Flags["configDir"] != "/flag/dir" || len(cfg.Args) != 4 {
		t.Fatalf("expected flags and args recorded, got %+v %v", cfg.Flags, cfg.Args)
	}
}

func TestLoadArgsRejectsBadValues(t *testing.T) {
	if _, err := LoadArgs([]string{"-width", "-1"}, nil); err == nil {
		t.Fatalf("expected negative width to fail")
	}
	if _, err := LoadArgs([]string{"-box-subject-type", "group"}, nil); err == nil {
		t.Fatalf("expected unknown subject type to fail")
	}
	if _, err := LoadArgs([]string{"-nope"}, nil); err == nil {
		t.Fatalf("expected unknown flag to fail")
	}
}

func TestLoadArgsIgnoresUnparsableEnv(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"TAGMASTER_HEIGHT=tall", "TAGMASTER_VERBOSE=maybe"})
	if err != nil {
		t.Fatalf("expected fallback values, got %v", err)
	}
	if cfg.App.Height != 0 || cfg.App.Verbose {
		t.Fatalf("expected fallbacks, got %+v", cfg.App)
	}
}

func TestValidateTokenURL(t *testing.T) {
	cfg, _ := LoadArgs([]string{"-box-token-url", "ftp://box"}, nil)
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected non-http token url to fail")
	}
	cfg, _ = LoadArgs([]string{"-box-token-url", "https://example.test/token"}, nil)
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected https token url to pass, got %v", err)
	}
}
