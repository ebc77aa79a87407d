package state

import (
	"errors"
	"strings"
	"time"

	"github.com/atomicstack/tagmaster/internal/auth"
)

var (
	ErrEmptyName     = errors.New("project name is required")
	ErrMissingSource = errors.New("project source is required")
	ErrLoginRequired = errors.New("log in to use a remote folder")
)

// SourceKind separates local folders from remote Box folders.
type SourceKind int

const (
	SourceLocal SourceKind = iota
	SourceRemote
)

func (k SourceKind) String() string {
	if k == SourceRemote {
		return "remote"
	}
	return "local"
}

// Source is where a project's files live.
type Source struct {
	Kind     SourceKind
	Location string
}

// RequiresLogin reports whether opening the source needs a token.
func (s Source) RequiresLogin() bool {
	return s.Kind == SourceRemote
}

// Resolved reports whether a location has been chosen.
func (s Source) Resolved() bool {
	return strings.TrimSpace(s.Location) != ""
}

// Project is the active project.
type Project struct {
	Name     string
	Source   Source
	OpenedAt time.Time
}

// RootPath is the file-tree root. Remote projects have none locally.
func (p Project) RootPath() string {
	if p.Source.Kind != SourceLocal {
		return ""
	}
	return p.Source.Location
}

// Form buffers the new-project inputs.
type Form struct {
	Name   string
	Source Source
}

// Check returns the first unmet precondition for creating a project.
func (f Form) Check(token *auth.Token, now time.Time) error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrEmptyName
	}
	if !f.Source.Resolved() {
		return ErrMissingSource
	}
	if f.Source.RequiresLogin() && (token == nil || !token.Valid(now)) {
		return ErrLoginRequired
	}
	return nil
}
