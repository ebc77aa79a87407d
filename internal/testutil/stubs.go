// Package testutil provides in-memory collaborators for UI tests.
package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/atomicstack/tagmaster/internal/auth"
	"github.com/atomicstack/tagmaster/internal/host"
)

// Host is a window host that hands out random handles and records every
// call. Its Events feed is nil, so the UI never waits on it.
type Host struct {
	// Fail, when set, decides whether an Open for sizing fails.
	Fail func(sizing host.Sizing) error

	mu     sync.Mutex
	opened []host.Handle
	sizes  map[host.Handle]host.Sizing
	closed []host.Handle
	focus  host.Handle
}

// NewHost returns an empty stub host.
func NewHost() *Host {
	return &Host{sizes: make(map[host.Handle]host.Sizing)}
}

func (h *Host) Open(ctx context.Context, sizing host.Sizing) (host.Handle, error) {
	if err := ctx.Err(); err != nil {
		return host.Nil, err
	}
	if h.Fail != nil {
		if err := h.Fail(sizing); err != nil {
			return host.Nil, err
		}
	}
	handle := host.Handle(uuid.New())
	h.mu.Lock()
	defer h.mu.Unlock()
	h.opened = append(h.opened, handle)
	h.sizes[handle] = sizing
	return handle, nil
}

func (h *Host) Close(handle host.Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = append(h.closed, handle)
}

func (h *Host) Events() <-chan host.Event {
	return nil
}

func (h *Host) Focus(handle host.Handle) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.focus = handle
	return true
}

// Opened lists handed out handles in order.
func (h *Host) Opened() []host.Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]host.Handle(nil), h.opened...)
}

// Closed lists closed handles in order.
func (h *Host) Closed() []host.Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]host.Handle(nil), h.closed...)
}

// WasClosed reports whether handle was closed at least once.
func (h *Host) WasClosed(handle host.Handle) bool {
	for _, c := range h.Closed() {
		if c == handle {
			return true
		}
	}
	return false
}

// Sizing returns the policy handle was opened with.
func (h *Host) Sizing(handle host.Handle) (host.Sizing, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sizes[handle]
	return s, ok
}

// Focused returns the last focused handle.
func (h *Host) Focused() host.Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.focus
}

// ErrRejected is returned by Fetcher for keys listed in Reject.
var ErrRejected = errors.New("invalid credentials")

// Fetcher issues "token-<key>" for every key not listed in Reject.
type Fetcher struct {
	Reject map[string]bool

	mu    sync.Mutex
	calls []auth.Credentials
}

func (f *Fetcher) FetchToken(ctx context.Context, creds auth.Credentials) (auth.Token, error) {
	f.mu.Lock()
	f.calls = append(f.calls, creds)
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return auth.Token{}, err
	}
	if f.Reject[creds.Key] {
		return auth.Token{}, ErrRejected
	}
	return auth.Token{AccessToken: "token-" + creds.Key, TokenType: "bearer"}, nil
}

// Calls returns the credentials of every FetchToken call.
func (f *Fetcher) Calls() []auth.Credentials {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]auth.Credentials(nil), f.calls...)
}

// Picker returns a fixed folder, or reports a cancel when Path is empty.
type Picker struct {
	Path string
	Err  error

	mu    sync.Mutex
	calls int
}

func (p *Picker) PickFolder(ctx context.Context) (string, bool, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.Err != nil {
		return "", false, p.Err
	}
	return p.Path, p.Path != "", nil
}

// Calls counts PickFolder calls.
func (p *Picker) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
