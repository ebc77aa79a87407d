package window

import "github.com/atomicstack/tagmaster/internal/host"

// Entry associates a host handle with the kind of view it shows.
type Entry struct {
	Handle host.Handle
	Kind   Kind
}

// OpenAction tells the caller what Open decided.
type OpenAction int

const (
	// OpenExisting means a singleton is already open; use the returned handle.
	OpenExisting OpenAction = iota
	// OpenPending means a host request for this singleton is still in flight.
	OpenPending
	// OpenRequest means the caller must ask the host for a new window and
	// hand the result to Register (or Abandon on failure).
	OpenRequest
)

func (a OpenAction) String() string {
	switch a {
	case OpenExisting:
		return "existing"
	case OpenPending:
		return "pending"
	case OpenRequest:
		return "request"
	default:
		return "unknown"
	}
}

// Registry is the ordered set of open windows. The zero value is empty and
// ready to use.
type Registry struct {
	entries []Entry
	pending map[Kind]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{pending: make(map[Kind]int)}
}

// Open decides whether kind needs a new window.
func (r *Registry) Open(kind Kind) (host.Handle, OpenAction) {
	if kind.Singleton() {
		if h, ok := r.Find(kind); ok {
			return h, OpenExisting
		}
		if r.pending[kind] > 0 {
			return host.Nil, OpenPending
		}
	}
	if r.pending == nil {
		r.pending = make(map[Kind]int)
	}
	r.pending[kind]++
	return host.Nil, OpenRequest
}

// Register records a window the host opened for kind. It returns false when
// the handle is unusable or a singleton of that kind is already registered;
// the caller then owns closing the surplus window.
func (r *Registry) Register(h host.Handle, kind Kind) bool {
	r.settle(kind)
	if h == host.Nil {
		return false
	}
	if _, ok := r.Route(h); ok {
		return false
	}
	if kind.Singleton() {
		if _, ok := r.Find(kind); ok {
			return false
		}
	}
	r.entries = append(r.entries, Entry{Handle: h, Kind: kind})
	return true
}

// Abandon clears an in-flight request that failed.
func (r *Registry) Abandon(kind Kind) {
	r.settle(kind)
}

// Pending reports whether a host request for kind is in flight.
func (r *Registry) Pending(kind Kind) bool {
	return r.pending[kind] > 0
}

// Close removes the entry for h.
func (r *Registry) Close(h host.Handle) (Entry, bool) {
	for i, entry := range r.entries {
		if entry.Handle == h {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return entry, true
		}
	}
	return Entry{}, false
}

// CloseKind removes every entry of kind and returns them.
func (r *Registry) CloseKind(kind Kind) []Entry {
	var removed []Entry
	kept := r.entries[:0]
	for _, entry := range r.entries {
		if entry.Kind == kind {
			removed = append(removed, entry)
			continue
		}
		kept = append(kept, entry)
	}
	r.entries = kept
	return removed
}

// Route returns the kind shown by h. Unknown handles report false.
func (r *Registry) Route(h host.Handle) (Kind, bool) {
	for _, entry := range r.entries {
		if entry.Handle == h {
			return entry.Kind, true
		}
	}
	return 0, false
}

// Find returns the first handle registered for kind.
func (r *Registry) Find(kind Kind) (host.Handle, bool) {
	for _, entry := range r.entries {
		if entry.Kind == kind {
			return entry.Handle, true
		}
	}
	return host.Nil, false
}

// Count returns how many windows of kind are registered.
func (r *Registry) Count(kind Kind) int {
	n := 0
	for _, entry := range r.entries {
		if entry.Kind == kind {
			n++
		}
	}
	return n
}

// Len returns the number of registered windows.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns a copy of the registry in opening order.
func (r *Registry) Entries() []Entry {
	if len(r.entries) == 0 {
		return nil
	}
	dup := make([]Entry, len(r.entries))
	copy(dup, r.entries)
	return dup
}

func (r *Registry) settle(kind Kind) {
	if r.pending[kind] > 0 {
		r.pending[kind]--
	}
}
