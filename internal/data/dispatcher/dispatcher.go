package dispatcher

import (
	"github.com/atomicstack/tagmaster/internal/backend"
	"github.com/atomicstack/tagmaster/internal/logging/events"
	"github.com/atomicstack/tagmaster/internal/state"
)

type Result struct {
	TreeUpdated bool
	Stale       bool
}

// Dispatcher applies backend listings to the tree store.
type Dispatcher struct {
	tree state.TreeStore
}

func New(tree state.TreeStore) *Dispatcher {
	return &Dispatcher{tree: tree}
}

// Handle stores evt when it was produced for currentRoot. Listings for a
// root the session has moved away from are dropped.
func (d *Dispatcher) Handle(evt backend.Event, currentRoot string) Result {
	var res Result
	if currentRoot == "" || evt.Root != currentRoot {
		events.Tree.Stale(evt.Root, currentRoot)
		res.Stale = true
		return res
	}
	if evt.Err != nil {
		d.tree.SetErr(evt.Root, evt.Err)
		res.TreeUpdated = true
		return res
	}
	snap := evt.Snapshot
	snap.Root = evt.Root
	d.tree.SetSnapshot(snap)
	res.TreeUpdated = true
	return res
}
