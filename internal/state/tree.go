package state

import "github.com/atomicstack/tagmaster/internal/filetree"

// TreeStore holds the latest listing of the project root.
type TreeStore interface {
	Root() string
	Entries() []filetree.Entry
	Err() string
	SetSnapshot(filetree.Snapshot)
	SetErr(root string, err error)
	Clear()
}

type treeStore struct {
	root    string
	entries []filetree.Entry
	err     string
}

func NewTreeStore() TreeStore {
	return &treeStore{}
}

func (s *treeStore) Root() string {
	return s.root
}

func (s *treeStore) Entries() []filetree.Entry {
	return cloneEntries(s.entries)
}

func (s *treeStore) Err() string {
	return s.err
}

func (s *treeStore) SetSnapshot(snap filetree.Snapshot) {
	s.root = snap.Root
	s.entries = cloneEntries(snap.Entries)
	s.err = ""
}

func (s *treeStore) SetErr(root string, err error) {
	s.root = root
	s.entries = nil
	s.err = ""
	if err != nil {
		s.err = err.Error()
	}
}

func (s *treeStore) Clear() {
	s.root = ""
	s.entries = nil
	s.err = ""
}

func cloneEntries(entries []filetree.Entry) []filetree.Entry {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]filetree.Entry, len(entries))
	copy(dup, entries)
	return dup
}
