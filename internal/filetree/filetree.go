// Package filetree lists a project root for the file list pane.
package filetree

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Entry is one item directly under the project root.
type Entry struct {
	Name    string
	Dir     bool
	Size    int64
	ModTime time.Time
}

// Snapshot is a listing of root taken at a point in time.
type Snapshot struct {
	Root    string
	Entries []Entry
}

// List returns the entries of root, directories first, hidden files skipped.
func List(root string) (Snapshot, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return Snapshot{}, fmt.Errorf("list: empty root")
	}
	dirents, err := os.ReadDir(root)
	if err != nil {
		return Snapshot{Root: root}, fmt.Errorf("list %s: %w", root, err)
	}
	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		if strings.HasPrefix(d.Name(), ".") {
			continue
		}
		entry := Entry{Name: d.Name(), Dir: d.IsDir()}
		if info, err := d.Info(); err == nil {
			entry.ModTime = info.ModTime()
			if !entry.Dir {
				entry.Size = info.Size()
			}
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Dir != entries[j].Dir {
			return entries[i].Dir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return Snapshot{Root: root, Entries: entries}, nil
}
