package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter updates the query. Clearing it restores the cursor held before
// filtering started.
func (l *List) SetFilter(query string) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(l.Filter)
	l.Filter = query
	if trimmed != "" && prevTrimmed == "" {
		l.LastCursor = l.Cursor
	}
	l.applyFilter()
	if trimmed != "" {
		l.Cursor = BestMatchIndex(l.Items, trimmed)
		if l.Cursor < 0 {
			l.Cursor = 0
		}
		return
	}
	if prevTrimmed != "" {
		if l.LastCursor >= 0 && l.LastCursor < len(l.Items) {
			l.Cursor = l.LastCursor
		}
		l.LastCursor = -1
	}
}

// AppendFilter adds text to the end of the query.
func (l *List) AppendFilter(text string) bool {
	if text == "" {
		return false
	}
	l.SetFilter(l.Filter + text)
	return true
}

// BackspaceFilter removes the last rune of the query.
func (l *List) BackspaceFilter() bool {
	runes := []rune(l.Filter)
	if len(runes) == 0 {
		return false
	}
	l.SetFilter(string(runes[:len(runes)-1]))
	return true
}

// ClearFilter drops the query.
func (l *List) ClearFilter() bool {
	if l.Filter == "" {
		return false
	}
	l.SetFilter("")
	return true
}

func (l *List) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	if l.ViewportOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
	}
}

func haystack(item Item) string {
	if item.Detail == "" {
		return item.Label
	}
	return item.Label + " " + item.Detail
}

// FilterItems returns items whose label or detail fuzzily match query.
func FilterItems(items []Item, query string) []Item {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return CloneItems(items)
	}
	targets := make([]string, len(items))
	for i, item := range items {
		targets[i] = haystack(item)
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, targets)
	if len(ranks) == 0 {
		return nil
	}
	matches := make(map[int]struct{}, len(ranks))
	for _, rank := range ranks {
		matches[rank.OriginalIndex] = struct{}{}
	}
	filtered := make([]Item, 0, len(matches))
	for idx, item := range items {
		if _, ok := matches[idx]; ok {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// BestMatchIndex prefers exact, then prefix, then closest fuzzy label match.
func BestMatchIndex(items []Item, query string) int {
	trimmed := strings.TrimSpace(query)
	if len(items) == 0 {
		return -1
	}
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, item := range items {
		if strings.EqualFold(item.Label, trimmed) {
			return i
		}
	}
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Label), lower) {
			return i
		}
	}
	targets := make([]string, len(items))
	for i, item := range items {
		targets[i] = haystack(item)
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, targets)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance || (rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}
