package state

// Item is one selectable row.
type Item struct {
	ID     string
	Label  string
	Detail string
}

// List is a cursor over filtered items with a scrolling viewport.
type List struct {
	Full           []Item
	Items          []Item
	Filter         string
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewList returns a list positioned on the first item.
func NewList(items []Item) *List {
	l := &List{LastCursor: -1}
	l.SetItems(items)
	return l
}

// SetItems replaces the items and re-applies the filter.
func (l *List) SetItems(items []Item) {
	l.Full = CloneItems(items)
	l.applyFilter()
}

// Current returns the item under the cursor.
func (l *List) Current() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// MoveCursor moves by delta, clamped to the item range.
func (l *List) MoveCursor(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor += delta
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	return l.Cursor != old
}

func (l *List) MoveCursorHome() bool {
	return l.MoveCursor(-len(l.Items))
}

func (l *List) MoveCursorEnd() bool {
	return l.MoveCursor(len(l.Items))
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (l *List) EnsureCursorVisible(maxVisible int) {
	if len(l.Items) == 0 || maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := len(l.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	if upper := l.ViewportOffset + maxVisible - 1; l.Cursor > upper {
		l.ViewportOffset = l.Cursor - maxVisible + 1
	}
}

// Visible returns the items inside the viewport.
func (l *List) Visible(maxVisible int) []Item {
	l.EnsureCursorVisible(maxVisible)
	if maxVisible <= 0 || len(l.Items) <= maxVisible {
		return l.Items
	}
	end := l.ViewportOffset + maxVisible
	if end > len(l.Items) {
		end = len(l.Items)
	}
	return l.Items[l.ViewportOffset:end]
}

// CloneItems produces a shallow copy of items.
func CloneItems(items []Item) []Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
