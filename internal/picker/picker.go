// Package picker asks the user for a folder through the native OS dialog.
package picker

import (
	"context"
	"errors"
	"strings"

	"github.com/ncruces/zenity"
)

// Picker returns a chosen folder. ok is false when the user cancelled.
type Picker interface {
	PickFolder(ctx context.Context) (path string, ok bool, err error)
}

// Dialog is the native folder dialog.
type Dialog struct {
	Title string
	Start string
}

// PickFolder shows the dialog and blocks until it is dismissed.
func (d Dialog) PickFolder(ctx context.Context) (string, bool, error) {
	title := d.Title
	if title == "" {
		title = "Choose project folder"
	}
	opts := []zenity.Option{zenity.Context(ctx), zenity.Directory(), zenity.Title(title)}
	if d.Start != "" {
		opts = append(opts, zenity.Filename(d.Start))
	}
	path, err := zenity.SelectFile(opts...)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	path = strings.TrimSpace(path)
	return path, path != "", nil
}

// Func adapts a plain function to Picker.
type Func func(ctx context.Context) (string, bool, error)

// PickFolder calls f.
func (f Func) PickFolder(ctx context.Context) (string, bool, error) {
	return f(ctx)
}
