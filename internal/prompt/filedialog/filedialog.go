// Package filedialog implements prompt.Prompter with the native OS file chooser.
package filedialog

import (
	"errors"
	"fmt"

	"github.com/sqweek/dialog"

	"github.com/Faultbox/objview/internal/prompt"
)

// Dialog opens a file chooser filtered to OBJ files.
type Dialog struct {
	Title string
	Dir   string // Starting directory; empty for the OS default
}

// New returns a Dialog with the given window title.
func New(title string) *Dialog {
	return &Dialog{Title: title}
}

// Prompt implements prompt.Prompter.
func (d *Dialog) Prompt() (string, error) {
	b := dialog.File().
		Filter("Wavefront OBJ", "obj").
		Filter("All files", "*").
		Title(d.Title)
	if d.Dir != "" {
		b = b.SetStartDir(d.Dir)
	}

	path, err := b.Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", prompt.ErrCancelled
	}
	if err != nil {
		return "", fmt.Errorf("file dialog: %w", err)
	}
	return path, nil
}

// Tell shows msg in a message box.
func (d *Dialog) Tell(msg string) {
	dialog.Message("%s", msg).Title(d.Title).Info()
}

var _ prompt.Prompter = (*Dialog)(nil)
