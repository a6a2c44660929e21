// Package picker abstracts the interactive selection UI so the
// matching and moving core can run without a terminal.
package picker

import "errors"

// ErrCancelled reports that the user aborted the picker.
var ErrCancelled = errors.New("selection cancelled")

// ErrNotInstalled reports a missing fzf binary.
var ErrNotInstalled = errors.New("fzf is not installed (pacman -S fzf / apt install fzf)")

// Picker presents choices to the user.
type Picker interface {
	// Pick returns the chosen item, or "" when the user dismissed the
	// menu without choosing.
	Pick(items []string, prompt string) (string, error)
	// PickMulti returns all chosen items.
	PickMulti(items []string, prompt string) ([]string, error)
	// Confirm asks a yes/no question with custom option labels.
	Confirm(message, yes, no string) (bool, error)
}
