package selection

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"huesort/picker"
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

// IsImage reports whether path has a supported image extension.
func IsImage(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

const (
	entryUp    = "[UP]  ../"
	entryClear = "[CLEAR] Clear selection"
	entrySep   = "---"
)

// Plain text so the mark survives the round trip through fzf output.
const selectedMark = "✓"

type action int

const (
	actionContinue action = iota
	actionProcess
	actionClear
	actionExit
)

// Browser walks directories through the picker, accumulating an
// ordered selection of image paths.
type Browser struct {
	picker  picker.Picker
	current string
	sel     *Set
}

// NewBrowser creates a browser rooted at start, which must be an
// existing directory.
func NewBrowser(p picker.Picker, start string) (*Browser, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("invalid path %s: %w", start, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", abs)
	}
	return &Browser{picker: p, current: abs, sel: NewSet()}, nil
}

// Run loops until the user finishes or exits; it returns the ordered
// selection, which is empty when the user left without processing.
func (b *Browser) Run() ([]string, error) {
	for {
		entries, err := b.listEntries()
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			if !b.up() {
				return nil, nil
			}
			continue
		}
		if b.sel.Len() > 0 {
			entries = append([]string{
				fmt.Sprintf("[DONE] Process %d selected image(s)", b.sel.Len()),
				entryClear,
				entrySep,
			}, entries...)
		}

		selections, err := b.picker.PickMulti(entries, b.prompt())
		switch {
		case errors.Is(err, picker.ErrCancelled), err == nil && len(selections) == 0:
			if b.sel.Len() == 0 {
				return nil, nil
			}
			switch act, aerr := b.escapeMenu(); {
			case aerr != nil && !errors.Is(aerr, picker.ErrCancelled):
				return nil, aerr
			case act == actionProcess:
				return b.sel.Paths(), nil
			case act == actionClear:
				b.sel.Clear()
			case act == actionExit:
				return nil, nil
			}
		case err != nil:
			return nil, err
		default:
			if done := b.apply(selections); done {
				return b.sel.Paths(), nil
			}
		}
	}
}

func (b *Browser) prompt() string {
	prompt := filepath.Base(b.current)
	if n := b.sel.Len(); n > 0 {
		prompt = fmt.Sprintf("%s [%d selected]", prompt, n)
	}
	return prompt + "> "
}

// listEntries renders the current directory as picker lines: [DIR] for
// subdirectories, [IMG] for supported images with a checkmark when
// already selected, and [UP] except at the filesystem root.
func (b *Browser) listEntries() ([]string, error) {
	items, err := os.ReadDir(b.current)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", b.current, err)
	}

	names := make([]string, 0, len(items))
	byName := make(map[string]os.DirEntry, len(items))
	for _, it := range items {
		names = append(names, it.Name())
		byName[it.Name()] = it
	}
	sort.Strings(names)

	var entries []string
	if b.current != "/" {
		entries = append(entries, entryUp)
	}
	for _, name := range names {
		it := byName[name]
		full := filepath.Join(b.current, name)
		switch {
		case it.IsDir():
			entries = append(entries, fmt.Sprintf("[DIR] %s/", name))
		case IsImage(name):
			mark := ""
			if b.sel.Has(full) {
				mark = selectedMark + " "
			}
			entries = append(entries, fmt.Sprintf("[IMG] %s%s%s", mark, name, sizeSuffix(full)))
		}
	}
	return entries, nil
}

func sizeSuffix(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	size := info.Size()
	switch {
	case size < 1024:
		return fmt.Sprintf(" (%dB)", size)
	case size < 1024*1024:
		return fmt.Sprintf(" (%.1fKB)", float64(size)/1024)
	default:
		return fmt.Sprintf(" (%.1fMB)", float64(size)/(1024*1024))
	}
}

// apply handles one round of picker output. It reports true when the
// user asked to process the selection.
func (b *Browser) apply(selections []string) bool {
	for _, sel := range selections {
		switch {
		case sel == entrySep:
		case strings.HasPrefix(sel, "[DONE]"):
			return true
		case sel == entryClear:
			b.sel.Clear()
		case strings.HasPrefix(sel, "[UP]"):
			b.up()
			return false
		case strings.HasPrefix(sel, "[DIR] "):
			name := strings.TrimSuffix(strings.TrimPrefix(sel, "[DIR] "), "/")
			next := filepath.Join(b.current, name)
			if info, err := os.Stat(next); err == nil && info.IsDir() {
				b.current = next
			}
			return false
		case strings.HasPrefix(sel, "[IMG] "):
			b.sel.Toggle(filepath.Join(b.current, cleanImageEntry(sel)))
		}
	}
	return false
}

// cleanImageEntry strips the [IMG] prefix, checkmark, and size suffix.
func cleanImageEntry(entry string) string {
	name := strings.TrimPrefix(entry, "[IMG] ")
	name = strings.TrimPrefix(name, selectedMark+" ")
	if i := strings.LastIndex(name, " ("); i >= 0 && strings.HasSuffix(name, ")") {
		name = name[:i]
	}
	return name
}

func (b *Browser) up() bool {
	parent := filepath.Dir(b.current)
	if parent == b.current {
		return false
	}
	b.current = parent
	return true
}

func (b *Browser) escapeMenu() (action, error) {
	choices := []string{
		fmt.Sprintf("Process %d image(s)", b.sel.Len()),
		"Continue selecting",
		"Select all images in current directory",
		"Clear selection",
		"Exit without processing",
	}

	choice, err := b.picker.Pick(choices, "Action: ")
	if err != nil {
		return actionContinue, err
	}
	switch {
	case strings.HasPrefix(choice, "Process"):
		return actionProcess, nil
	case strings.HasPrefix(choice, "Select all"):
		b.selectAllHere()
		return actionContinue, nil
	case strings.HasPrefix(choice, "Clear"):
		return actionClear, nil
	case strings.HasPrefix(choice, "Exit"):
		return actionExit, nil
	default:
		return actionContinue, nil
	}
}

func (b *Browser) selectAllHere() {
	items, err := os.ReadDir(b.current)
	if err != nil {
		return
	}
	var paths []string
	for _, it := range items {
		if !it.IsDir() && IsImage(it.Name()) {
			paths = append(paths, filepath.Join(b.current, it.Name()))
		}
	}
	sort.Strings(paths)
	b.sel.SelectAll(paths)
}
