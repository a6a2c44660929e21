// Package mover places images into theme directories and records undo
// entries for each completed operation.
package mover

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"huesort/history"
	"huesort/model"
)

const backgroundsDir = "backgrounds"

// Mover moves or copies images into <themesDir>/<theme>/backgrounds/.
type Mover struct {
	themesDir string
	log       *history.Log
	batch     string
	dryRun    bool
}

// New creates a Mover rooted at themesDir. All operations performed by
// this Mover are logged under the given batch id. In dry-run mode no
// file is touched and nothing is logged.
func New(themesDir string, log *history.Log, batch string, dryRun bool) *Mover {
	return &Mover{themesDir: themesDir, log: log, batch: batch, dryRun: dryRun}
}

// ThemePath returns the backgrounds directory for a theme.
func (m *Mover) ThemePath(theme string) string {
	return filepath.Join(m.themesDir, theme, backgroundsDir)
}

// Move relocates src into the theme's backgrounds directory, logs an
// undo entry, and returns the destination path.
func (m *Mover) Move(src, theme string) (string, error) {
	return m.place(src, theme, model.OpMove)
}

// Copy duplicates src into the theme's backgrounds directory, keeping
// the original in place.
func (m *Mover) Copy(src, theme string) (string, error) {
	return m.place(src, theme, model.OpCopy)
}

func (m *Mover) place(src, theme string, op model.Operation) (string, error) {
	dir := m.ThemePath(theme)
	if m.dryRun {
		return filepath.Join(dir, filepath.Base(src)), nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	dst := uniquePath(dir, filepath.Base(src))

	var err error
	if op == model.OpCopy {
		err = copyFile(src, dst)
	} else {
		err = moveFile(src, dst)
	}
	if err != nil {
		return "", err
	}

	entry := model.UndoEntry{
		Timestamp:   time.Now().UTC(),
		Batch:       m.batch,
		Source:      src,
		Destination: dst,
		Theme:       theme,
		Operation:   op,
	}
	if err := m.log.Append(entry); err != nil {
		return dst, fmt.Errorf("record undo entry: %w", err)
	}
	return dst, nil
}

// uniquePath disambiguates filename collisions with a _1, _2, ...
// suffix before the extension.
func uniquePath(dir, filename string) string {
	dst := filepath.Join(dir, filename)
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	for n := 1; ; n++ {
		if _, err := os.Stat(dst); os.IsNotExist(err) {
			return dst
		}
		dst = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, n, ext))
	}
}

// moveFile renames src to dst, falling back to copy+remove when the
// rename crosses filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("close %s: %w", dst, err)
	}
	return nil
}
