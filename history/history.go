// Package history persists the append-only undo log.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"huesort/model"
)

// Log is the append-only record of completed file operations. One JSON
// entry per line; entries are appended as operations complete so an
// interrupt never loses records for files already moved.
type Log struct {
	path       string
	maxEntries int
	mu         sync.Mutex
}

// New creates a Log backed by the file at path. Non-positive
// maxEntries defaults to 100.
func New(path string, maxEntries int) *Log {
	if maxEntries <= 0 {
		maxEntries = 100
	}
	return &Log{path: path, maxEntries: maxEntries}
}

// NewBatchID derives a batch identifier from the run start time.
func NewBatchID(t time.Time) string {
	return t.UTC().Format("20060102T150405.000000000")
}

// Append writes one entry to the log and syncs it to disk.
func (l *Log) Append(e model.UndoEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	line, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return f.Sync()
}

// Entries returns all logged entries, oldest first. A missing log file
// is an empty log.
func (l *Log) Entries() ([]model.UndoEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readAll()
}

func (l *Log) readAll() ([]model.UndoEntry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	var entries []model.UndoEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e model.UndoEntry
		if err := json.Unmarshal(line, &e); err != nil {
			// A torn trailing line from an interrupt is not fatal.
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return entries, nil
}

// Recent returns up to n entries, newest first.
func (l *Log) Recent(n int) ([]model.UndoEntry, error) {
	entries, err := l.Entries()
	if err != nil {
		return nil, err
	}
	if n > len(entries) {
		n = len(entries)
	}
	out := make([]model.UndoEntry, 0, n)
	for i := len(entries) - 1; i >= len(entries)-n; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}

// LastBatch returns the entries of the most recent batch, oldest first.
func (l *Log) LastBatch() ([]model.UndoEntry, error) {
	entries, err := l.Entries()
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	batch := entries[len(entries)-1].Batch

	var out []model.UndoEntry
	for _, e := range entries {
		if e.Batch == batch {
			out = append(out, e)
		}
	}
	return out, nil
}

// RemoveEntries rewrites the log without the given entries, trimming
// the remainder to the configured maximum. Entries are identified by
// batch and destination; destinations are unique within a batch.
func (l *Log) RemoveEntries(remove []model.UndoEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	drop := make(map[string]struct{}, len(remove))
	for _, e := range remove {
		drop[e.Batch+"\x00"+e.Destination] = struct{}{}
	}

	entries, err := l.readAll()
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if _, ok := drop[e.Batch+"\x00"+e.Destination]; !ok {
			kept = append(kept, e)
		}
	}
	if len(kept) > l.maxEntries {
		kept = kept[len(kept)-l.maxEntries:]
	}
	return l.rewrite(kept)
}

func (l *Log) rewrite(entries []model.UndoEntry) error {
	tmp := l.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("rewrite history: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, e := range entries {
		line, err := json.Marshal(e)
		if err != nil {
			f.Close()
			os.Remove(tmp)
			return err
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("rewrite history: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("rewrite history: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rewrite history: %w", err)
	}
	return os.Rename(tmp, l.path)
}
