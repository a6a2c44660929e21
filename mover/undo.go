package mover

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"huesort/history"
	"huesort/model"
)

// ErrNothingToUndo reports an empty undo log.
var ErrNothingToUndo = errors.New("no operations to undo")

// UndoResult reports the outcome of undoing one batch.
type UndoResult struct {
	Restored int // moves reversed
	Removed  int // copies deleted
	Errors   []error
}

// UndoLastBatch reverses the most recent batch by replaying its entries
// in reverse: moves go back to their source path, copies are deleted.
// Per-entry failures are collected and do not stop the rest of the
// batch. Only entries that actually undid are compacted out of the log;
// a failed entry stays, keeping the record of where its file went.
func UndoLastBatch(log *history.Log) (*UndoResult, error) {
	entries, err := log.LastBatch()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNothingToUndo
	}

	res := &UndoResult{}
	var undone []model.UndoEntry
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if err := undoEntry(e); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("%s: %w", filepath.Base(e.Destination), err))
			continue
		}
		undone = append(undone, e)
		if e.Operation == model.OpCopy {
			res.Removed++
		} else {
			res.Restored++
		}
	}

	if len(undone) == 0 {
		return res, nil
	}
	if err := log.RemoveEntries(undone); err != nil {
		return res, fmt.Errorf("compact history: %w", err)
	}
	return res, nil
}

func undoEntry(e model.UndoEntry) error {
	switch e.Operation {
	case model.OpCopy:
		return os.Remove(e.Destination)
	case model.OpMove:
		if err := os.MkdirAll(filepath.Dir(e.Source), 0o755); err != nil {
			return err
		}
		return moveFile(e.Destination, e.Source)
	default:
		return fmt.Errorf("unknown operation %q", e.Operation)
	}
}
