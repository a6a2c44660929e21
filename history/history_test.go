package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huesort/model"
)

func entry(batch, src string) model.UndoEntry {
	return model.UndoEntry{
		Timestamp:   time.Now().UTC(),
		Batch:       batch,
		Source:      src,
		Destination: "/themes/nord/backgrounds/" + filepath.Base(src),
		Theme:       "nord",
		Operation:   model.OpMove,
	}
}

func TestAppendAndEntries(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "history.jsonl"), 100)

	require.NoError(t, l.Append(entry("b1", "/pics/a.png")))
	require.NoError(t, l.Append(entry("b1", "/pics/b.png")))

	got, err := l.Entries()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "/pics/a.png", got[0].Source)
	assert.Equal(t, "/pics/b.png", got[1].Source)
}

func TestEntriesMissingFile(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "none.jsonl"), 100)

	got, err := l.Entries()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecentNewestFirst(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "history.jsonl"), 100)
	require.NoError(t, l.Append(entry("b1", "/pics/a.png")))
	require.NoError(t, l.Append(entry("b1", "/pics/b.png")))
	require.NoError(t, l.Append(entry("b2", "/pics/c.png")))

	got, err := l.Recent(2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "/pics/c.png", got[0].Source)
	assert.Equal(t, "/pics/b.png", got[1].Source)
}

func TestLastBatch(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "history.jsonl"), 100)
	require.NoError(t, l.Append(entry("b1", "/pics/a.png")))
	require.NoError(t, l.Append(entry("b2", "/pics/b.png")))
	require.NoError(t, l.Append(entry("b2", "/pics/c.png")))

	got, err := l.LastBatch()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b2", got[0].Batch)
	assert.Equal(t, "/pics/b.png", got[0].Source)
	assert.Equal(t, "/pics/c.png", got[1].Source)
}

func TestRemoveEntries(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "history.jsonl"), 100)
	require.NoError(t, l.Append(entry("b1", "/pics/a.png")))
	require.NoError(t, l.Append(entry("b2", "/pics/b.png")))
	require.NoError(t, l.Append(entry("b2", "/pics/c.png")))

	require.NoError(t, l.RemoveEntries([]model.UndoEntry{entry("b2", "/pics/c.png")}))

	got, err := l.Entries()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "/pics/a.png", got[0].Source)
	assert.Equal(t, "/pics/b.png", got[1].Source, "unlisted entry of the same batch stays")
}

func TestRemoveEntriesTrimsToMax(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "history.jsonl"), 2)
	require.NoError(t, l.Append(entry("b1", "/pics/a.png")))
	require.NoError(t, l.Append(entry("b1", "/pics/b.png")))
	require.NoError(t, l.Append(entry("b1", "/pics/c.png")))
	require.NoError(t, l.Append(entry("b2", "/pics/d.png")))

	require.NoError(t, l.RemoveEntries([]model.UndoEntry{entry("b2", "/pics/d.png")}))

	got, err := l.Entries()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "/pics/b.png", got[0].Source)
	assert.Equal(t, "/pics/c.png", got[1].Source)
}

func TestTornTrailingLineIsIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	l := New(path, 100)
	require.NoError(t, l.Append(entry("b1", "/pics/a.png")))

	// Simulate an interrupt mid-append: a torn, non-JSON trailing line.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(`{"timestamp":"2026-`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	got, err := l.Entries()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "/pics/a.png", got[0].Source)
}

func TestNewBatchIDIsMonotonicPerRun(t *testing.T) {
	a := NewBatchID(time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC))
	b := NewBatchID(time.Date(2026, 8, 23, 10, 0, 1, 0, time.UTC))
	assert.Less(t, a, b)
}
