package selection

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huesort/picker"
)

// scriptedPicker replays queued responses. Multi-pick steps name
// substrings of the entries to choose.
type scriptedPicker struct {
	t     *testing.T
	multi []multiStep
	picks []pickStep
}

type multiStep struct {
	choose []string
	err    error
}

type pickStep struct {
	choose string
	err    error
}

func (s *scriptedPicker) PickMulti(items []string, _ string) ([]string, error) {
	require.NotEmpty(s.t, s.multi, "unexpected PickMulti call")
	step := s.multi[0]
	s.multi = s.multi[1:]
	if step.err != nil {
		return nil, step.err
	}

	var out []string
	for _, want := range step.choose {
		found := ""
		for _, item := range items {
			if strings.Contains(item, want) {
				found = item
				break
			}
		}
		require.NotEmpty(s.t, found, "no entry matching %q in %v", want, items)
		out = append(out, found)
	}
	return out, nil
}

func (s *scriptedPicker) Pick(items []string, _ string) (string, error) {
	require.NotEmpty(s.t, s.picks, "unexpected Pick call")
	step := s.picks[0]
	s.picks = s.picks[1:]
	if step.err != nil {
		return "", step.err
	}
	for _, item := range items {
		if strings.Contains(item, step.choose) {
			return item, nil
		}
	}
	return "", nil
}

func (s *scriptedPicker) Confirm(_, yes, _ string) (bool, error) {
	s.t.Fatal("unexpected Confirm call")
	return false, nil
}

func browseDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.jpg"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "c.png"), []byte("x"), 0o644))
	return dir
}

func TestBrowserSelectAndDone(t *testing.T) {
	dir := browseDir(t)
	p := &scriptedPicker{t: t, multi: []multiStep{
		{choose: []string{"a.png"}},
		{choose: []string{"[DONE]"}},
	}}

	b, err := NewBrowser(p, dir)
	require.NoError(t, err)

	got, err := b.Run()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.png")}, got)
}

func TestBrowserNavigatesIntoSubdirectory(t *testing.T) {
	dir := browseDir(t)
	p := &scriptedPicker{t: t, multi: []multiStep{
		{choose: []string{"[DIR] sub/"}},
		{choose: []string{"c.png"}},
		{choose: []string{"[DONE]"}},
	}}

	b, err := NewBrowser(p, dir)
	require.NoError(t, err)

	got, err := b.Run()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "sub", "c.png")}, got)
}

func TestBrowserToggleDeselects(t *testing.T) {
	dir := browseDir(t)
	p := &scriptedPicker{t: t, multi: []multiStep{
		{choose: []string{"a.png"}},
		{choose: []string{"a.png"}}, // second pick removes it again
		{err: picker.ErrCancelled},  // nothing selected: exits
	}}

	b, err := NewBrowser(p, dir)
	require.NoError(t, err)

	got, err := b.Run()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBrowserEscapeMenuProcess(t *testing.T) {
	dir := browseDir(t)
	p := &scriptedPicker{
		t: t,
		multi: []multiStep{
			{choose: []string{"a.png", "b.jpg"}},
			{err: picker.ErrCancelled},
		},
		picks: []pickStep{{choose: "Process"}},
	}

	b, err := NewBrowser(p, dir)
	require.NoError(t, err)

	got, err := b.Run()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.jpg"),
	}, got)
}

func TestBrowserRejectsFilePath(t *testing.T) {
	dir := browseDir(t)
	_, err := NewBrowser(&scriptedPicker{t: t}, filepath.Join(dir, "a.png"))
	assert.Error(t, err)
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("wall.PNG"))
	assert.True(t, IsImage("/tmp/photo.jpeg"))
	assert.True(t, IsImage("anim.webp"))
	assert.False(t, IsImage("notes.txt"))
	assert.False(t, IsImage("archive"))
}
