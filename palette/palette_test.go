package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huesort/model"
)

func TestDefaultPalette(t *testing.T) {
	p := Default()

	assert.Equal(t, 11, p.Len())

	seen := make(map[string]bool)
	for _, th := range p.Themes() {
		assert.False(t, seen[th.Name], "duplicate theme %s", th.Name)
		seen[th.Name] = true
	}

	c, ok := p.Color("everforest")
	require.True(t, ok)
	assert.Equal(t, model.RGB{R: 43, G: 51, B: 57}, c)

	_, ok = p.Color("no-such-theme")
	assert.False(t, ok)
}

func TestNewKeepsFirstOccurrence(t *testing.T) {
	p := New([]Theme{
		{Name: "dup", Color: model.RGB{R: 1}},
		{Name: "dup", Color: model.RGB{R: 2}},
	})

	assert.Equal(t, 1, p.Len())
	c, _ := p.Color("dup")
	assert.Equal(t, uint8(1), c.R)
}

func TestWithCustom(t *testing.T) {
	p := Default().WithCustom(map[string]model.RGB{
		"zebra":      {R: 1, G: 2, B: 3},
		"aardvark":   {R: 4, G: 5, B: 6},
		"everforest": {R: 9, G: 9, B: 9}, // collides with a built-in
	})

	// Built-ins keep their colors and positions.
	c, _ := p.Color("everforest")
	assert.Equal(t, model.RGB{R: 43, G: 51, B: 57}, c)

	// Customs are appended after the built-ins in sorted name order.
	names := p.Names()
	require.Equal(t, 13, len(names))
	assert.Equal(t, "aardvark", names[11])
	assert.Equal(t, "zebra", names[12])
}

func TestThemesReturnsCopy(t *testing.T) {
	p := Default()
	themes := p.Themes()
	themes[0].Name = "mutated"

	assert.Equal(t, "catppuccin", p.Themes()[0].Name)
}
