// Package palette defines the fixed set of named themes and their
// reference background colors.
package palette

import (
	"sort"

	"huesort/model"
)

// Theme binds a theme name to its reference background color.
type Theme struct {
	Name  string
	Color model.RGB
}

// builtins is the fixed theme table. Slice order is the enumeration
// order used to break exact distance ties.
var builtins = []Theme{
	{Name: "catppuccin", Color: model.RGB{R: 30, G: 30, B: 46}},
	{Name: "catppuccin-latte", Color: model.RGB{R: 239, G: 241, B: 245}},
	{Name: "everforest", Color: model.RGB{R: 43, G: 51, B: 57}},
	{Name: "gruvbox", Color: model.RGB{R: 40, G: 40, B: 40}},
	{Name: "kanagawa", Color: model.RGB{R: 31, G: 31, B: 40}},
	{Name: "matte-black", Color: model.RGB{R: 40, G: 40, B: 43}},
	{Name: "nord", Color: model.RGB{R: 46, G: 52, B: 64}},
	{Name: "osaka-jade", Color: model.RGB{R: 0, G: 168, B: 107}},
	{Name: "ristretto", Color: model.RGB{R: 31, G: 14, B: 4}},
	{Name: "rose-pine", Color: model.RGB{R: 25, G: 23, B: 36}},
	{Name: "tokyo-night", Color: model.RGB{R: 26, G: 27, B: 38}},
}

// Palette is an immutable ordered set of themes with unique names.
type Palette struct {
	themes []Theme
	index  map[string]int
}

// Default returns the built-in palette.
func Default() *Palette {
	return New(builtins)
}

// New builds a palette from themes in the given order. When a name
// repeats, the first occurrence wins.
func New(themes []Theme) *Palette {
	p := &Palette{
		themes: make([]Theme, 0, len(themes)),
		index:  make(map[string]int, len(themes)),
	}
	for _, t := range themes {
		if _, exists := p.index[t.Name]; exists {
			continue
		}
		p.index[t.Name] = len(p.themes)
		p.themes = append(p.themes, t)
	}
	return p
}

// WithCustom returns a new palette extending p with custom themes,
// appended after the existing entries in sorted name order. Names that
// collide with existing entries are ignored: the built-in table wins.
func (p *Palette) WithCustom(custom map[string]model.RGB) *Palette {
	names := make([]string, 0, len(custom))
	for name := range custom {
		names = append(names, name)
	}
	sort.Strings(names)

	themes := make([]Theme, 0, len(p.themes)+len(names))
	themes = append(themes, p.themes...)
	for _, name := range names {
		themes = append(themes, Theme{Name: name, Color: custom[name]})
	}
	return New(themes)
}

// Themes returns all entries in enumeration order.
func (p *Palette) Themes() []Theme {
	out := make([]Theme, len(p.themes))
	copy(out, p.themes)
	return out
}

// Names returns all theme names in enumeration order.
func (p *Palette) Names() []string {
	names := make([]string, len(p.themes))
	for i, t := range p.themes {
		names[i] = t.Name
	}
	return names
}

// Color returns the reference color for a theme name.
func (p *Palette) Color(name string) (model.RGB, bool) {
	i, ok := p.index[name]
	if !ok {
		return model.RGB{}, false
	}
	return p.themes[i].Color, true
}

// Has reports whether name is a palette entry.
func (p *Palette) Has(name string) bool {
	_, ok := p.index[name]
	return ok
}

// Len returns the number of themes.
func (p *Palette) Len() int {
	return len(p.themes)
}
