package detect

import (
	"math"

	"huesort/model"
	"huesort/palette"
)

// Default confidence cutoffs. A match closer than the high cutoff is
// high confidence, closer than the medium cutoff is medium, anything
// else is low. Both are overridable through the config file.
const (
	DefaultHighCutoff   = 20.0
	DefaultMediumCutoff = 35.0
)

// Matcher scores sampled colors against a palette.
type Matcher struct {
	palette      *palette.Palette
	highCutoff   float64
	mediumCutoff float64
}

// NewMatcher creates a matcher over p. Non-positive cutoffs fall back
// to the defaults.
func NewMatcher(p *palette.Palette, highCutoff, mediumCutoff float64) *Matcher {
	if highCutoff <= 0 {
		highCutoff = DefaultHighCutoff
	}
	if mediumCutoff <= 0 {
		mediumCutoff = DefaultMediumCutoff
	}
	return &Matcher{
		palette:      p,
		highCutoff:   highCutoff,
		mediumCutoff: mediumCutoff,
	}
}

// Distance is the Euclidean distance between two colors in RGB space.
func Distance(a, b model.RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Match returns the palette theme closest to c. Exact distance ties go
// to the earlier entry in palette enumeration order.
func (m *Matcher) Match(c model.RGB) model.Match {
	var best palette.Theme
	bestDist := math.Inf(1)
	for _, t := range m.palette.Themes() {
		if d := Distance(c, t.Color); d < bestDist {
			best = t
			bestDist = d
		}
	}
	return model.Match{
		Theme:      best.Name,
		Distance:   bestDist,
		Confidence: m.confidence(bestDist),
	}
}

func (m *Matcher) confidence(dist float64) model.Confidence {
	switch {
	case dist < m.highCutoff:
		return model.ConfidenceHigh
	case dist < m.mediumCutoff:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}
