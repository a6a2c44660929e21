// Package stats renders batch processing reports.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"huesort/model"
)

// Result captures one processed image for reporting.
type Result struct {
	Theme      string
	Confidence model.Confidence
	Color      model.RGB
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// Report renders per-theme and per-confidence distributions for a
// batch. Themes are ordered by count, then name, for stable output.
func Report(results []Result) string {
	if len(results) == 0 {
		return "No images processed"
	}

	themeCounts := make(map[string]int)
	confCounts := make(map[model.Confidence]int)
	themeColors := make(map[string][]model.RGB)
	for _, r := range results {
		themeCounts[r.Theme]++
		confCounts[r.Confidence]++
		themeColors[r.Theme] = append(themeColors[r.Theme], r.Color)
	}

	themes := make([]string, 0, len(themeCounts))
	maxNameLen := 0
	for t := range themeCounts {
		themes = append(themes, t)
		if len(t) > maxNameLen {
			maxNameLen = len(t)
		}
	}
	sort.Slice(themes, func(i, j int) bool {
		if themeCounts[themes[i]] != themeCounts[themes[j]] {
			return themeCounts[themes[i]] > themeCounts[themes[j]]
		}
		return themes[i] < themes[j]
	})

	var b strings.Builder
	rule := strings.Repeat("=", 60)

	b.WriteString(rule + "\n")
	b.WriteString(headerStyle.Render("PROCESSING STATISTICS") + "\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Total images processed: %d\n", len(results))

	b.WriteString("\n" + headerStyle.Render("THEME DISTRIBUTION") + "\n")
	for _, theme := range themes {
		count := themeCounts[theme]
		pct := float64(count) / float64(len(results)) * 100
		mean := meanColor(themeColors[theme])
		fmt.Fprintf(&b, "%-*s | %4d (%5.1f%%) %s %s\n",
			maxNameLen, theme, count, pct, bar(pct), mean)
	}

	b.WriteString("\n" + headerStyle.Render("CONFIDENCE LEVELS") + "\n")
	for _, conf := range []model.Confidence{model.ConfidenceHigh, model.ConfidenceMedium, model.ConfidenceLow} {
		count := confCounts[conf]
		pct := float64(count) / float64(len(results)) * 100
		fmt.Fprintf(&b, "%-6s | %4d (%5.1f%%) %s\n", conf, count, pct, bar(pct))
	}

	b.WriteString(rule)
	return b.String()
}

// bar scales a percentage to at most 50 characters.
func bar(pct float64) string {
	return barStyle.Render(strings.Repeat("█", int(pct/2)))
}

func meanColor(colors []model.RGB) model.RGB {
	if len(colors) == 0 {
		return model.RGB{}
	}
	var r, g, b uint64
	for _, c := range colors {
		r += uint64(c.R)
		g += uint64(c.G)
		b += uint64(c.B)
	}
	n := uint64(len(colors))
	return model.RGB{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n)}
}
