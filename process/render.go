package process

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"huesort/model"
)

var (
	highBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	medBadge  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	lowBadge  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func confidenceBadge(c model.Confidence) string {
	switch c {
	case model.ConfidenceHigh:
		return highBadge.Render("[HIGH]")
	case model.ConfidenceMedium:
		return medBadge.Render("[MED]")
	default:
		return lowBadge.Render("[LOW]")
	}
}

// swatch renders a colored block in the sampled color.
func swatch(c model.RGB) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("■")
}

func renderSuggestion(d detection) string {
	return fmt.Sprintf("%s detected: %s (%s %s, distance %.1f)",
		confidenceBadge(d.match.Confidence),
		d.match.Theme,
		swatch(d.color),
		d.color,
		d.match.Distance,
	)
}

// RenderSummary formats the end-of-batch tally.
func RenderSummary(sum Summary) string {
	var b strings.Builder
	rule := strings.Repeat("=", 50)

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Success: %d\n", sum.Succeeded)
	if sum.Failed > 0 {
		fmt.Fprintf(&b, "Failed:  %d\n", sum.Failed)
	}
	if sum.Skipped > 0 {
		fmt.Fprintf(&b, "Skipped: %d\n", sum.Skipped)
	}
	b.WriteString(rule)
	return b.String()
}
