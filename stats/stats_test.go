package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"huesort/model"
)

func TestReportEmpty(t *testing.T) {
	assert.Equal(t, "No images processed", Report(nil))
}

func TestReportCountsAndOrdering(t *testing.T) {
	results := []Result{
		{Theme: "nord", Confidence: model.ConfidenceHigh, Color: model.RGB{R: 46, G: 52, B: 64}},
		{Theme: "nord", Confidence: model.ConfidenceMedium, Color: model.RGB{R: 48, G: 54, B: 66}},
		{Theme: "gruvbox", Confidence: model.ConfidenceLow, Color: model.RGB{R: 40, G: 40, B: 40}},
	}

	report := Report(results)

	assert.Contains(t, report, "Total images processed: 3")
	assert.Contains(t, report, "THEME DISTRIBUTION")
	assert.Contains(t, report, "CONFIDENCE LEVELS")

	// Most frequent theme is listed first.
	nordAt := strings.Index(report, "nord")
	gruvboxAt := strings.Index(report, "gruvbox")
	assert.Greater(t, gruvboxAt, nordAt)

	// Mean color per theme.
	assert.Contains(t, report, "RGB(47,53,65)")
}

func TestReportPercentages(t *testing.T) {
	results := []Result{
		{Theme: "nord", Confidence: model.ConfidenceHigh},
		{Theme: "nord", Confidence: model.ConfidenceHigh},
	}

	report := Report(results)
	assert.Contains(t, report, "(100.0%)")
}
