package model

import (
	"fmt"
	"time"
)

// RGB is an 8-bit-per-channel color triple.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the color as a #rrggbb string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) String() string {
	return fmt.Sprintf("RGB(%d,%d,%d)", c.R, c.G, c.B)
}

// Confidence labels how close a sampled color sits to its matched theme.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Match is the result of scoring one sampled color against the palette.
// Theme always names an existing palette entry.
type Match struct {
	Theme      string     `json:"theme"`
	Distance   float64    `json:"distance"`
	Confidence Confidence `json:"confidence"`
}

// Operation is the kind of file operation recorded in the undo log.
type Operation string

const (
	OpMove Operation = "move"
	OpCopy Operation = "copy"
)

// UndoEntry records one completed file operation. Entries sharing a
// Batch value were produced by the same run and are undone together.
type UndoEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	Batch       string    `json:"batch"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Theme       string    `json:"theme"`
	Operation   Operation `json:"operation"`
}
