// Package learn remembers manual theme corrections and applies them to
// future suggestions.
package learn

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"huesort/detect"
	"huesort/model"
)

// correctionRadius bounds how near a past correction's color must be,
// in RGB distance, to apply to a new sample.
const correctionRadius = 20.0

// Correction records one manual override of a suggested theme.
type Correction struct {
	Color     model.RGB `json:"color"`
	Suggested string    `json:"suggested"`
	Actual    string    `json:"actual"`
	Timestamp time.Time `json:"timestamp"`
}

type fileData struct {
	Corrections []Correction `json:"corrections"`
	LastUpdated time.Time    `json:"last_updated"`
}

// Learner persists corrections and adjusts suggestions against them.
type Learner struct {
	path        string
	corrections []Correction
}

// Load reads the corrections file at path. A missing file yields an
// empty learner.
func Load(path string) (*Learner, error) {
	l := &Learner{path: path}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("open corrections: %w", err)
	}
	defer f.Close()

	var data fileData
	if err := json.NewDecoder(f).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode corrections: %w", err)
	}
	l.corrections = data.Corrections
	return l, nil
}

// Record stores a manual override. Confirmed suggestions (suggested ==
// actual) are not corrections and are dropped.
func (l *Learner) Record(color model.RGB, suggested, actual string) error {
	if suggested == actual {
		return nil
	}
	l.corrections = append(l.corrections, Correction{
		Color:     color,
		Suggested: suggested,
		Actual:    actual,
		Timestamp: time.Now().UTC(),
	})
	return l.save()
}

// Adjust returns the corrected theme for color when a past correction
// applies, and the original suggestion otherwise. A correction applies
// when its color is within correctionRadius of the sample and its
// wrong suggestion matches the current one; the closest such
// correction wins.
func (l *Learner) Adjust(color model.RGB, suggested string) string {
	bestDist := correctionRadius
	adjusted := suggested

	for _, c := range l.corrections {
		d := detect.Distance(color, c.Color)
		if d < bestDist && c.Suggested == suggested {
			bestDist = d
			adjusted = c.Actual
		}
	}
	return adjusted
}

// Corrections returns all recorded corrections, oldest first.
func (l *Learner) Corrections() []Correction {
	out := make([]Correction, len(l.corrections))
	copy(out, l.corrections)
	return out
}

func (l *Learner) save() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create corrections dir: %w", err)
	}

	tmp := l.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("save corrections: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fileData{Corrections: l.corrections, LastUpdated: time.Now().UTC()}); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("save corrections: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save corrections: %w", err)
	}
	return os.Rename(tmp, l.path)
}
