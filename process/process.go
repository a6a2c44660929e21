// Package process drives the sequential per-image organizing loop:
// sample, match, apply learned corrections, confirm, move or copy.
package process

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"huesort/detect"
	"huesort/learn"
	"huesort/model"
	"huesort/mover"
	"huesort/palette"
	"huesort/picker"
	"huesort/stats"
)

// Mode selects how a theme is chosen per image.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeManual Mode = "manual"
)

// Summary tallies one batch run.
type Summary struct {
	Succeeded int
	Failed    int
	Skipped   int
	Results   []stats.Result
}

// detection pairs a sampled color with its palette match.
type detection struct {
	color model.RGB
	match model.Match
}

// Processor organizes a batch of images one at a time. Processing is
// strictly sequential; the only suspension points are image decode,
// picker invocations, and the file operations themselves.
type Processor struct {
	Sampler *detect.Sampler
	Matcher *detect.Matcher
	Palette *palette.Palette
	Mover   *mover.Mover
	Learner *learn.Learner
	Picker  picker.Picker
	Mode    Mode
	Copy    bool
	DryRun  bool
}

// Run processes images in order. Cancellation (context done or picker
// abort) stops before the next untouched file; operations already
// completed stay logged and undoable. Per-file decode and I/O errors
// are reported and never abort the batch.
func (p *Processor) Run(ctx context.Context, images []string) (Summary, error) {
	var sum Summary

	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		fmt.Printf("[%d/%d] %s\n", i+1, len(images), filepath.Base(img))

		theme, det, err := p.selectTheme(img)
		if err != nil {
			// Picker cancellation or a dead context: stop before the
			// next untouched file.
			return sum, err
		}
		if theme == "" {
			fmt.Println("   skipped (no theme selected)")
			sum.Skipped++
			continue
		}

		dst, err := p.place(img, theme)
		if err != nil {
			log.Errorf("%s: %v", filepath.Base(img), err)
			sum.Failed++
			continue
		}
		fmt.Printf("   %s\n", p.describe(img, dst, theme))
		sum.Succeeded++

		if det != nil {
			sum.Results = append(sum.Results, stats.Result{
				Theme:      theme,
				Confidence: det.match.Confidence,
				Color:      det.color,
			})
		}
	}
	return sum, nil
}

func (p *Processor) place(img, theme string) (string, error) {
	if p.Copy {
		return p.Mover.Copy(img, theme)
	}
	return p.Mover.Move(img, theme)
}

func (p *Processor) describe(img, dst, theme string) string {
	verb := "moved"
	if p.Copy {
		verb = "copied"
	}
	if p.DryRun {
		verb = "would be " + verb
	}
	return fmt.Sprintf("%s %s -> %s/%s", filepath.Base(img), verb, theme, filepath.Base(dst))
}

// selectTheme resolves the theme for one image. An empty theme with a
// nil error means the image is skipped.
func (p *Processor) selectTheme(img string) (string, *detection, error) {
	if p.Mode == ModeManual {
		theme, err := p.pickTheme()
		return theme, nil, err
	}
	return p.autoTheme(img)
}

func (p *Processor) autoTheme(img string) (string, *detection, error) {
	// Every sampling failure wraps detect.ErrDecode: fall back to a
	// manual pick and keep the batch going.
	color, err := p.Sampler.Sample(img)
	if err != nil {
		log.Warnf("could not analyze %s: %v", filepath.Base(img), err)
		theme, perr := p.pickTheme()
		return theme, nil, perr
	}

	match := p.Matcher.Match(color)
	if p.Learner != nil {
		if adjusted := p.Learner.Adjust(color, match.Theme); adjusted != match.Theme {
			fmt.Printf("   learned override: %s -> %s\n", match.Theme, adjusted)
			match.Theme = adjusted
		}
	}
	det := &detection{color: color, match: match}
	fmt.Println("   " + renderSuggestion(*det))

	confirmed, err := p.Picker.Confirm(
		fmt.Sprintf("[%s] Use theme %q?", filepath.Base(img), match.Theme),
		"Yes, use this theme",
		"No, pick different theme",
	)
	if err != nil {
		return "", nil, err
	}
	if confirmed {
		return match.Theme, det, nil
	}

	theme, err := p.pickTheme()
	if err != nil {
		return "", nil, err
	}
	if theme != "" && p.Learner != nil {
		if lerr := p.Learner.Record(color, match.Theme, theme); lerr != nil {
			log.Warnf("save correction: %v", lerr)
		}
	}
	return theme, det, nil
}

// pickTheme asks the user to choose from the palette. An unknown or
// empty choice skips the image.
func (p *Processor) pickTheme() (string, error) {
	theme, err := p.Picker.Pick(p.Palette.Names(), "Select theme: ")
	if err != nil {
		return "", err
	}
	if !p.Palette.Has(theme) {
		return "", nil
	}
	return theme, nil
}
