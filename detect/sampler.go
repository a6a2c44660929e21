// Package detect reduces images to a representative color and matches
// it against the theme palette.
package detect

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"huesort/model"
)

// ErrDecode reports an unreadable or unsupported image file. Callers
// skip the file and continue the batch.
var ErrDecode = errors.New("decode image")

// Strategy selects how a Sampler reduces an image to one color.
type Strategy string

const (
	// StrategyAverage is the mean color over a downscaled thumbnail.
	StrategyAverage Strategy = "average"
	// StrategyDominant is the largest k-means cluster.
	StrategyDominant Strategy = "dominant"
)

// Full-size scans are wasted work for a single triple.
const thumbSize = 64

// Sampler reduces image files to one representative color.
type Sampler struct {
	strategy Strategy
}

// NewSampler creates a sampler using the given strategy. An empty
// strategy defaults to StrategyAverage.
func NewSampler(strategy Strategy) *Sampler {
	if strategy == "" {
		strategy = StrategyAverage
	}
	return &Sampler{strategy: strategy}
}

// Sample decodes the image at path and returns its representative
// color. Failures to open or decode wrap ErrDecode.
func (s *Sampler) Sample(path string) (model.RGB, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.RGB{}, fmt.Errorf("%w %s: %v", ErrDecode, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return model.RGB{}, fmt.Errorf("%w %s: %v", ErrDecode, path, err)
	}

	if s.strategy == StrategyDominant {
		return dominantColor(img)
	}
	return averageColor(img), nil
}

func averageColor(img image.Image) model.RGB {
	thumb := resize.Thumbnail(thumbSize, thumbSize, img, resize.Bilinear)
	bounds := thumb.Bounds()

	var r, g, b, n uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			cr, cg, cb, _ := thumb.At(x, y).RGBA()
			r += uint64(cr >> 8)
			g += uint64(cg >> 8)
			b += uint64(cb >> 8)
			n++
		}
	}
	if n == 0 {
		return model.RGB{}
	}
	return model.RGB{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n)}
}

func dominantColor(img image.Image) (model.RGB, error) {
	colors, err := prominentcolor.KmeansWithArgs(prominentcolor.ArgumentNoCropping, img)
	if err != nil {
		return model.RGB{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var best *prominentcolor.ColorItem
	for i := range colors {
		if best == nil || colors[i].Cnt > best.Cnt {
			best = &colors[i]
		}
	}
	if best == nil {
		return model.RGB{}, fmt.Errorf("%w: no color clusters found", ErrDecode)
	}
	return model.RGB{
		R: uint8(best.Color.R),
		G: uint8(best.Color.G),
		B: uint8(best.Color.B),
	}, nil
}
