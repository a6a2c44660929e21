package detect

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huesort/model"
)

func writePNG(t *testing.T, path string, fill func(x, y int) color.RGBA) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, fill(x, y))
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestSampleAverageSolidColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solid.png")
	writePNG(t, path, func(int, int) color.RGBA {
		return color.RGBA{R: 43, G: 51, B: 57, A: 255}
	})

	got, err := NewSampler(StrategyAverage).Sample(path)
	require.NoError(t, err)
	assert.Equal(t, model.RGB{R: 43, G: 51, B: 57}, got)
}

func TestSampleAverageMixedColors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "split.png")
	writePNG(t, path, func(x, _ int) color.RGBA {
		if x < 16 {
			return color.RGBA{A: 255} // black
		}
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	})

	got, err := NewSampler(StrategyAverage).Sample(path)
	require.NoError(t, err)
	assert.InDelta(t, 127, float64(got.R), 2)
	assert.InDelta(t, 127, float64(got.G), 2)
	assert.InDelta(t, 127, float64(got.B), 2)
}

func TestSampleUnsupportedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, err := NewSampler(StrategyAverage).Sample(path)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestSampleMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.png")
	_, err := NewSampler(StrategyAverage).Sample(path)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Contains(t, err.Error(), path)
}

func TestNewSamplerDefaultsToAverage(t *testing.T) {
	s := NewSampler("")
	assert.Equal(t, StrategyAverage, s.strategy)
}
