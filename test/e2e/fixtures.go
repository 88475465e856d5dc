// Package e2e provides end-to-end tests; this file renders the corpus images.
package e2e

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path"
	"path/filepath"

	"github.com/glancehq/glance/internal/imaging"
)

// swatchSize is the width and height of generated corpus images.
const swatchSize = 64

// SupportedImageExtensions lists the encodings RenderSwatchBytes can produce.
var SupportedImageExtensions = []string{".png", ".jpg"}

// RenderSwatch draws the deterministic image for a corpus ordinal: a
// solid background with a centered block, both colored by the ordinal.
// Background channels are spaced 16 apart between ordinals so swatches
// stay distinguishable even after a lossy JPEG round-trip, and the
// centered block keeps the image mirror-symmetric.
func RenderSwatch(ordinal int) *image.NRGBA {
	bg := colorForOrdinal(ordinal)
	fg := color.NRGBA{R: 255 - bg.R, G: 255 - bg.G, B: 255 - bg.B, A: 255}
	img := image.NewNRGBA(image.Rect(0, 0, swatchSize, swatchSize))
	for y := 0; y < swatchSize; y++ {
		for x := 0; x < swatchSize; x++ {
			img.SetNRGBA(x, y, bg)
		}
	}
	side := 16 + (ordinal%3)*8
	off := (swatchSize - side) / 2
	for y := off; y < off+side; y++ {
		for x := off; x < off+side; x++ {
			img.SetNRGBA(x, y, fg)
		}
	}
	return img
}

func colorForOrdinal(i int) color.NRGBA {
	return color.NRGBA{
		R: uint8((i%16)*16 + 8),
		G: uint8((i/16%16)*16 + 8),
		B: 128,
		A: 255,
	}
}

// RenderSwatchBytes encodes the ordinal's swatch with the given extension.
func RenderSwatchBytes(ordinal int, ext string) ([]byte, error) {
	img := RenderSwatch(ordinal)
	var buf bytes.Buffer
	switch ext {
	case ".png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	case ".jpg", ".jpeg":
		if err := imaging.EncodeJPEG(&buf, img); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported corpus extension %q", ext)
	}
	return buf.Bytes(), nil
}

// WriteCorpusImages writes every product's image under dir, creating
// category subdirectories as needed.
func WriteCorpusImages(dir string, products []E2EProduct) error {
	for _, p := range products {
		data, err := RenderSwatchBytes(p.Ordinal, path.Ext(p.Rel))
		if err != nil {
			return fmt.Errorf("render %s: %w", p.Rel, err)
		}
		abs := filepath.Join(dir, filepath.FromSlash(p.Rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(abs, data, 0644); err != nil {
			return err
		}
	}
	return nil
}
