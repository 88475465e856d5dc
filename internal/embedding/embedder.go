// Package embedding provides image embedding via ONNX and caching.
package embedding

import (
	"context"
	"errors"
	"image"
)

// ErrEmbed wraps inference failures inside an embedder implementation.
var ErrEmbed = errors.New("embedding failed")

// Embedder produces vector embeddings for images. Results come back in
// input order; failure of any image fails the whole batch.
type Embedder interface {
	Embed(ctx context.Context, img image.Image) ([]float32, error)
	EmbedBatch(ctx context.Context, imgs []image.Image) ([][]float32, error)
	Dimensions() int
	// ModelID identifies the underlying model; indices record it so a
	// snapshot built with a different model is detected as stale.
	ModelID() string
	Close() error
}
