package embedding

import (
	"context"
	"encoding/binary"
	"hash/fnv"
	"image"
	"math"

	"github.com/glancehq/glance/internal/vecmath"
)

// MockEmbedder is a deterministic embedder for tests and model-less
// operation. It derives a fixed-dimension vector from a hash of the
// image content so that the same image always gets the same embedding.
type MockEmbedder struct {
	dimensions int
}

// NewMockEmbedder returns an embedder that produces deterministic embeddings of the given dimensions.
func NewMockEmbedder(dimensions int) *MockEmbedder {
	if dimensions <= 0 {
		dimensions = 512
	}
	return &MockEmbedder{dimensions: dimensions}
}

// Embed returns a deterministic embedding based on the image hash.
func (e *MockEmbedder) Embed(ctx context.Context, img image.Image) ([]float32, error) {
	h := float64(hashImage(img) % 1000003)
	emb := make([]float32, e.dimensions)
	for i := 0; i < e.dimensions; i++ {
		emb[i] = float32(math.Sin(h*float64(i+1))*0.1 + 0.01)
	}
	if _, err := vecmath.Normalize(emb); err != nil {
		return nil, err
	}
	return emb, nil
}

// EmbedBatch calls Embed for each image.
func (e *MockEmbedder) EmbedBatch(ctx context.Context, imgs []image.Image) ([][]float32, error) {
	embeddings := make([][]float32, len(imgs))
	for i, img := range imgs {
		emb, err := e.Embed(ctx, img)
		if err != nil {
			return nil, err
		}
		embeddings[i] = emb
	}
	return embeddings, nil
}

// Dimensions returns the embedding dimension.
func (e *MockEmbedder) Dimensions() int {
	return e.dimensions
}

// ModelID identifies the mock so indices built with it are never
// mistaken for real model output.
func (e *MockEmbedder) ModelID() string {
	return "mock"
}

// Close is a no-op for MockEmbedder.
func (e *MockEmbedder) Close() error {
	return nil
}

// hashImage hashes the image bounds and a coarse grid of sampled
// pixels. Enough to tell distinct images apart while staying cheap.
func hashImage(img image.Image) uint64 {
	b := img.Bounds()
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(b.Dx()))
	binary.LittleEndian.PutUint32(buf[4:], uint32(b.Dy()))
	h.Write(buf[:])

	const grid = 8
	for gy := 0; gy < grid; gy++ {
		for gx := 0; gx < grid; gx++ {
			x := b.Min.X + b.Dx()*gx/grid
			y := b.Min.Y + b.Dy()*gy/grid
			r, g, bl, a := img.At(x, y).RGBA()
			binary.LittleEndian.PutUint16(buf[0:], uint16(r))
			binary.LittleEndian.PutUint16(buf[2:], uint16(g))
			binary.LittleEndian.PutUint16(buf[4:], uint16(bl))
			binary.LittleEndian.PutUint16(buf[6:], uint16(a))
			h.Write(buf[:])
		}
	}
	return h.Sum64()
}
