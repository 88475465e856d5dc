package embedding

import (
	"context"
	"image"
	"image/color"
	"math"
	"testing"
)

func TestMockEmbedder_Deterministic(t *testing.T) {
	e := NewMockEmbedder(64)
	ctx := context.Background()
	img := testImage(32, 32, color.RGBA{R: 200, G: 10, B: 10, A: 255})

	a, err := e.Embed(ctx, img)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Embed(ctx, img)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("embeddings differ at %d", i)
		}
	}
}

func TestMockEmbedder_Normalized(t *testing.T) {
	e := NewMockEmbedder(128)
	emb, err := e.Embed(context.Background(), testImage(16, 16, color.RGBA{B: 255, A: 255}))
	if err != nil {
		t.Fatal(err)
	}
	var sum float64
	for _, v := range emb {
		sum += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(sum)-1) > 1e-5 {
		t.Errorf("norm = %v, want 1", math.Sqrt(sum))
	}
}

func TestMockEmbedder_DistinctImages(t *testing.T) {
	e := NewMockEmbedder(64)
	ctx := context.Background()
	a, _ := e.Embed(ctx, testImage(16, 16, color.RGBA{R: 255, A: 255}))
	b, _ := e.Embed(ctx, testImage(16, 16, color.RGBA{G: 255, A: 255}))
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different images should embed differently")
	}
}

func TestMockEmbedder_BatchOrder(t *testing.T) {
	e := NewMockEmbedder(32)
	ctx := context.Background()
	img1 := testImage(8, 8, color.RGBA{R: 1, A: 255})
	img2 := testImage(8, 8, color.RGBA{R: 2, A: 255})
	batch, err := e.EmbedBatch(ctx, []image.Image{img1, img2})
	if err != nil {
		t.Fatal(err)
	}
	single1, _ := e.Embed(ctx, img1)
	single2, _ := e.Embed(ctx, img2)
	if batch[0][0] != single1[0] || batch[1][0] != single2[0] {
		t.Error("batch results should match single embeds in input order")
	}
}
