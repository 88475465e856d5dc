package imaging

import "image"

// DefaultCropRatio is the fraction of each linear dimension retained by
// the center-crop augmentation.
const DefaultCropRatio = 0.9

// AugmentConfig controls which query variants are produced.
type AugmentConfig struct {
	HorizontalFlip bool
	CenterCrop     bool
	CropRatio      float64
}

// Augmenter expands one query image into variants. Each variant is
// embedded separately and the embeddings pooled into a single query
// vector, which makes matching tolerant to mirrored or loosely framed
// query photos.
type Augmenter struct {
	cfg AugmentConfig
}

// NewAugmenter returns an Augmenter for the given config. A crop ratio
// outside (0, 1] falls back to DefaultCropRatio.
func NewAugmenter(cfg AugmentConfig) *Augmenter {
	if cfg.CropRatio <= 0 || cfg.CropRatio > 1 {
		cfg.CropRatio = DefaultCropRatio
	}
	return &Augmenter{cfg: cfg}
}

// Variants returns the query image plus any enabled augmentations.
// The original is always first; with all augmentations disabled the
// result is just the original.
func (a *Augmenter) Variants(img image.Image) []image.Image {
	out := []image.Image{img}
	if a.cfg.HorizontalFlip {
		out = append(out, HorizontalFlip(img))
	}
	if a.cfg.CenterCrop {
		out = append(out, CenterCrop(img, a.cfg.CropRatio))
	}
	return out
}
