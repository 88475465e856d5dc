package imaging

import (
	"image"

	"golang.org/x/image/draw"
)

// Scale resizes img to w x h using Catmull-Rom interpolation.
func Scale(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// ScaleShorterSide resizes img so its shorter side equals target,
// preserving aspect ratio.
func ScaleShorterSide(img image.Image, target int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= h {
		h = int(float64(h) * float64(target) / float64(w))
		w = target
	} else {
		w = int(float64(w) * float64(target) / float64(h))
		h = target
	}
	return Scale(img, w, h)
}

// HorizontalFlip returns img mirrored left-to-right.
func HorizontalFlip(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(b.Max.X-1-x, y-b.Min.Y, img.At(x, y))
		}
	}
	return dst
}

// CenterCrop crops the central ratio portion of img (per linear
// dimension) and scales the crop back to the original size.
func CenterCrop(img image.Image, ratio float64) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	cw := int(float64(w) * ratio)
	ch := int(float64(h) * ratio)
	if cw < 1 {
		cw = 1
	}
	if ch < 1 {
		ch = 1
	}
	left := b.Min.X + (w-cw)/2
	top := b.Min.Y + (h-ch)/2
	crop := image.Rect(left, top, left+cw, top+ch)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, draw.Src, nil)
	return dst
}

// CenterCropSquare crops the central size x size region of img without
// rescaling. The image must be at least size in both dimensions.
func CenterCropSquare(img image.Image, size int) *image.RGBA {
	b := img.Bounds()
	left := b.Min.X + (b.Dx()-size)/2
	top := b.Min.Y + (b.Dy()-size)/2
	crop := image.Rect(left, top, left+size, top+size)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), img, crop.Min, draw.Src)
	return dst
}
