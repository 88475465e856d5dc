package embedding

import (
	"image"

	"github.com/glancehq/glance/internal/imaging"
)

// InputSize is the square input resolution of the CLIP vision encoder.
const InputSize = 224

// Per-channel normalization constants of the CLIP image pipeline.
var (
	clipMean = [3]float32{0.48145466, 0.4578275, 0.40821073}
	clipStd  = [3]float32{0.26862954, 0.26130258, 0.27577711}
)

// Preprocess converts an image into the tensor layout the vision
// encoder expects: shorter side scaled to InputSize, center cropped to
// a square, channels normalized. The result has 3*InputSize*InputSize
// elements in CHW order.
func Preprocess(img image.Image) []float32 {
	scaled := imaging.ScaleShorterSide(img, InputSize)
	crop := imaging.CenterCropSquare(scaled, InputSize)

	plane := InputSize * InputSize
	out := make([]float32, 3*plane)
	for y := 0; y < InputSize; y++ {
		for x := 0; x < InputSize; x++ {
			c := crop.RGBAAt(x, y)
			i := y*InputSize + x
			out[i] = (float32(c.R)/255 - clipMean[0]) / clipStd[0]
			out[plane+i] = (float32(c.G)/255 - clipMean[1]) / clipStd[1]
			out[2*plane+i] = (float32(c.B)/255 - clipMean[2]) / clipStd[2]
		}
	}
	return out
}
