// Package imaging provides image decoding, encoding, and the geometric
// transforms used for query augmentation and model preprocessing.
package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// JPEGQuality is used when re-encoding uploads for catalog storage.
const JPEGQuality = 90

// ErrUndecodable is returned when bytes cannot be decoded as an image
// in any registered format.
var ErrUndecodable = errors.New("undecodable image data")

// supportedExts lists the file extensions the catalog accepts, lowercase
// with leading dot.
var supportedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".jfif": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
	".webp": true,
}

// IsSupportedExt reports whether the file name has a supported image
// extension. Matching is case-insensitive.
func IsSupportedExt(name string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(name))]
}

// SupportedExtensions returns the accepted extensions in no particular order.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(supportedExts))
	for ext := range supportedExts {
		exts = append(exts, ext)
	}
	return exts
}

// Decode reads an image from r using the registered decoders.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	return img, nil
}

// DecodeFile opens and decodes the image at path.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// EncodeJPEG writes img to w as JPEG at catalog quality.
func EncodeJPEG(w io.Writer, img image.Image) error {
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}
	return nil
}
