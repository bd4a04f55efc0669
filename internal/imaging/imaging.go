// Package imaging holds the pixel-level collaborators of the packer: decoding
// source sprites, finding their opaque area, rotating, blitting into the
// atlas canvas and encoding the result.
package imaging

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/gift"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Load decodes the image at path. Any format registered with the image
// package is accepted: PNG, JPEG, GIF, BMP, TIFF and WebP.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Decode reads an image from r.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// FillArea returns the bounding box of all pixels with non-zero alpha,
// relative to the image origin. A fully transparent image yields a 1x1
// area at the origin so it still takes a slot in the atlas.
func FillArea(img image.Image) image.Rectangle {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a == 0 {
				continue
			}
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x)
			maxY = max(maxY, y)
		}
	}

	if maxX < minX {
		return image.Rect(0, 0, 1, 1)
	}
	return image.Rect(minX, minY, maxX+1, maxY+1).Sub(b.Min)
}

// Rotate returns img turned 90 degrees clockwise.
func Rotate(img image.Image) *image.NRGBA {
	g := gift.New(gift.Rotate270())
	dst := image.NewNRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

// NewCanvas returns a fully transparent w x h atlas canvas.
func NewCanvas(w, h int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

// Blit copies the fill area of src (relative to its origin) into dst with
// its top-left corner at at. Pixels falling outside dst are clipped.
func Blit(dst draw.Image, src image.Image, fill image.Rectangle, at image.Point) {
	sr := fill.Add(src.Bounds().Min)
	draw.Copy(dst, at, src, sr, draw.Src, nil)
}

// SavePNG encodes img as PNG at path, creating parent directories.
func SavePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return f.Close()
}
