package model

import (
	"image"
	"strings"

	"github.com/google/uuid"
)

// Sprite is one source image waiting to be packed. The fill area is the
// sub-rectangle that actually ends up in the atlas; for untrimmed sprites it
// spans the whole image.
type Sprite struct {
	ID     string `json:"id"`
	Name   string `json:"name"` // Key written to the map file
	Path   string `json:"path"`
	Width  int    `json:"width"`  // px, original image width
	Height int    `json:"height"` // px, original image height

	FillX int `json:"fill_x"`
	FillY int `json:"fill_y"`
	FillW int `json:"fill_w"`
	FillH int `json:"fill_h"`

	Image image.Image `json:"-"`
}

// NewSprite returns an untrimmed sprite of w x h with a fresh ID.
func NewSprite(name, path string, w, h int) Sprite {
	return Sprite{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Path:   path,
		Width:  w,
		Height: h,
		FillW:  w,
		FillH:  h,
	}
}

// Fill returns the fill area in image coordinates.
func (s Sprite) Fill() image.Rectangle {
	return image.Rect(s.FillX, s.FillY, s.FillX+s.FillW, s.FillY+s.FillH)
}

// SetFill replaces the fill area.
func (s *Sprite) SetFill(r image.Rectangle) {
	s.FillX, s.FillY = r.Min.X, r.Min.Y
	s.FillW, s.FillH = r.Dx(), r.Dy()
}

// Trimmed reports whether transparent borders were cut away.
func (s Sprite) Trimmed() bool {
	return s.FillW != s.Width || s.FillH != s.Height
}

// MapName is the name used as the map file key, with forward slashes only.
func (s Sprite) MapName() string {
	return strings.ReplaceAll(s.Name, "\\", "/")
}

// Rotated returns the geometry of s turned 90 degrees clockwise. Image is
// carried over untouched; pixel rotation is up to the caller.
func (s Sprite) Rotated() Sprite {
	r := s
	r.Width, r.Height = s.Height, s.Width
	r.FillX = s.Height - s.FillY - s.FillH
	r.FillY = s.FillX
	r.FillW, r.FillH = s.FillH, s.FillW
	return r
}

// Frame is a sprite placed in the atlas. Sprite already holds the rotated
// geometry when Rotated is set.
type Frame struct {
	Sprite  Sprite `json:"sprite"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Rotated bool   `json:"rotated"`
}

// PlacedWidth returns the width the frame occupies in the atlas.
func (f Frame) PlacedWidth() int { return f.Sprite.FillW }

// PlacedHeight returns the height the frame occupies in the atlas.
func (f Frame) PlacedHeight() int { return f.Sprite.FillH }

// Bounds returns the frame rectangle in atlas coordinates.
func (f Frame) Bounds() image.Rectangle {
	return image.Rect(f.X, f.Y, f.X+f.PlacedWidth(), f.Y+f.PlacedHeight())
}

// FreeRegion is unused space left in the packing bin.
type FreeRegion struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns Width * Height.
func (r FreeRegion) Area() int {
	return r.Width * r.Height
}

// Atlas is the packed result: the final power-of-two size, every frame in
// placement order, and the free space the packer finished with.
type Atlas struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"` // Output image file name
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	Frames   []Frame      `json:"frames"`
	Free     []FreeRegion `json:"free,omitempty"`
	Attempts int          `json:"attempts"`
}

// NewAtlas returns an empty atlas of w x h with a fresh ID.
func NewAtlas(name string, w, h int) Atlas {
	return Atlas{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Width:  w,
		Height: h,
	}
}

// UsedArea returns the total area covered by frames.
func (a Atlas) UsedArea() int {
	area := 0
	for _, f := range a.Frames {
		area += f.PlacedWidth() * f.PlacedHeight()
	}
	return area
}

// TotalArea returns the atlas area.
func (a Atlas) TotalArea() int {
	return a.Width * a.Height
}

// Efficiency returns the usage percentage.
func (a Atlas) Efficiency() float64 {
	ta := a.TotalArea()
	if ta == 0 {
		return 0
	}
	return float64(a.UsedArea()) / float64(ta) * 100.0
}

// RotatedCount returns how many frames were placed rotated.
func (a Atlas) RotatedCount() int {
	n := 0
	for _, f := range a.Frames {
		if f.Rotated {
			n++
		}
	}
	return n
}
