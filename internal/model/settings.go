package model

import (
	"fmt"
	"strings"
)

// MapFormat is the coordinate map file format written next to the atlas.
type MapFormat string

const (
	FormatTXT   MapFormat = "txt"
	FormatJSON  MapFormat = "json"
	FormatPlist MapFormat = "plist" // Cocos2d-style property list
)

// MapFormats lists every supported format.
func MapFormats() []MapFormat {
	return []MapFormat{FormatTXT, FormatJSON, FormatPlist}
}

// Extension returns the file extension including the dot.
func (f MapFormat) Extension() string {
	return "." + string(f)
}

// ParseMapFormat parses a map format name, ignoring case and surrounding space.
func ParseMapFormat(s string) (MapFormat, error) {
	key := MapFormat(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range MapFormats() {
		if key == f {
			return f, nil
		}
	}
	return FormatPlist, fmt.Errorf("unknown map format %q (want txt, json or plist)", s)
}

// Settings holds every user-facing packing and output knob.
type Settings struct {
	// Packing
	MinWidth    int    `json:"min_width" yaml:"min_width" mapstructure:"min_width"`
	MinHeight   int    `json:"min_height" yaml:"min_height" mapstructure:"min_height"`
	MaxWidth    int    `json:"max_width" yaml:"max_width" mapstructure:"max_width"`
	MaxHeight   int    `json:"max_height" yaml:"max_height" mapstructure:"max_height"`
	PaddingX    int    `json:"padding_x" yaml:"padding_x" mapstructure:"padding_x"`
	PaddingY    int    `json:"padding_y" yaml:"padding_y" mapstructure:"padding_y"`
	AllowFlip   bool   `json:"allow_flip" yaml:"allow_flip" mapstructure:"allow_flip"`
	ForceSquare bool   `json:"force_square" yaml:"force_square" mapstructure:"force_square"`
	Merge       bool   `json:"merge" yaml:"merge" mapstructure:"merge"`             // Coalesce free rectangles after each placement
	Heuristic   string `json:"heuristic" yaml:"heuristic" mapstructure:"heuristic"` // Rect choice heuristic name or short code
	Split       string `json:"split" yaml:"split" mapstructure:"split"`             // Split rule name or short code
	Trim        bool   `json:"trim" yaml:"trim" mapstructure:"trim"`                // Cut transparent borders before packing

	// Output
	Output   string    `json:"output" yaml:"output" mapstructure:"output"` // Base path, extensions are added
	Format   MapFormat `json:"format" yaml:"format" mapstructure:"format"`
	Report   bool      `json:"report" yaml:"report" mapstructure:"report"` // Also write a PDF layout report
	DXF      bool      `json:"dxf" yaml:"dxf" mapstructure:"dxf"`          // Also write a DXF layout drawing
	CacheDir string    `json:"cache_dir" yaml:"cache_dir" mapstructure:"cache_dir"`
}

// DefaultSettings returns sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		MinWidth:    64,
		MinHeight:   64,
		MaxWidth:    4096,
		MaxHeight:   4096,
		PaddingX:    1,
		PaddingY:    1,
		AllowFlip:   false,
		ForceSquare: false,
		Merge:       true,
		Heuristic:   "best-short-side-fit",
		Split:       "shorter-leftover-axis",
		Trim:        true,
		Output:      "atlas",
		Format:      FormatPlist,
	}
}

// ImagePath returns the output PNG path.
func (s Settings) ImagePath() string {
	return s.Output + ".png"
}

// MapPath returns the output map file path.
func (s Settings) MapPath() string {
	return s.Output + s.Format.Extension()
}

// ReportPath returns the output PDF path.
func (s Settings) ReportPath() string {
	return s.Output + ".pdf"
}

// DXFPath returns the output DXF path.
func (s Settings) DXFPath() string {
	return s.Output + ".dxf"
}
