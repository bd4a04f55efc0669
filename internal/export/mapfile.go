// Package export writes a packed atlas out to map files and layout reports.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/piwi3910/AtlasPack/internal/model"
	"howett.net/plist"
)

// WriteMap serializes the frame coordinates of atlas in the given format.
func WriteMap(w io.Writer, atlas model.Atlas, format model.MapFormat) error {
	switch format {
	case model.FormatTXT:
		return writeTXT(w, atlas)
	case model.FormatJSON:
		return writeJSON(w, atlas)
	case model.FormatPlist:
		return writePlist(w, atlas)
	default:
		return fmt.Errorf("unsupported map format %q", format)
	}
}

// SaveMap writes the map file to path, creating parent directories.
func SaveMap(path string, atlas model.Atlas, format model.MapFormat) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create map file: %w", err)
	}

	if err := WriteMap(f, atlas, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeTXT writes one header line and one line per frame in placement order:
//
//	atlas: "atlas.png" 256,256 total 4
//	hero.png: 0,0 x 30,40 offset 1,2 orgsize 32,44 original
func writeTXT(w io.Writer, atlas model.Atlas) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "atlas: \"%s\" %d,%d total %d\n", atlas.Name, atlas.Width, atlas.Height, len(atlas.Frames))

	for _, f := range atlas.Frames {
		s := f.Sprite
		orientation := "original"
		if f.Rotated {
			orientation = "rotated"
		}
		fmt.Fprintf(bw, "%s: %d,%d x %d,%d offset %d,%d orgsize %d,%d %s\n",
			s.MapName(), f.X, f.Y, s.FillW, s.FillH, s.FillX, s.FillY, s.Width, s.Height, orientation)
	}
	return bw.Flush()
}

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       jsonSize `json:"sourceSize"`
}

type jsonMeta struct {
	Image  string   `json:"image"`
	Size   jsonSize `json:"size"`
	Format string   `json:"format"`
}

type jsonAtlas struct {
	Frames map[string]jsonFrame `json:"frames"`
	Meta   jsonMeta             `json:"meta"`
}

// writeJSON writes the hash-style frame map used by most sprite sheet
// loaders. Frame keys come out sorted.
func writeJSON(w io.Writer, atlas model.Atlas) error {
	doc := jsonAtlas{
		Frames: make(map[string]jsonFrame, len(atlas.Frames)),
		Meta: jsonMeta{
			Image:  atlas.Name,
			Size:   jsonSize{W: atlas.Width, H: atlas.Height},
			Format: "RGBA8888",
		},
	}

	for _, f := range atlas.Frames {
		s := f.Sprite
		doc.Frames[s.MapName()] = jsonFrame{
			Frame:            jsonRect{X: f.X, Y: f.Y, W: s.FillW, H: s.FillH},
			Rotated:          f.Rotated,
			Trimmed:          s.Trimmed(),
			SpriteSourceSize: jsonRect{X: s.FillX, Y: s.FillY, W: s.FillW, H: s.FillH},
			SourceSize:       jsonSize{W: s.Width, H: s.Height},
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize map: %w", err)
	}
	data = append(data, '\n')

	_, err = w.Write(data)
	return err
}

type plistFrame struct {
	Frame           string `plist:"frame"`
	Offset          string `plist:"offset"`
	Rotated         bool   `plist:"rotated"`
	SourceColorRect string `plist:"sourceColorRect"`
	SourceSize      string `plist:"sourceSize"`
}

type plistMetadata struct {
	Format          int    `plist:"format"`
	Size            string `plist:"size"`
	TextureFileName string `plist:"textureFileName"`
}

type plistAtlas struct {
	Frames   map[string]plistFrame `plist:"frames"`
	Metadata plistMetadata         `plist:"metadata"`
}

// writePlist writes a Cocos2d format-2 property list.
func writePlist(w io.Writer, atlas model.Atlas) error {
	doc := plistAtlas{
		Frames: make(map[string]plistFrame, len(atlas.Frames)),
		Metadata: plistMetadata{
			Format:          2,
			Size:            fmt.Sprintf("{%d,%d}", atlas.Width, atlas.Height),
			TextureFileName: atlas.Name,
		},
	}

	for _, f := range atlas.Frames {
		s := f.Sprite
		doc.Frames[s.MapName()] = plistFrame{
			Frame:           fmt.Sprintf("{{%d,%d},{%d,%d}}", f.X, f.Y, s.FillW, s.FillH),
			Offset:          fmt.Sprintf("{%d,%d}", s.Width/2-s.FillX, s.Height/2-s.FillY),
			Rotated:         f.Rotated,
			SourceColorRect: fmt.Sprintf("{{%d,%d},{%d,%d}}", s.FillX, s.FillY, s.FillW, s.FillH),
			SourceSize:      fmt.Sprintf("{%d,%d}", s.Width, s.Height),
		}
	}

	data, err := plist.MarshalIndent(doc, plist.XMLFormat, "\t")
	if err != nil {
		return fmt.Errorf("failed to serialize map: %w", err)
	}
	data = append(data, '\n')

	_, err = w.Write(data)
	return err
}
