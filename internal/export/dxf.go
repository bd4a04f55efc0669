package export

import (
	"fmt"
	"path"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names.
const (
	LayerAtlas  = "ATLAS"
	LayerFrames = "FRAMES"
	LayerFree   = "FREE"
	LayerLabels = "LABELS"
)

// ExportDXF writes the atlas layout as a DXF drawing in pixel units: the
// atlas outline, one outline per frame, the free regions and the frame names,
// each on its own layer. The Y axis points up, so image rows are flipped.
func ExportDXF(outPath string, atlas model.Atlas) error {
	if len(atlas.Frames) == 0 {
		return fmt.Errorf("no frames to export")
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name string
		cl   color.ColorNumber
	}{
		{LayerAtlas, color.White},
		{LayerFree, color.Cyan},
		{LayerFrames, color.Green},
		{LayerLabels, color.Yellow},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.cl, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	flip := func(y int) float64 { return float64(atlas.Height - y) }

	if err := d.ChangeLayer(LayerAtlas); err != nil {
		return err
	}
	if err := drawRect(d, 0, flip(0), float64(atlas.Width), float64(atlas.Height)); err != nil {
		return err
	}

	if err := d.ChangeLayer(LayerFree); err != nil {
		return err
	}
	for _, r := range atlas.Free {
		if err := drawRect(d, float64(r.X), flip(r.Y), float64(r.Width), float64(r.Height)); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer(LayerFrames); err != nil {
		return err
	}
	for _, f := range atlas.Frames {
		if err := drawRect(d, float64(f.X), flip(f.Y), float64(f.PlacedWidth()), float64(f.PlacedHeight())); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer(LayerLabels); err != nil {
		return err
	}
	for _, f := range atlas.Frames {
		height := min(float64(f.PlacedHeight())/4, 8)
		if height < 1 {
			continue
		}
		label := path.Base(f.Sprite.MapName())
		if _, err := d.Text(label, float64(f.X)+1, flip(f.Y)-height-1, 0, height); err != nil {
			return fmt.Errorf("failed to add label for %s: %w", label, err)
		}
	}

	return d.SaveAs(outPath)
}

// drawRect draws a w x h rectangle whose top-left corner is (x, top).
func drawRect(d *drawing.Drawing, x, top, w, h float64) error {
	bottom := top - h
	right := x + w
	edges := [][4]float64{
		{x, top, right, top},
		{right, top, right, bottom},
		{right, bottom, x, bottom},
		{x, bottom, x, top},
	}
	for _, e := range edges {
		if _, err := d.Line(e[0], e[1], 0, e[2], e[3], 0); err != nil {
			return fmt.Errorf("failed to add line: %w", err)
		}
	}
	return nil
}
