package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"path"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/AtlasPack/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// frameColor represents an RGB color for a placed frame.
type frameColor struct {
	R, G, B int
}

var frameColors = []frameColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	qrSize       = 40.0
	rowHeight    = 6.0
)

// AtlasInfo is the atlas summary encoded into the report's QR code.
type AtlasInfo struct {
	Name       string  `json:"name"`
	Width      int     `json:"w"`
	Height     int     `json:"h"`
	Frames     int     `json:"frames"`
	Rotated    int     `json:"rotated"`
	Efficiency float64 `json:"efficiency"`
}

// NewAtlasInfo summarizes atlas for the QR code.
func NewAtlasInfo(atlas model.Atlas) AtlasInfo {
	return AtlasInfo{
		Name:       atlas.Name,
		Width:      atlas.Width,
		Height:     atlas.Height,
		Frames:     len(atlas.Frames),
		Rotated:    atlas.RotatedCount(),
		Efficiency: math.Round(atlas.Efficiency()*10) / 10,
	}
}

// ExportPDF generates a layout report for the atlas: a scaled drawing of
// every frame and the leftover free space, followed by summary pages with
// statistics, the frame table and the settings used.
func ExportPDF(outPath string, atlas model.Atlas, settings model.Settings) error {
	if len(atlas.Frames) == 0 {
		return fmt.Errorf("no frames to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderAtlasPage(pdf, atlas)

	pdf.AddPage()
	if err := renderSummaryPage(pdf, atlas, settings); err != nil {
		return err
	}

	return pdf.OutputFileAndClose(outPath)
}

// renderAtlasPage draws the atlas layout on the current PDF page.
func renderAtlasPage(pdf *fpdf.Fpdf, atlas model.Atlas) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Atlas: %s (%d x %d px)", atlas.Name, atlas.Width, atlas.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Frames: %d | Rotated: %d | Used area: %d px | Total area: %d px | Efficiency: %.1f%%",
		len(atlas.Frames), atlas.RotatedCount(), atlas.UsedArea(), atlas.TotalArea(), atlas.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/float64(atlas.Width), drawHeight/float64(atlas.Height))
	canvasW := float64(atlas.Width) * scale
	canvasH := float64(atlas.Height) * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Atlas background
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, r := range atlas.Free {
		fx := offsetX + float64(r.X)*scale
		fy := offsetY + float64(r.Y)*scale
		fw := math.Min(float64(r.Width)*scale, offsetX+canvasW-fx)
		fh := math.Min(float64(r.Height)*scale, offsetY+canvasH-fy)
		if fw <= 0 || fh <= 0 {
			continue
		}
		drawHatchPattern(pdf, fx, fy, fw, fh)
	}

	for i, f := range atlas.Frames {
		col := frameColors[i%len(frameColors)]
		pw := float64(f.PlacedWidth()) * scale
		ph := float64(f.PlacedHeight()) * scale
		px := offsetX + float64(f.X)*scale
		py := offsetY + float64(f.Y)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		pdf.Rect(px, py, pw, ph, "FD")

		// Label only if the rectangle is large enough
		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := path.Base(f.Sprite.MapName())
			dims := fmt.Sprintf("%dx%d", f.PlacedWidth(), f.PlacedHeight())
			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, atlas, offsetX, offsetY, canvasW, canvasH)
	drawFramesLegend(pdf, atlas, offsetY+canvasH+5)
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark free space.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(170, 170, 200)
	pdf.SetLineWidth(0.15)

	spacing := 3.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations adds width and height labels outside the atlas rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, atlas model.Atlas, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d px", atlas.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d px", atlas.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawFramesLegend renders a compact legend of frames below the drawing.
func drawFramesLegend(pdf *fpdf.Fpdf, atlas model.Atlas, startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Frames:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, f := range atlas.Frames {
		if startY > pageHeight-marginBottom {
			break
		}
		col := frameColors[i%len(frameColors)]
		label := fmt.Sprintf("%s (%dx%d)", path.Base(f.Sprite.MapName()), f.PlacedWidth(), f.PlacedHeight())
		if f.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the statistics, the QR code, the frame table and
// the settings. The frame table continues on new pages as needed.
func renderSummaryPage(pdf *fpdf.Fpdf, atlas model.Atlas, settings model.Settings) error {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Atlas Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	if err := drawQRCode(pdf, NewAtlasInfo(atlas), pageWidth-marginRight-qrSize, marginTop+16); err != nil {
		return err
	}

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Atlas Size", fmt.Sprintf("%d x %d px", atlas.Width, atlas.Height)},
		{"Frames", fmt.Sprintf("%d", len(atlas.Frames))},
		{"Rotated Frames", fmt.Sprintf("%d", atlas.RotatedCount())},
		{"Efficiency", fmt.Sprintf("%.1f%%", atlas.Efficiency())},
		{"Packing Attempts", fmt.Sprintf("%d", atlas.Attempts)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Size Range", fmt.Sprintf("%dx%d to %dx%d", settings.MinWidth, settings.MinHeight, settings.MaxWidth, settings.MaxHeight)},
		{"Padding", fmt.Sprintf("%d, %d px", settings.PaddingX, settings.PaddingY)},
		{"Heuristic", fmt.Sprintf("%s / %s", settings.Heuristic, settings.Split)},
		{"Allow Flip", yesNo(settings.AllowFlip)},
		{"Force Square", yesNo(settings.ForceSquare)},
		{"Trim", yesNo(settings.Trim)},
		{"Map Format", string(settings.Format)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Frames", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{15, 95, 35, 35, 35, 26, 26}
	headers := []string{"#", "Name", "Position", "Size", "Source", "Trimmed", "Rotated"}

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		xPos := marginLeft
		for i, header := range headers {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[i], rowHeight, header, "1", 0, "C", true, 0, "")
			xPos += colWidths[i]
		}
		y += rowHeight
		pdf.SetFont("Helvetica", "", 9)
	}
	drawHeader()

	for i, f := range atlas.Frames {
		if y+rowHeight > pageHeight-marginBottom-5 {
			pdf.AddPage()
			y = marginTop
			drawHeader()
		}

		s := f.Sprite
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			s.MapName(),
			fmt.Sprintf("%d, %d", f.X, f.Y),
			fmt.Sprintf("%d x %d", f.PlacedWidth(), f.PlacedHeight()),
			fmt.Sprintf("%d x %d", s.Width, s.Height),
			yesNo(s.Trimmed()),
			yesNo(f.Rotated),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos := marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], rowHeight, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += rowHeight
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by AtlasPack - Texture Atlas Packer", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	return nil
}

// drawQRCode places a QR code encoding info as JSON at (x, y).
func drawQRCode(pdf *fpdf.Fpdf, info AtlasInfo, x, y float64) error {
	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal atlas info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := "qr_" + info.Name
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, x, y, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
