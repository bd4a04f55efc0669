package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/AtlasPack/internal/model"
)

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "atlas.pdf")

	err := ExportPDF(path, buildTestAtlas(), model.DefaultSettings())
	if err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatal("output is not a PDF")
	}
	if len(data) < 500 {
		t.Errorf("PDF file seems too small: %d bytes", len(data))
	}
}

func TestExportPDF_EmptyAtlas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	err := ExportPDF(path, model.Atlas{Name: "empty.png", Width: 64, Height: 64}, model.DefaultSettings())
	if err == nil {
		t.Fatal("expected error for empty atlas, got nil")
	}
	if _, statErr := os.Stat(path); statErr == nil {
		t.Error("no file should be written for an empty atlas")
	}
}

func TestExportPDF_ManyFramesSpillOntoExtraPages(t *testing.T) {
	atlas := model.Atlas{Name: "big.png", Width: 1024, Height: 1024, Attempts: 3}
	for i := 0; i < 120; i++ {
		s := model.Sprite{Name: fmt.Sprintf("sprites/frame_%03d.png", i), Width: 32, Height: 32, FillW: 32, FillH: 32}
		atlas.Frames = append(atlas.Frames, model.Frame{Sprite: s, X: (i % 32) * 32, Y: (i / 32) * 32})
	}

	single := filepath.Join(t.TempDir(), "single.pdf")
	many := filepath.Join(t.TempDir(), "many.pdf")

	small := atlas
	small.Frames = atlas.Frames[:1]
	if err := ExportPDF(single, small, model.DefaultSettings()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	if err := ExportPDF(many, atlas, model.DefaultSettings()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	a, _ := os.Stat(single)
	b, _ := os.Stat(many)
	if b.Size() <= a.Size() {
		t.Errorf("report with 120 frames (%d bytes) should be larger than with 1 (%d bytes)", b.Size(), a.Size())
	}
}

func TestNewAtlasInfo(t *testing.T) {
	info := NewAtlasInfo(buildTestAtlas())

	if info.Frames != 2 || info.Rotated != 1 {
		t.Errorf("unexpected counts %+v", info)
	}
	// (16*24 + 6*10) / (64*32) = 444 / 2048 = 21.68%
	if info.Efficiency != 21.7 {
		t.Errorf("expected efficiency 21.7, got %v", info.Efficiency)
	}
}

func TestLabelFontSize(t *testing.T) {
	tests := []struct {
		w, h float64
		want float64
	}{
		{50, 50, 8},
		{30, 100, 7},
		{10, 10, 6},
	}
	for _, tt := range tests {
		if got := labelFontSize(tt.w, tt.h); got != tt.want {
			t.Errorf("labelFontSize(%v, %v) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}
