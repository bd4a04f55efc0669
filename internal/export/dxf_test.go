package export

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

func TestExportDXF_RoundTrip(t *testing.T) {
	atlas := buildTestAtlas()
	path := filepath.Join(t.TempDir(), "atlas.dxf")
	require.NoError(t, ExportDXF(path, atlas))

	d, err := dxf.Open(path)
	require.NoError(t, err)

	var lines []*entity.Line
	for _, e := range d.Entities() {
		if l, ok := e.(*entity.Line); ok {
			lines = append(lines, l)
		}
	}

	// Atlas outline plus one rectangle per frame and per free region.
	assert.Len(t, lines, 4*(1+len(atlas.Frames)+len(atlas.Free)))

	for _, l := range lines {
		for _, p := range [][]float64{l.Start, l.End} {
			assert.GreaterOrEqual(t, p[0], 0.0)
			assert.LessOrEqual(t, p[0], float64(atlas.Width))
			assert.GreaterOrEqual(t, p[1], 0.0)
			assert.LessOrEqual(t, p[1], float64(atlas.Height))
		}
	}

	// The hero frame sits in the top-left corner of the image, which is the
	// top-left of the drawing once Y is flipped.
	found := false
	for _, l := range lines {
		if l.Start[0] == 0 && l.Start[1] == 32 && l.End[0] == 16 && l.End[1] == 32 {
			found = true
		}
	}
	assert.True(t, found, "expected the top edge of the first frame")
}

func TestExportDXF_EmptyAtlas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")
	assert.Error(t, ExportDXF(path, model.Atlas{Width: 8, Height: 8}))
}
