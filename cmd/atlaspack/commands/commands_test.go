package commands

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/AtlasPack/internal/config"
	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/imaging"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlaspack.yaml")

	out, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, err = execute(t, "config", "init", path)
	assert.ErrorIs(t, err, config.ErrConfigExists)

	_, err = execute(t, "config", "init", "--force", path)
	assert.NoError(t, err)
}

func TestPack(t *testing.T) {
	dir := t.TempDir()
	for i, size := range []int{20, 12} {
		img := image.NewNRGBA(image.Rect(0, 0, size, size))
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				img.SetNRGBA(x, y, color.NRGBA{R: uint8(100 * i), A: 255})
			}
		}
		require.NoError(t, imaging.SavePNG(filepath.Join(dir, string(rune('a'+i))+".png"), img))
	}

	output := filepath.Join(t.TempDir(), "atlas")
	out, err := execute(t, "pack", "-o", output, "--format", "txt", "--log-mode", "release", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "2 (0 rotated)")
	assert.FileExists(t, output+".png")
	assert.FileExists(t, output+".txt")
	assert.NoFileExists(t, output+".plist")
}

func TestPack_MissingInput(t *testing.T) {
	_, err := execute(t, "pack", filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestRenderCompareTable(t *testing.T) {
	rects := []engine.RectSize{{Width: 102, Height: 102}, {Width: 51, Height: 21, ID: 1}}
	results := engine.CompareStrategies(rects, engine.DefaultOptions(), engine.AllStrategies())

	table := renderCompareTable(results)
	assert.Contains(t, table, "STRATEGY")
	assert.Contains(t, table, "best-area-fit/shorter-leftover-axis")
	assert.Contains(t, table, "* ")
	assert.NotContains(t, table, "no strategy fits")

	opts := engine.DefaultOptions()
	opts.MaxWidth = 64
	opts.MaxHeight = 64
	failed := engine.CompareStrategies(rects, opts, engine.AllStrategies()[:2])

	table = renderCompareTable(failed)
	assert.Contains(t, table, "does not fit")
	assert.Contains(t, table, "no strategy fits")
}
