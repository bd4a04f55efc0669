package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMapFormat(t *testing.T) {
	for _, f := range MapFormats() {
		got, err := ParseMapFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	got, err := ParseMapFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, got)

	_, err = ParseMapFormat("xml")
	assert.Error(t, err)
}

func TestDefaultSettingsPaths(t *testing.T) {
	s := DefaultSettings()
	s.Output = "out/sheet"

	assert.Equal(t, "out/sheet.png", s.ImagePath())
	assert.Equal(t, "out/sheet.plist", s.MapPath())
	assert.Equal(t, "out/sheet.pdf", s.ReportPath())
	assert.Equal(t, "out/sheet.dxf", s.DXFPath())

	s.Format = FormatTXT
	assert.Equal(t, "out/sheet.txt", s.MapPath())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 64, s.MinWidth)
	assert.Equal(t, 4096, s.MaxHeight)
	assert.Equal(t, 1, s.PaddingX)
	assert.Equal(t, FormatPlist, s.Format)
	assert.True(t, s.Trim)
	assert.True(t, s.Merge)
	assert.False(t, s.AllowFlip)
}
