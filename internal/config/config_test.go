package config

import (
	"testing"

	"github.com/cj3636/gradblame/internal/gradient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaletteIndex(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 0},
		{"0", 0},
		{"3", 3},
		{"6", 6},
		{"7", 0},
		{"99", 0},
		{"-1", 0},
		{"abc", 0},
		{"2.5", 0},
		{" 2", 0},
		{"18446744073709551617", 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePaletteIndex(tt.raw))
		})
	}
}

func TestPaletteAt(t *testing.T) {
	assert.Equal(t, Palettes[4], PaletteAt(4))
	assert.Equal(t, Palettes[0], PaletteAt(-1))
	assert.Equal(t, Palettes[0], PaletteAt(len(Palettes)))
}

func TestPalettesAreValid(t *testing.T) {
	require.Len(t, Palettes, 7)

	names := map[string]bool{}
	for _, p := range Palettes {
		assert.NotPanics(t, func() {
			p.Start()
			p.End()
			p.Fore()
		}, p.Name)
		assert.False(t, names[p.Name], "duplicate palette name %s", p.Name)
		names[p.Name] = true
	}
}

func TestDefaultPalette(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 0, cfg.PaletteIndex)
	assert.Equal(t, gradient.RGB{R: 0x70, G: 0xc0, B: 0xb1}, cfg.Palette.Start())
	assert.Equal(t, gradient.RGB{R: 0xc5, G: 0xc8, B: 0xc6}, cfg.Palette.End())
	assert.Equal(t, gradient.RGB{R: 0x3c, G: 0x3e, B: 0x3f}, cfg.Palette.Fore())
}

func TestSetPalette(t *testing.T) {
	cfg := DefaultConfig()

	cfg.SetPalette("5")
	assert.Equal(t, 5, cfg.PaletteIndex)
	assert.Equal(t, "bright-red", cfg.Palette.Name)

	cfg.SetPalette("99")
	assert.Equal(t, 0, cfg.PaletteIndex)
	assert.Equal(t, Palettes[0], cfg.Palette)
}

func TestPaletteGradient(t *testing.T) {
	p := PaletteAt(0)

	assert.Len(t, p.Gradient(5), 5)
	assert.Empty(t, p.Gradient(0))
}

func TestExportOptionsEnabled(t *testing.T) {
	assert.False(t, ExportOptions{}.Enabled())
	assert.True(t, ExportOptions{Format: "html"}.Enabled())
	assert.True(t, ExportOptions{File: "out.txt"}.Enabled())
	assert.True(t, ExportOptions{Copy: true}.Enabled())
}
