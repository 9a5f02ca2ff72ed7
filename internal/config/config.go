package config

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/cj3636/gradblame/internal/gradient"
)

// Config holds the application configuration
type Config struct {
	PaletteIndex int
	Palette      Palette
	Verbose      bool
	Export       ExportOptions
}

// ExportOptions controls where the annotated listing goes besides stdout.
type ExportOptions struct {
	Format string
	File   string
	Copy   bool
}

// Enabled reports whether any export flag was given.
func (o ExportOptions) Enabled() bool {
	return o.Format != "" || o.File != "" || o.Copy
}

// Palette defines the colors used to paint the blame badge
type Palette struct {
	Name            string
	BackgroundStart lipgloss.Color
	BackgroundEnd   lipgloss.Color
	Foreground      lipgloss.Color
}

const (
	settledBg = lipgloss.Color("#c5c8c6")
	badgeFg   = lipgloss.Color("#3c3e3f")
)

// Palettes is the fixed table of built-in palettes, addressed by index.
// Every gradient fades into the same gray, so the newest lines look alike
// whichever palette is picked.
var Palettes = []Palette{
	{Name: "bright-cyan", BackgroundStart: "#70c0b1", BackgroundEnd: settledBg, Foreground: badgeFg},
	{Name: "bright-magenta", BackgroundStart: "#c397d8", BackgroundEnd: settledBg, Foreground: badgeFg},
	{Name: "bright-blue", BackgroundStart: "#7aa6da", BackgroundEnd: settledBg, Foreground: badgeFg},
	{Name: "bright-yellow", BackgroundStart: "#e7c547", BackgroundEnd: settledBg, Foreground: badgeFg},
	{Name: "bright-green", BackgroundStart: "#b9ca4a", BackgroundEnd: settledBg, Foreground: badgeFg},
	{Name: "bright-red", BackgroundStart: "#d54e53", BackgroundEnd: settledBg, Foreground: badgeFg},
	{Name: "cyan", BackgroundStart: "#8abe87", BackgroundEnd: settledBg, Foreground: badgeFg},
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		PaletteIndex: 0,
		Palette:      Palettes[0],
	}
}

// SetPalette selects a palette from the raw -g argument.
func (c *Config) SetPalette(raw string) {
	c.PaletteIndex = ResolvePaletteIndex(raw)
	c.Palette = PaletteAt(c.PaletteIndex)
}

// ResolvePaletteIndex parses a palette index. Anything that is not a
// non-negative integer, or that is past the end of Palettes, selects 0.
func ResolvePaletteIndex(raw string) int {
	idx, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || idx >= uint64(len(Palettes)) {
		return 0
	}
	return int(idx)
}

// PaletteAt returns the palette at idx, falling back to the first one
func PaletteAt(idx int) Palette {
	if idx < 0 || idx >= len(Palettes) {
		return Palettes[0]
	}
	return Palettes[idx]
}

// Start returns the color of the oldest revision.
func (p Palette) Start() gradient.RGB {
	return gradient.MustParseHex(string(p.BackgroundStart))
}

// End returns the color the gradient fades into.
func (p Palette) End() gradient.RGB {
	return gradient.MustParseHex(string(p.BackgroundEnd))
}

// Fore returns the badge text color.
func (p Palette) Fore() gradient.RGB {
	return gradient.MustParseHex(string(p.Foreground))
}

// Gradient returns one background color per revision, oldest first.
func (p Palette) Gradient(revisions int) []gradient.RGB {
	return gradient.Generate(p.Start(), p.End(), revisions)
}
