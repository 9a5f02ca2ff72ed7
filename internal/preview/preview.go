package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cj3636/gradblame/internal/config"
	"github.com/muesli/termenv"
)

// DefaultSteps is how many gradient cells each swatch shows.
const DefaultSteps = 16

// Styles holds the lipgloss styles used by the palette listing
type Styles struct {
	index lipgloss.Style
	name  lipgloss.Style
	cell  lipgloss.Style
}

// NewStyles creates styles bound to w. The renderer is pinned to true color;
// the terminal is never probed.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.TrueColor)

	return &Styles{
		index: r.NewStyle().
			Width(3).
			Align(lipgloss.Right).
			Bold(true),
		name: r.NewStyle().
			Width(16).
			PaddingLeft(1),
		cell: r.NewStyle(),
	}
}

// Swatch renders one palette: its gradient across steps cells with the
// badge foreground drawn on the first and last cell.
func (s *Styles) Swatch(p config.Palette, steps int) string {
	var b strings.Builder
	colors := p.Gradient(steps)
	for i, c := range colors {
		cell := s.cell.Background(lipgloss.Color(c.Hex()))
		text := "  "
		if i == 0 || i == len(colors)-1 {
			cell = cell.Foreground(p.Foreground)
			text = "▌▐"
		}
		b.WriteString(cell.Render(text))
	}
	return b.String()
}

// Row renders the listing line for palette idx.
func (s *Styles) Row(idx int, p config.Palette, steps int) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.index.Render(fmt.Sprintf("%d", idx)),
		s.name.Render(p.Name),
		s.Swatch(p, steps),
	)
}

// WritePalettes prints every built-in palette, one per line.
func WritePalettes(w io.Writer, steps int) error {
	if steps <= 0 {
		steps = DefaultSteps
	}
	s := NewStyles(w)
	for idx, p := range config.Palettes {
		if _, err := fmt.Fprintln(w, s.Row(idx, p, steps)); err != nil {
			return err
		}
	}
	return nil
}
