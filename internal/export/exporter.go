package export

import (
	"bufio"
	"errors"
	"fmt"
	"html"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/cj3636/gradblame/internal/annotate"
	"github.com/cj3636/gradblame/internal/gradient"
	"github.com/muesli/termenv"
)

// Format represents the desired export format.
type Format string

const (
	// FormatANSI emits the annotated listing with true-color escapes.
	FormatANSI Format = "ansi"
	// FormatHTML emits an HTML document with inline colors.
	FormatHTML Format = "html"
	// FormatMarkdown emits a Markdown code block without colors.
	FormatMarkdown Format = "markdown"
)

var (
	// ErrNilResult is returned when there is nothing to render.
	ErrNilResult = errors.New("annotation result is nil")
	// ErrUnsupportedFormat is returned for unknown format names.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// Border is drawn on both sides of the colored badge.
const Border = "│"

// Options control how an annotated listing is exported.
type Options struct {
	// Title will be shown in HTML/Markdown outputs when provided.
	Title string
}

// ParseFormat resolves a user supplied format name. The empty string means
// ANSI.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(raw) {
	case "", string(FormatANSI), "text":
		return FormatANSI, nil
	case string(FormatHTML), "htm":
		return FormatHTML, nil
	case string(FormatMarkdown), "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, raw)
	}
}

// Render returns the annotated listing in the requested format.
func Render(result *annotate.Result, format Format, opts Options) (string, error) {
	if result == nil {
		return "", ErrNilResult
	}

	var b strings.Builder
	switch format {
	case FormatANSI:
		writeANSI(&b, result)
	case FormatHTML:
		writeHTML(&b, result, opts)
	case FormatMarkdown:
		writeMarkdown(&b, result, opts)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return b.String(), nil
}

// WriteANSI streams the annotated listing to w, one line at a time.
func WriteANSI(w io.Writer, result *annotate.Result) error {
	if result == nil {
		return ErrNilResult
	}
	bw := bufio.NewWriter(w)
	writeANSI(bw, result)
	return bw.Flush()
}

// DefaultTitle names the listing the way the HTML and Markdown headers show it.
func DefaultTitle(result *annotate.Result) string {
	if result == nil || result.ListingName == "" {
		return ""
	}
	return fmt.Sprintf("Blame: %s", filepath.Base(result.ListingName))
}

type stringWriter interface {
	io.Writer
	WriteString(s string) (int, error)
}

func writeANSI(w stringWriter, result *annotate.Result) {
	fg := foregroundSeq(result.Foreground)
	reset := termenv.CSI + termenv.ResetSeq + "m"

	for _, line := range result.Lines {
		w.WriteString(Border)
		w.WriteString(fg)
		w.WriteString(backgroundSeq(line.Background))
		w.WriteString(line.Record.Badge())
		w.WriteString(" ")
		w.WriteString(result.FormatNumber(line.Number))
		w.WriteString(reset)
		w.WriteString(Border)
		w.WriteString(line.Content)
		w.WriteString("\n")
	}
}

func writeHTML(w stringWriter, result *annotate.Result, opts Options) {
	w.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
	w.WriteString("<style>body{background:#1d1f21;color:#c5c8c6;font-family:Menlo,Consolas,monospace;}" +
		"pre{margin:0;}" +
		".badge{white-space:pre;}" +
		".missing{font-style:italic;}" +
		"h1{font-size:18px;margin-bottom:12px;}" +
		"</style></head><body>")

	title := opts.Title
	if title == "" {
		title = DefaultTitle(result)
	}
	if title != "" {
		fmt.Fprintf(w, "<h1>%s</h1>\n", html.EscapeString(title))
	}
	w.WriteString("<pre>\n")

	fg := result.Foreground.Hex()
	for _, line := range result.Lines {
		class := "badge"
		if line.Missing {
			class += " missing"
		}
		fmt.Fprintf(w, "<div><span class=\"%s\" style=\"color:%s;background:%s\">%s %s</span>%s%s</div>\n",
			class, fg, line.Background.Hex(),
			html.EscapeString(line.Record.Badge()), result.FormatNumber(line.Number),
			Border, html.EscapeString(ansi.Strip(line.Content)))
	}

	w.WriteString("</pre></body></html>")
}

func writeMarkdown(w stringWriter, result *annotate.Result, opts Options) {
	if opts.Title != "" {
		w.WriteString("# ")
		w.WriteString(opts.Title)
		w.WriteString("\n\n")
	}

	w.WriteString("```\n")
	for _, line := range result.Lines {
		fmt.Fprintf(w, "%s %s%s%s\n", line.Record.Badge(), result.FormatNumber(line.Number), Border, ansi.Strip(line.Content))
	}
	w.WriteString("```\n")
}

func foregroundSeq(c gradient.RGB) string {
	return colorSeq(termenv.Foreground, c)
}

func backgroundSeq(c gradient.RGB) string {
	return colorSeq(termenv.Background, c)
}

// colorSeq builds ESC[<prefix>;2;r;g;bm. termenv's RGBColor truncates while
// converting back from floats, so channels are formatted directly.
func colorSeq(prefix string, c gradient.RGB) string {
	return fmt.Sprintf("%s%s;2;%d;%d;%dm", termenv.CSI, prefix, c.R, c.G, c.B)
}
