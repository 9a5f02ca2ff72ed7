package annotate

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/cj3636/gradblame/internal/config"
	"github.com/cj3636/gradblame/internal/gradient"
	"github.com/cj3636/gradblame/internal/logging"
	"github.com/sirupsen/logrus"
)

// ErrOpen is returned when one of the input files cannot be read.
var ErrOpen = errors.New("cannot read input")

// maxLineSize bounds a single input line; pretty-printed listings carry a
// lot of escape sequences per line.
const maxLineSize = 16 * 1024 * 1024

// Line is a single annotated line
type Line struct {
	Number     int // 1-based position in the listing
	Record     Record
	Rank       int
	Missing    bool // revision not found in the index
	Background gradient.RGB
	Content    string
}

// Result contains the annotated listing and what is needed to print it
type Result struct {
	Lines         []Line
	Palette       config.Palette
	Foreground    gradient.RGB
	Width         int // digits used for line numbers
	RevisionCount int
	Skipped       int // blame lines dropped because they were not text
	Truncated     bool
	RevListName   string
	BlameName     string
	ListingName   string
}

// Engine annotates a listing with blame colors
type Engine struct {
	palette config.Palette
	log     logrus.FieldLogger
}

// NewEngine creates a new annotation engine
func NewEngine(palette config.Palette, log logrus.FieldLogger) *Engine {
	if log == nil {
		log = logging.Discard()
	}
	return &Engine{palette: palette, log: log}
}

// AnnotateFiles reads the revision list, the listing and the blame report,
// in that order, and annotates the listing. Every file is read before any
// line is produced, so an unreadable input never leaves partial output.
func (e *Engine) AnnotateFiles(revListPath, blamePath, listingPath string) (*Result, error) {
	index, err := LoadIndex(revListPath)
	if err != nil {
		return nil, err
	}
	e.log.WithFields(logrus.Fields{"path": revListPath, "revisions": index.Len()}).Debug("loaded revision list")

	listing, err := readFileLines(listingPath)
	if err != nil {
		return nil, err
	}

	blame, err := readFileLines(blamePath)
	if err != nil {
		return nil, err
	}

	result := e.Annotate(index, blame, listing)
	result.RevListName = revListPath
	result.BlameName = blamePath
	result.ListingName = listingPath
	return result, nil
}

// Annotate pairs blame lines with listing lines by position.
func (e *Engine) Annotate(index *Index, blame, listing []string) *Result {
	listing = validLines(listing)
	colors := e.palette.Gradient(index.Len())
	end := e.palette.End()

	result := &Result{
		Lines:         make([]Line, 0, min(len(blame), len(listing))),
		Palette:       e.palette,
		Foreground:    e.palette.Fore(),
		Width:         LineNumberWidth(len(listing)),
		RevisionCount: index.Len(),
	}

	for i, raw := range blame {
		if i >= len(listing) {
			e.log.WithFields(logrus.Fields{"line": i + 1, "listing": len(listing)}).
				Debug("blame is longer than listing, stopping")
			result.Truncated = true
			break
		}
		if !utf8.ValidString(raw) {
			e.log.WithField("line", i+1).Debug("skipping blame line that is not valid text")
			result.Skipped++
			continue
		}

		record := ParseRecord(raw)
		rank, ok := index.Rank(record.Hash)
		if !ok {
			e.log.WithFields(logrus.Fields{"line": i + 1, "hash": record.Hash}).Debug("unknown revision, treating as newest")
		}

		result.Lines = append(result.Lines, Line{
			Number:     i + 1,
			Record:     record,
			Rank:       rank,
			Missing:    !ok,
			Background: gradient.At(colors, rank, end),
			Content:    listing[i],
		})
	}

	return result
}

// GetStats returns statistics about the annotation
func (r *Result) GetStats() (annotated, unknown, skipped int) {
	for _, line := range r.Lines {
		if line.Missing {
			unknown++
		}
	}
	return len(r.Lines), unknown, r.Skipped
}

// FormatNumber right-justifies a line number to the result's width.
func (r *Result) FormatNumber(n int) string {
	return fmt.Sprintf("%*d", r.Width, n)
}

// LineNumberWidth returns the number of digits needed for count, which is
// floor(log10(count))+1. Empty and one-line listings get a width of 1.
func LineNumberWidth(count int) int {
	if count <= 1 {
		return 1
	}
	return len(strconv.Itoa(count))
}

func validLines(lines []string) []string {
	valid := make([]string, 0, len(lines))
	for _, line := range lines {
		if utf8.ValidString(line) {
			valid = append(valid, line)
		}
	}
	return valid
}

// readFileLines reads a file and returns its lines
func readFileLines(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, filename, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, filename, err)
	}

	return lines, nil
}
