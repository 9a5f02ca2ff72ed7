package export

import (
	"io"
	"os"

	"github.com/aymanbagabas/go-osc52/v2"
)

// CopyToClipboard writes the content to the terminal clipboard using OSC52.
// The writer defaults to stderr when nil so stdout stays clean.
func CopyToClipboard(content string, w io.Writer) error {
	if w == nil {
		w = os.Stderr
	}
	_, err := osc52.New(content).WriteTo(w)
	return err
}
