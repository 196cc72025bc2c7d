// Package renderer provides a way to render decoded listings in different formats.
package renderer

import (
	"io"
	"os"
	"strings"

	"github.com/ChainSafe/mips-decoder/decoder"
	"golang.org/x/term"
)

const (
	colorLabel = "\033[94m"
	colorReset = "\033[0m"
)

// TextRenderer writes the listing as assembly source.
type TextRenderer struct {
	color bool
}

// NewTextRenderer creates a new instance of TextRenderer. Labels are
// highlighted only when color is set and the output is a terminal.
func NewTextRenderer(color bool) Renderer {
	return &TextRenderer{color: color}
}

// Render writes the prologue, then each instruction preceded by the label defined at its address.
func (r *TextRenderer) Render(listing *decoder.Listing, output io.Writer) error {
	color := r.color && isTerminal(output)

	var report strings.Builder
	for _, line := range listing.Prologue {
		report.WriteString(line)
		report.WriteString("\n")
	}
	for _, line := range listing.Lines {
		if line.Label != "" {
			if color {
				report.WriteString(colorLabel + line.Label + ":" + colorReset + "\n")
			} else {
				report.WriteString(line.Label + ":\n")
			}
		}
		if line.Skip {
			continue
		}
		report.WriteString(line.Text)
		report.WriteString("\n")
	}

	_, err := output.Write([]byte(report.String()))
	return err
}

// Format returns the format type.
func (r *TextRenderer) Format() string {
	return "text"
}

func isTerminal(output io.Writer) bool {
	f, ok := output.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
