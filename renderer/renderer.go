package renderer

import (
	"io"

	"github.com/ChainSafe/mips-decoder/decoder"
)

// Renderer defines the interface for writing a decoded listing in different formats.
type Renderer interface {
	// Render writes the listing to the provided writer.
	Render(listing *decoder.Listing, output io.Writer) error

	// Format returns the name of the output format (e.g., "json", "text").
	Format() string
}
