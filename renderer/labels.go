package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/ChainSafe/mips-decoder/decoder"
)

// LabelRenderer writes only the label table, one "address<TAB>name" line per label.
type LabelRenderer struct{}

func NewLabelRenderer() Renderer {
	return &LabelRenderer{}
}

func (r *LabelRenderer) Render(listing *decoder.Listing, output io.Writer) error {
	var report strings.Builder
	for _, label := range listing.Labels.Entries() {
		report.WriteString(fmt.Sprintf("%s\t%s\n", hexAddress(label.Address), label.Name))
	}
	_, err := output.Write([]byte(report.String()))
	return err
}

func (r *LabelRenderer) Format() string {
	return "labels"
}
