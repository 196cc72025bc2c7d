package renderer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ChainSafe/mips-decoder/decoder"
)

// JSONRenderer renders the listing in JSON format.
type JSONRenderer struct{}

func NewJSONRenderer() Renderer {
	return &JSONRenderer{}
}

type jsonLine struct {
	Address string `json:"address"`
	Word    string `json:"word,omitempty"`
	Label   string `json:"label,omitempty"`
	Text    string `json:"text,omitempty"`
	Skip    bool   `json:"skip,omitempty"`
}

type jsonLabel struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

type jsonListing struct {
	Prologue []string    `json:"prologue,omitempty"`
	Lines    []jsonLine  `json:"lines"`
	Labels   []jsonLabel `json:"labels"`
}

func (r *JSONRenderer) Render(listing *decoder.Listing, output io.Writer) error {
	doc := jsonListing{
		Prologue: listing.Prologue,
		Lines:    make([]jsonLine, 0, len(listing.Lines)),
		Labels:   toJSONLabels(listing.Labels.Entries()),
	}
	for _, line := range listing.Lines {
		jl := jsonLine{
			Address: hexAddress(line.Address),
			Label:   line.Label,
			Text:    line.Text,
			Skip:    line.Skip,
		}
		if !line.Skip {
			jl.Word = fmt.Sprintf("%08x", line.Raw)
		}
		doc.Lines = append(doc.Lines, jl)
	}
	return json.NewEncoder(output).Encode(doc)
}

func (r *JSONRenderer) Format() string {
	return "json"
}

func toJSONLabels(labels []decoder.Label) []jsonLabel {
	out := make([]jsonLabel, 0, len(labels))
	for _, l := range labels {
		out = append(out, jsonLabel{Address: hexAddress(l.Address), Name: l.Name})
	}
	return out
}

func hexAddress(addr uint32) string {
	return fmt.Sprintf("0x%08x", addr)
}
