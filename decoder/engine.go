package decoder

import (
	"fmt"

	"github.com/ChainSafe/mips-decoder/profile"
	"github.com/ChainSafe/mips-decoder/program"
)

// Config holds everything the engine needs besides the program.
type Config struct {
	Layout      Layout
	Mars        bool
	DataLabel   string
	DataReserve int
}

// ConfigFromProfile maps a profile onto an engine configuration.
func ConfigFromProfile(prof *profile.Profile) Config {
	layout := Layout{JumpTargetBits: prof.JumpTargetBits, RegImm: RegImmRD}
	if prof.RegImmSelector == profile.SelectorRT {
		layout.RegImm = RegImmRT
	}
	return Config{
		Layout:      layout,
		Mars:        prof.Mars(),
		DataLabel:   prof.DataLabel,
		DataReserve: prof.DataReserve,
	}
}

// Line is one decoded word of the listing.
type Line struct {
	Address uint32
	Raw     uint32
	Label   string // label defined at Address, if any
	Text    string // empty for skipped words
	Skip    bool
}

// Listing is the result of a successful decode.
type Listing struct {
	Prologue []string
	Lines    []Line
	Labels   *LabelTable
}

// DanglingLabels returns the labels whose address holds no line of the listing.
func (l *Listing) DanglingLabels() []Label {
	placed := make(map[uint32]bool, len(l.Lines))
	for _, line := range l.Lines {
		placed[line.Address] = true
	}
	dangling := make([]Label, 0)
	for _, label := range l.Labels.Entries() {
		if !placed[label.Address] {
			dangling = append(dangling, label)
		}
	}
	return dangling
}

// Engine decodes whole programs.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	if cfg.DataLabel == "" {
		cfg.DataLabel = profile.DefaultDataLabel
	}
	if cfg.DataReserve < 1 {
		cfg.DataReserve = profile.DefaultDataReserve
	}
	return &Engine{cfg: cfg}
}

// Decode runs both passes. On error no listing is returned.
func (e *Engine) Decode(words []program.Word) (*Listing, error) {
	labels, err := e.CollectLabels(words)
	if err != nil {
		return nil, err
	}
	return e.Emit(words, labels)
}

// CollectLabels is the first pass: it decodes every word for the labels
// its branches and jumps create and throws the text away.
func (e *Engine) CollectLabels(words []program.Word) (*LabelTable, error) {
	labels := NewLabelTable()
	ctx := e.context(labels)
	for _, w := range words {
		if w.Skip {
			continue
		}
		if _, err := e.decodeWord(w, ctx); err != nil {
			return nil, fmt.Errorf("pass 1: %w", err)
		}
	}
	return labels, nil
}

// Emit is the second pass. It freezes labels and renders every word,
// attaching the label defined at each address.
func (e *Engine) Emit(words []program.Word, labels *LabelTable) (*Listing, error) {
	labels.Freeze()
	ctx := e.context(labels)
	listing := &Listing{
		Prologue: e.prologue(),
		Lines:    make([]Line, 0, len(words)),
		Labels:   labels,
	}
	for _, w := range words {
		line := Line{Address: w.Address, Raw: w.Raw, Skip: w.Skip}
		line.Label, _ = labels.Lookup(w.Address)
		if !w.Skip {
			text, err := e.decodeWord(w, ctx)
			if err != nil {
				return nil, fmt.Errorf("pass 2: %w", err)
			}
			line.Text = text
		}
		listing.Lines = append(listing.Lines, line)
	}
	return listing, nil
}

// DecodeWord renders a single word against labels.
func (e *Engine) DecodeWord(raw, address uint32, labels *LabelTable) (string, error) {
	return e.decodeWord(program.Word{Address: address, Raw: raw}, e.context(labels))
}

func (e *Engine) decodeWord(w program.Word, ctx *renderContext) (string, error) {
	fields := e.cfg.Layout.Extract(w.Raw, w.Address)
	rule, err := e.cfg.Layout.Lookup(fields)
	if err != nil {
		return "", err
	}
	return rule.render(fields, ctx)
}

func (e *Engine) context(labels *LabelTable) *renderContext {
	return &renderContext{
		labels:    labels,
		mars:      e.cfg.Mars,
		dataLabel: e.cfg.DataLabel,
	}
}

func (e *Engine) prologue() []string {
	if !e.cfg.Mars {
		return nil
	}
	return []string{
		".data",
		fmt.Sprintf("%s: .space %d", e.cfg.DataLabel, e.cfg.DataReserve),
		".text",
	}
}
