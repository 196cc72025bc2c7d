package decoder

import (
	"errors"
	"fmt"
	"sort"
)

// ErrLabelTableFrozen is returned when a frozen table is asked to create a label.
var ErrLabelTableFrozen = errors.New("label table is frozen")

// Label names a branch or jump target.
type Label struct {
	Address uint32
	Name    string
}

// LabelTable maps target addresses to label names. Names are
// <mnemonic>_<n>, where n counts the labels created before this one.
type LabelTable struct {
	names  map[uint32]string
	frozen bool
}

// NewLabelTable returns an empty, writable table.
func NewLabelTable() *LabelTable {
	return &LabelTable{names: make(map[uint32]string)}
}

// Assign returns the label of target, creating one named after mnemonic if the address has none yet.
func (t *LabelTable) Assign(target uint32, mnemonic string) (string, error) {
	if name, ok := t.names[target]; ok {
		return name, nil
	}
	if t.frozen {
		return "", fmt.Errorf("%w: no label for 0x%x", ErrLabelTableFrozen, target)
	}
	name := fmt.Sprintf("%s_%d", mnemonic, len(t.names))
	t.names[target] = name
	return name, nil
}

// Lookup returns the label defined at address.
func (t *LabelTable) Lookup(address uint32) (string, bool) {
	name, ok := t.names[address]
	return name, ok
}

// Freeze makes the table read-only.
func (t *LabelTable) Freeze() {
	t.frozen = true
}

func (t *LabelTable) Frozen() bool {
	return t.frozen
}

func (t *LabelTable) Len() int {
	return len(t.names)
}

// Entries lists every label in address order.
func (t *LabelTable) Entries() []Label {
	labels := make([]Label, 0, len(t.names))
	for addr, name := range t.names {
		labels = append(labels, Label{Address: addr, Name: name})
	}
	sort.Slice(labels, func(i, j int) bool {
		return labels[i].Address < labels[j].Address
	})
	return labels
}
