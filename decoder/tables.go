package decoder

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownEncoding is wrapped by every dispatch miss.
var ErrUnknownEncoding = errors.New("unknown encoding")

const (
	opSpecial = 0x00
	opRegImm  = 0x01
)

// dispatch table names, as reported in errors
const (
	tableOpcode = "opcode"
	tableFunct  = "funct"
	tableRegImm = "regimm"
)

var opcodeTable = map[uint8]Rule{
	0x02: {"j", FormatJump},
	0x03: {"jal", FormatJump},
	0x04: {"beq", FormatBranch},
	0x05: {"bne", FormatBranch},
	0x06: {"blez", FormatBranchZero},
	0x07: {"bgtz", FormatBranchZero},
	0x08: {"addi", FormatImmediate},
	0x09: {"addiu", FormatImmediate},
	0x0A: {"slti", FormatImmediate},
	0x0B: {"sltiu", FormatImmediate},
	0x0C: {"andi", FormatImmediate},
	0x0D: {"ori", FormatImmediate},
	0x0E: {"xori", FormatImmediate},
	0x0F: {"lui", FormatLoadUpper},
	0x20: {"lb", FormatMemory},
	0x21: {"lh", FormatMemory},
	0x23: {"lw", FormatMemory},
	0x24: {"lbu", FormatMemory},
	0x25: {"lhu", FormatMemory},
	0x28: {"sb", FormatMemory},
	0x29: {"sh", FormatMemory},
	0x2B: {"sw", FormatMemory},
}

// functTable is consulted when the opcode is SPECIAL. A zero funct always decodes as nop.
var functTable = map[uint8]Rule{
	0x00: {"nop", FormatNoOperand},
	0x08: {"jr", FormatJumpRegister},
	0x20: {"add", FormatRegister},
	0x21: {"addu", FormatRegister},
	0x22: {"sub", FormatRegister},
	0x23: {"subu", FormatRegister},
	0x24: {"and", FormatRegister},
	0x25: {"or", FormatRegister},
	0x26: {"xor", FormatRegister},
	0x27: {"nor", FormatRegister},
	0x2A: {"slt", FormatRegister},
	0x2B: {"sltu", FormatRegister},
}

// regImmTable is consulted when the opcode is REGIMM.
var regImmTable = map[uint8]Rule{
	0x00: {"bltz", FormatBranchZero},
	0x01: {"bgez", FormatBranchZero},
}

// UnknownEncodingError reports a field value missing from a dispatch table.
type UnknownEncodingError struct {
	Address uint32
	Raw     uint32
	Table   string
	Value   uint8
	Width   int
}

func (e *UnknownEncodingError) Error() string {
	return fmt.Sprintf("%s: %s %0*b at 0x%08x (word 0x%08x)",
		ErrUnknownEncoding, e.Table, e.Width, e.Value, e.Address, e.Raw)
}

func (e *UnknownEncodingError) Unwrap() error {
	return ErrUnknownEncoding
}

// Lookup walks the dispatch tables down to the rule for f.
func (l Layout) Lookup(f Fields) (Rule, error) {
	switch f.Opcode {
	case opSpecial:
		return lookup(functTable, tableFunct, f.Funct, 6, f)
	case opRegImm:
		key := f.RDIndex
		if l.RegImm == RegImmRT {
			key = f.RTIndex
		}
		return lookup(regImmTable, tableRegImm, key, 5, f)
	default:
		return lookup(opcodeTable, tableOpcode, f.Opcode, 6, f)
	}
}

func lookup(table map[uint8]Rule, name string, key uint8, width int, f Fields) (Rule, error) {
	rule, ok := table[key]
	if !ok {
		return Rule{}, &UnknownEncodingError{
			Address: f.Address,
			Raw:     f.Raw,
			Table:   name,
			Value:   key,
			Width:   width,
		}
	}
	return rule, nil
}

// Mnemonics lists every mnemonic the tables can produce, sorted.
func Mnemonics() []string {
	names := make([]string, 0, len(opcodeTable)+len(functTable)+len(regImmTable))
	for _, table := range []map[uint8]Rule{opcodeTable, functTable, regImmTable} {
		for _, rule := range table {
			names = append(names, rule.Mnemonic)
		}
	}
	sort.Strings(names)
	return names
}
