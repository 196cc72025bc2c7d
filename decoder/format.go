package decoder

import (
	"fmt"
	"strings"
)

// Format selects how an instruction's operands are rendered.
type Format int

const (
	FormatJump         Format = iota + 1 // j, jal
	FormatRegister                       // rd, rs, rt
	FormatImmediate                      // rt, rs, imm
	FormatLoadUpper                      // rt, imm
	FormatMemory                         // rt, imm(rs)
	FormatBranch                         // rs, rt, label
	FormatBranchZero                     // rs, label
	FormatJumpRegister                   // rs
	FormatNoOperand
)

var formatNames = map[Format]string{
	FormatJump:         "jump",
	FormatRegister:     "register",
	FormatImmediate:    "immediate",
	FormatLoadUpper:    "load-upper",
	FormatMemory:       "memory",
	FormatBranch:       "branch",
	FormatBranchZero:   "branch-zero",
	FormatJumpRegister: "jump-register",
	FormatNoOperand:    "no-operand",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Rule is a leaf of the dispatch tables.
type Rule struct {
	Mnemonic string
	Format   Format
}

// renderContext carries what a rule needs beyond the fields themselves.
type renderContext struct {
	labels    *LabelTable
	mars      bool
	dataLabel string
}

// render produces the assembly text of f under r. Jump and branch rules
// assign labels through ctx.labels.
func (r Rule) render(f Fields, ctx *renderContext) (string, error) {
	var operands []string
	switch r.Format {
	case FormatJump:
		label, err := ctx.labels.Assign(f.JumpTarget(), r.Mnemonic)
		if err != nil {
			return "", err
		}
		operands = []string{label}
	case FormatRegister:
		operands = []string{f.RD, f.RS, f.RT}
	case FormatImmediate:
		operands = []string{f.RT, f.RS, hexImm(f.Imm16)}
	case FormatLoadUpper:
		operands = []string{f.RT, hexImm(f.Imm16)}
	case FormatMemory:
		offset := hexImm(f.Imm16)
		if ctx.mars {
			offset = ctx.dataLabel + "+" + offset
		}
		operands = []string{f.RT, offset + "(" + f.RS + ")"}
	case FormatBranch, FormatBranchZero:
		label, err := ctx.labels.Assign(f.BranchTarget(), r.Mnemonic)
		if err != nil {
			return "", err
		}
		if r.Format == FormatBranch {
			operands = []string{f.RS, f.RT, label}
		} else {
			operands = []string{f.RS, label}
		}
	case FormatJumpRegister:
		operands = []string{f.RS}
	case FormatNoOperand:
		return r.Mnemonic, nil
	default:
		return "", fmt.Errorf("rule %s has unsupported format %s", r.Mnemonic, r.Format)
	}
	return r.Mnemonic + "\t" + strings.Join(operands, ", "), nil
}

func hexImm(imm uint16) string {
	return fmt.Sprintf("%#x", imm)
}
