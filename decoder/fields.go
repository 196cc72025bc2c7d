// Package decoder turns 32-bit MIPS-C words into assembly text.
//
// Decoding happens in two passes over the whole program. The first pass only
// collects branch and jump targets into a LabelTable; the second renders every
// instruction and places each label definition in front of the instruction at
// its address.
package decoder

// RegImmField names the field used to key the register-immediate table.
type RegImmField int

const (
	RegImmRD RegImmField = iota // bits 15..11
	RegImmRT                    // bits 20..16
)

const maxJumpTargetBits = 26

// Layout describes the parts of the encoding that vary between toolchains.
type Layout struct {
	// JumpTargetBits is the width of the J-type target field, taken from the low bits of the word.
	JumpTargetBits uint
	RegImm         RegImmField
}

// DefaultLayout returns the standard 26-bit jump field with rd-keyed register-immediate dispatch.
func DefaultLayout() Layout {
	return Layout{JumpTargetBits: maxJumpTargetBits, RegImm: RegImmRD}
}

//    6      5     5     5     5      6 bits
// [  op  |  rs |  rt |  rd |shamt| funct]  R-type
// [  op  |  rs |  rt |    immediate     ]  I-type
// [  op  |        target address        ]  J-type

// Fields is a word split into its instruction fields.
type Fields struct {
	Address uint32
	Raw     uint32

	Opcode  uint8
	RSIndex uint8
	RTIndex uint8
	RDIndex uint8
	RS      string
	RT      string
	RD      string
	Shamt   uint8
	Funct   uint8
	Imm16   uint16
	Target  uint32
}

// Extract splits raw using the default layout.
func Extract(raw, address uint32) Fields {
	return DefaultLayout().Extract(raw, address)
}

// Extract splits raw into fields. It accepts every 32-bit value; unknown
// encodings are only detected at dispatch.
func (l Layout) Extract(raw, address uint32) Fields {
	rs := uint8((raw >> 21) & 0x1F)
	rt := uint8((raw >> 16) & 0x1F)
	rd := uint8((raw >> 11) & 0x1F)
	return Fields{
		Address: address,
		Raw:     raw,
		Opcode:  uint8((raw >> 26) & 0x3F),
		RSIndex: rs,
		RTIndex: rt,
		RDIndex: rd,
		RS:      RegisterName(rs),
		RT:      RegisterName(rt),
		RD:      RegisterName(rd),
		Shamt:   uint8((raw >> 6) & 0x1F),
		Funct:   uint8(raw & 0x3F),
		Imm16:   uint16(raw & 0xFFFF),
		Target:  raw & l.targetMask(),
	}
}

func (l Layout) targetMask() uint32 {
	bits := l.JumpTargetBits
	if bits == 0 || bits > maxJumpTargetBits {
		bits = maxJumpTargetBits
	}
	return uint32(1)<<bits - 1
}

// SignedImmediate reads a 16-bit field as two's complement.
func SignedImmediate(imm uint16) int32 {
	if imm&0x8000 == 0 {
		return int32(imm)
	}
	return int32(imm&0x7FFF) - 0x8000
}

// JumpTarget is the absolute address a J-type word jumps to.
func (f Fields) JumpTarget() uint32 {
	return f.Target * 4
}

// BranchTarget is the address a PC-relative branch at f.Address reaches.
func (f Fields) BranchTarget() uint32 {
	return f.Address + 4 + uint32(SignedImmediate(f.Imm16)*4)
}
