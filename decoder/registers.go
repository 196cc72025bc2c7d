package decoder

import "strconv"

// registerNames holds the registers that print by name. Every other index prints as $<n>.
var registerNames = map[uint8]string{
	0:  "$zero",
	8:  "$t0",
	9:  "$t1",
	10: "$t2",
	11: "$t3",
	12: "$t4",
	13: "$t5",
	14: "$t6",
	15: "$t7",
	31: "$ra",
}

// RegisterName translates a 5-bit register index into its assembly name.
func RegisterName(index uint8) string {
	index &= 0x1F
	if name, ok := registerNames[index]; ok {
		return name
	}
	return "$" + strconv.Itoa(int(index))
}
