package decoder

import (
	"strings"
	"testing"

	"github.com/ChainSafe/mips-decoder/profile"
	"github.com/ChainSafe/mips-decoder/program"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseWords(t *testing.T, src string) []program.Word {
	t.Helper()
	words, err := program.Parse(strings.NewReader(src), program.Options{
		TextBase:   profile.DefaultTextBase,
		SkipMarker: profile.DefaultSkipMarker,
	})
	require.NoError(t, err)
	return words
}

// text flattens a listing the way the text renderer prints it.
func text(l *Listing) string {
	var b strings.Builder
	for _, p := range l.Prologue {
		b.WriteString(p + "\n")
	}
	for _, line := range l.Lines {
		if line.Label != "" {
			b.WriteString(line.Label + ":\n")
		}
		if !line.Skip {
			b.WriteString(line.Text + "\n")
		}
	}
	return b.String()
}

func TestDecodeNop(t *testing.T) {
	listing, err := NewEngine(Config{}).Decode(parseWords(t, "00000000\n"))
	require.NoError(t, err)
	assert.Equal(t, "nop\n", text(listing))
}

func TestDecodeSelfBranch(t *testing.T) {
	listing, err := NewEngine(Config{}).Decode(parseWords(t, "1109ffff\n"))
	require.NoError(t, err)
	assert.Equal(t, "beq_0:\nbeq\t$t0, $t1, beq_0\n", text(listing))

	name, ok := listing.Labels.Lookup(0x3000)
	require.True(t, ok)
	assert.Equal(t, "beq_0", name)
}

func TestDecodeForwardAndBackward(t *testing.T) {
	src := strings.Join([]string{
		"11090001", // 0x3000 beq $t0, $t1, 0x3008
		"00000000", // 0x3004 nop
		"1509fffd", // 0x3008 bne $t0, $t1, 0x3000
		"0c000c01", // 0x300c jal 0x3004
	}, "\n")
	listing, err := NewEngine(Config{}).Decode(parseWords(t, src))
	require.NoError(t, err)

	want := strings.Join([]string{
		"bne_1:",
		"beq\t$t0, $t1, beq_0",
		"jal_2:",
		"nop",
		"beq_0:",
		"bne\t$t0, $t1, bne_1",
		"jal\tjal_2",
		"",
	}, "\n")
	assert.Equal(t, want, text(listing))
}

func TestDecodeReusesLabel(t *testing.T) {
	src := "08000c02\n00000000\n1109ffff\n" // j 0x3008; nop; beq to itself at 0x3008
	listing, err := NewEngine(Config{}).Decode(parseWords(t, src))
	require.NoError(t, err)
	assert.Equal(t, "j\tj_0\nnop\nj_0:\nbeq\t$t0, $t1, j_0\n", text(listing))
	assert.Equal(t, 1, listing.Labels.Len())
}

func TestDecodeSkippedWords(t *testing.T) {
	src := strings.Join([]string{
		"11090001",     // 0x3000 beq -> 0x3008
		"raw 1234abcd", // 0x3004 data
		"00000000",     // 0x3008 nop
	}, "\n")
	listing, err := NewEngine(Config{}).Decode(parseWords(t, src))
	require.NoError(t, err)
	require.Len(t, listing.Lines, 3)
	assert.True(t, listing.Lines[1].Skip)
	assert.Equal(t, uint32(0x3008), listing.Lines[2].Address)
	assert.Equal(t, "beq\t$t0, $t1, beq_0\nbeq_0:\nnop\n", text(listing))
}

func TestDecodeMarsPrologue(t *testing.T) {
	engine := NewEngine(ConfigFromProfile(&profile.Profile{
		Dialect:        profile.DialectMars,
		DataLabel:      "dat",
		DataReserve:    1,
		JumpTargetBits: 26,
		RegImmSelector: profile.SelectorRD,
	}))
	listing, err := engine.Decode(parseWords(t, "8c080004\n"))
	require.NoError(t, err)
	assert.Equal(t, ".data\ndat: .space 1\n.text\nlw\t$t0, dat+0x4($zero)\n", text(listing))

	listing, err = NewEngine(Config{}).Decode(parseWords(t, "8c080004\n"))
	require.NoError(t, err)
	assert.Equal(t, "lw\t$t0, 0x4($zero)\n", text(listing))
}

func TestDecodeUnknownOpcodeAborts(t *testing.T) {
	listing, err := NewEngine(Config{}).Decode(parseWords(t, "00000000\nfc000000\n00000000\n"))
	assert.Nil(t, listing)
	require.ErrorIs(t, err, ErrUnknownEncoding)
	assert.Contains(t, err.Error(), "pass 1")
	assert.Contains(t, err.Error(), "0x00003004")
}

func TestPassEquivalence(t *testing.T) {
	src := strings.Join([]string{
		"11090002", "05000001", "00000000", "1d00fffe", "08000c00", "0c000c03", "03e00008",
	}, "\n")
	words := parseWords(t, src)
	engine := NewEngine(Config{})

	labels, err := engine.CollectLabels(words)
	require.NoError(t, err)
	collected := make(map[uint32]string)
	for _, l := range labels.Entries() {
		collected[l.Address] = l.Name
	}

	listing, err := engine.Emit(words, labels)
	require.NoError(t, err)
	emitted := make(map[uint32]string)
	for _, line := range listing.Lines {
		if line.Label != "" {
			emitted[line.Address] = line.Label
		}
	}
	assert.Equal(t, collected, emitted)
	assert.Empty(t, listing.DanglingLabels())
	assert.True(t, listing.Labels.Frozen())
}

func TestDecodeDeterministic(t *testing.T) {
	src := "11090001\n00000000\n1509fffd\n0c000c01\n08000c03\n"
	engine := NewEngine(Config{})

	first, err := engine.Decode(parseWords(t, src))
	require.NoError(t, err)
	second, err := engine.Decode(parseWords(t, src))
	require.NoError(t, err)

	assert.Equal(t, first.Labels.Entries(), second.Labels.Entries())
	assert.Equal(t, text(first), text(second))
}

func TestJumpLabelRoundTrip(t *testing.T) {
	words := parseWords(t, "08000c02\n0c000c00\n00000000\n08000fff\n")
	listing, err := NewEngine(Config{}).Decode(words)
	require.NoError(t, err)

	for i, w := range words {
		f := Extract(w.Raw, w.Address)
		if f.Opcode != 0x02 && f.Opcode != 0x03 {
			continue
		}
		label := strings.Split(listing.Lines[i].Text, "\t")[1]
		name, ok := listing.Labels.Lookup(f.Target * 4)
		require.True(t, ok)
		assert.Equal(t, name, label)
	}

	dangling := listing.DanglingLabels()
	require.Len(t, dangling, 1)
	assert.Equal(t, uint32(0x3ffc), dangling[0].Address)
}

func TestLegacyJumpField(t *testing.T) {
	engine := NewEngine(Config{Layout: Layout{JumpTargetBits: 22}})
	listing, err := engine.Decode(parseWords(t, "0bc00c00\n"))
	require.NoError(t, err)
	assert.Equal(t, "j_0:\nj\tj_0\n", text(listing))
}
