package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelTableAssign(t *testing.T) {
	labels := NewLabelTable()

	name, err := labels.Assign(0x3008, "beq")
	require.NoError(t, err)
	assert.Equal(t, "beq_0", name)

	// counter is shared across mnemonics
	name, err = labels.Assign(0x3000, "j")
	require.NoError(t, err)
	assert.Equal(t, "j_1", name)

	// existing label is reused whatever the mnemonic
	name, err = labels.Assign(0x3008, "bne")
	require.NoError(t, err)
	assert.Equal(t, "beq_0", name)
	assert.Equal(t, 2, labels.Len())

	got, ok := labels.Lookup(0x3000)
	assert.True(t, ok)
	assert.Equal(t, "j_1", got)

	_, ok = labels.Lookup(0x3004)
	assert.False(t, ok)
}

func TestLabelTableFreeze(t *testing.T) {
	labels := NewLabelTable()
	_, err := labels.Assign(0x10, "j")
	require.NoError(t, err)

	labels.Freeze()
	assert.True(t, labels.Frozen())

	name, err := labels.Assign(0x10, "jal")
	require.NoError(t, err)
	assert.Equal(t, "j_0", name)

	_, err = labels.Assign(0x20, "jal")
	assert.ErrorIs(t, err, ErrLabelTableFrozen)
	assert.Equal(t, 1, labels.Len())
}

func TestLabelTableEntries(t *testing.T) {
	labels := NewLabelTable()
	for _, addr := range []uint32{0x300c, 0x3000, 0x3008} {
		_, err := labels.Assign(addr, "b")
		require.NoError(t, err)
	}
	assert.Equal(t, []Label{
		{Address: 0x3000, Name: "b_1"},
		{Address: 0x3008, Name: "b_2"},
		{Address: 0x300c, Name: "b_0"},
	}, labels.Entries())
}
