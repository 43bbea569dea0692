package hack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeC(t *testing.T) {
	for _, tc := range []struct {
		d    string
		c    string
		j    string
		want uint16
	}{
		{"", "0", "JMP", 0b1110101010000111},
		{"D", "A", "", 0b1110110000010000},
		{"D", "D+A", "", 0b1110000010010000},
		{"M", "D", "", 0b1110001100001000},
		{"AM", "M+1", "", 0b1111110111101000},
		{"", "D", "JGT", 0b1110001100000001},
		{"MD", "-D", "JLE", 0b1110001111011110},
		{"DM", "D|M", "", 0b1111010101011000},
		{"D", "M+D", "", 0b1111000010010000},
	} {
		d, err := ParseDest(tc.d)
		require.NoError(t, err)

		c, err := ParseComp(tc.c)
		require.NoError(t, err)

		j, err := ParseJump(tc.j)
		require.NoError(t, err)

		assert.Equal(t, tc.want, EncodeC(d, c, j), "%s=%s;%s", tc.d, tc.c, tc.j)
	}
}

func TestEncodeA(t *testing.T) {
	w, err := EncodeA(2)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0b0000000000000010), w)

	w, err = EncodeA(MaxAddress)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x7fff), w)

	_, err = EncodeA(MaxAddress + 1)
	assert.ErrorIs(t, err, ErrAddressOutOfRange)
}

func TestUndefinedMnemonic(t *testing.T) {
	_, err := ParseComp("D*A")
	assert.ErrorIs(t, err, ErrUndefinedMnemonic)

	_, err = ParseComp("1+D")
	assert.ErrorIs(t, err, ErrUndefinedMnemonic)

	_, err = ParseDest("X")
	assert.ErrorIs(t, err, ErrUndefinedMnemonic)

	_, err = ParseDest("MM")
	assert.ErrorIs(t, err, ErrUndefinedMnemonic)

	_, err = ParseJump("JUMP")
	assert.ErrorIs(t, err, ErrUndefinedMnemonic)
}

func TestRoundTrip(t *testing.T) {
	for c := Comp(0); c < numComp; c++ {
		for d := DestNull; d <= DestAMD; d++ {
			for j := JumpNull; j <= JMP; j++ {
				w := EncodeC(d, c, j)

				x, err := Decode(w)
				require.NoError(t, err, "word %016b", w)

				assert.Equal(t, Instr{Dest: d, Comp: c, Jump: j}, x)
			}
		}
	}

	x, err := Decode(12345)
	require.NoError(t, err)
	assert.Equal(t, Instr{IsA: true, Value: 12345}, x)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode(0b1000000000000000)
	assert.ErrorIs(t, err, ErrUndefinedMnemonic)

	_, err = Decode(0b1111111111000000)
	assert.ErrorIs(t, err, ErrUndefinedMnemonic)
}

func TestNames(t *testing.T) {
	assert.Len(t, compNames, 28)

	for c := Comp(0); c < numComp; c++ {
		p, err := ParseComp(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, p)
	}

	for d := DestNull; d <= DestAMD; d++ {
		p, err := ParseDest(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, p)
	}

	assert.True(t, CompDPlusM.UsesM())
	assert.False(t, CompDPlusA.UsesM())
}
