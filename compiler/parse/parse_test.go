package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLines(t *testing.T) {
	text := []byte("// header\r\n\n  @2 // two\r\nD=A\n\t\n(LOOP)")

	ls := Lines(text)

	assert.Equal(t, []Line{
		{Num: 3, Text: "@2"},
		{Num: 4, Text: "D=A"},
		{Num: 6, Text: "(LOOP)"},
	}, ls)
}

func TestLinesEmpty(t *testing.T) {
	assert.Empty(t, Lines(nil))
	assert.Empty(t, Lines([]byte("\n\n// only comments\n")))
}

func TestSpaces(t *testing.T) {
	assert.Equal(t, "D=M+1", SpaceAll.Compact(" D = M\t+ 1 "))
	assert.Equal(t, "D=M", SpaceAll.Compact("D=M"))

	assert.Equal(t, []string{"push", "constant", "7"}, SpaceAll.Fields("  push\tconstant   7 "))
	assert.Nil(t, SpaceAll.Fields("   "))

	assert.Equal(t, "a b", SpaceTab.Trim("\t a b \t"))
	assert.Equal(t, 2, Space.Skip("  x", 0))
}

func TestUint(t *testing.T) {
	v, err := Uint("32767", 32767)
	assert.NoError(t, err)
	assert.Equal(t, uint64(32767), v)

	v, err = Uint("007", 10)
	assert.NoError(t, err)
	assert.Equal(t, uint64(7), v)

	_, err = Uint("32768", 32767)
	assert.ErrorIs(t, err, ErrNumberOverflow)

	_, err = Uint("99999999999999999999999", 1<<64-1)
	assert.ErrorIs(t, err, ErrNumberOverflow)

	for _, s := range []string{"", "-1", "+1", "0x10", "1a", " 1"} {
		_, err = Uint(s, 100)
		assert.ErrorIs(t, err, ErrNumberExpected, "%q", s)
	}

	assert.True(t, IsDecimal("0"))
	assert.False(t, IsDecimal("R0"))
	assert.Equal(t, 3, Digits("123abc", 0))
	assert.Equal(t, 2, Digits("ab", 2))
}

func TestUintSmallMax(t *testing.T) {
	_, err := Uint("5", 3)
	assert.ErrorIs(t, err, ErrNumberOverflow)

	v, err := Uint("3", 3)
	assert.NoError(t, err)
	assert.Equal(t, uint64(3), v)
}
