package asm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/hack/compiler/asm/hack"
)

const maxProgram = `// Computes R2 = max(R0, R1)
   @R0
   D=M              // D = first number
   @R1
   D=D-M            // D = first number - second number
   @OUTPUT_FIRST
   D;JGT            // if D>0 (first is greater) goto output_first
   @R1
   D=M              // D = second number
   @OUTPUT_D
   0;JMP            // goto output_d
(OUTPUT_FIRST)
   @R0
   D=M              // D = first number
(OUTPUT_D)
   @R2
   M=D              // M[2] = D (greatest number)
(INFINITE_LOOP)
   @INFINITE_LOOP
   0;JMP            // infinite loop
`

var maxImage = []string{
	"0000000000000000",
	"1111110000010000",
	"0000000000000001",
	"1111010011010000",
	"0000000000001010",
	"1110001100000001",
	"0000000000000001",
	"1111110000010000",
	"0000000000001100",
	"1110101010000111",
	"0000000000000000",
	"1111110000010000",
	"0000000000000010",
	"1110001100001000",
	"0000000000001110",
	"1110101010000111",
}

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Instr
	}{
		{"@2", A{Symbol: "2"}},
		{"@LOOP", A{Symbol: "LOOP"}},
		{"(LOOP)", L{Name: "LOOP"}},
		{"(END)junk", L{Name: "END"}},
		{"D=A", C{Dest: "D", Comp: "A"}},
		{"0;JMP", C{Comp: "0", Jump: "JMP"}},
		{"AM=M+1;JNE", C{Dest: "AM", Comp: "M+1", Jump: "JNE"}},
		{"D = D + A", C{Dest: "D", Comp: "D+A"}},
		{"M", C{Comp: "M"}},
	} {
		x, err := Classify(tc.in)
		if assert.NoError(t, err, tc.in) {
			assert.Equal(t, tc.want, x, tc.in)
		}
	}
}

func TestClassifyErrors(t *testing.T) {
	_, err := Classify("  ")
	assert.ErrorIs(t, err, ErrEmptyLine)

	_, err = Classify("(LOOP")
	assert.ErrorIs(t, err, ErrUnterminatedLabel)

	_, err = Classify("()")
	assert.ErrorIs(t, err, ErrEmptySymbol)

	_, err = Classify("@")
	assert.ErrorIs(t, err, ErrEmptySymbol)
}

func TestAssembleAdd(t *testing.T) {
	ctx := context.Background()

	ls, err := Parse(ctx, []byte("@2\nD=A\n@3\nD=D+A\n@0\nM=D\n"))
	require.NoError(t, err)

	words, err := New().Assemble(ctx, ls)
	require.NoError(t, err)

	assert.Equal(t, []uint16{
		0b0000000000000010,
		0b1110110000010000,
		0b0000000000000011,
		0b1110000010010000,
		0b0000000000000000,
		0b1110001100001000,
	}, words)
}

func TestAssembleMax(t *testing.T) {
	ctx := context.Background()

	ls, err := Parse(ctx, []byte(maxProgram))
	require.NoError(t, err)

	a := New()

	words, err := a.Assemble(ctx, ls)
	require.NoError(t, err)

	require.Len(t, words, len(maxImage))

	for i, w := range words {
		assert.Equal(t, maxImage[i], binary(w), "rom %d", i)
	}

	addr, ok := a.Symbols().Resolve("OUTPUT_D")
	assert.True(t, ok)
	assert.Equal(t, uint16(12), addr)
}

func TestWordCount(t *testing.T) {
	ctx := context.Background()

	ls, err := Parse(ctx, []byte(maxProgram))
	require.NoError(t, err)

	n := 0
	for _, l := range ls {
		if _, ok := l.Instr.(L); !ok {
			n++
		}
	}

	words, err := New().Assemble(ctx, ls)
	require.NoError(t, err)

	assert.Equal(t, n, len(words))
}

func TestAssembleVariables(t *testing.T) {
	ctx := context.Background()

	src := `
@i
M=1
@sum
M=0
(LOOP)
@i
D=M
@LOOP
0;JMP
@counter
`

	ls, err := Parse(ctx, []byte(src))
	require.NoError(t, err)

	a := New()

	words, err := a.Assemble(ctx, ls)
	require.NoError(t, err)

	assert.Equal(t, uint16(16), words[0])
	assert.Equal(t, uint16(17), words[2])
	assert.Equal(t, uint16(16), words[4])
	assert.Equal(t, uint16(4), words[6])
	assert.Equal(t, uint16(18), words[8])

	s, ok := a.Symbols().Lookup("LOOP")
	assert.True(t, ok)
	assert.Equal(t, OriginLabel, s.Origin)

	s, ok = a.Symbols().Lookup("sum")
	assert.True(t, ok)
	assert.Equal(t, Symbol{Name: "sum", Addr: 17, Origin: OriginVariable}, s)
}

func TestAssembleErrors(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		src  string
		err  error
		line string
	}{
		{"@1\nD=X", hack.ErrUndefinedMnemonic, "line 2"},
		{"D;JMPS", hack.ErrUndefinedMnemonic, "line 1"},
		{"(A)\n@1\n(A)\nD=A", ErrSymbolRedefinition, "line 3"},
		{"@1\n(R0)", ErrSymbolRedefinition, "line 2"},
		{"@32768", hack.ErrAddressOutOfRange, "line 1"},
	} {
		ls, err := Parse(ctx, []byte(tc.src))
		require.NoError(t, err, tc.src)

		words, err := New().Assemble(ctx, ls)
		assert.ErrorIs(t, err, tc.err, tc.src)
		assert.Nil(t, words, tc.src)

		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), tc.line, tc.src)
		}
	}

	_, err := Parse(ctx, []byte("@1\n(LOOP\n"))
	assert.ErrorIs(t, err, ErrUnterminatedLabel)
}

func TestAssembleLabelAtPredefinedAddress(t *testing.T) {
	ctx := context.Background()

	ls, err := Parse(ctx, []byte("(SP)\n@SP\n0;JMP"))
	require.NoError(t, err)

	words, err := New().Assemble(ctx, ls)
	require.NoError(t, err)
	assert.Equal(t, []uint16{0, 0b1110101010000111}, words)
}

func binary(w uint16) string {
	var b strings.Builder

	for i := 15; i >= 0; i-- {
		if w&(1<<i) != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}

	return b.String()
}
