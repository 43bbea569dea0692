// Package hack defines the Hack machine word layout and the fixed
// dest, comp and jump encoding tables.
package hack

import (
	"tlog.app/go/errors"
)

type (
	Dest uint8
	Comp uint8
	Jump uint8

	// Instr is a decoded machine word.
	Instr struct {
		IsA   bool
		Value uint16

		Dest Dest
		Comp Comp
		Jump Jump
	}
)

// Dest and Jump values are their bit codes.
const (
	DestNull Dest = iota
	DestM
	DestD
	DestMD
	DestA
	DestAM
	DestAD
	DestAMD
)

const (
	JumpNull Jump = iota
	JGT
	JEQ
	JGE
	JLT
	JNE
	JLE
	JMP
)

const (
	Comp0 Comp = iota
	Comp1
	CompNeg1
	CompD
	CompA
	CompNotD
	CompNotA
	CompNegD
	CompNegA
	CompDPlus1
	CompAPlus1
	CompDMinus1
	CompAMinus1
	CompDPlusA
	CompDMinusA
	CompAMinusD
	CompDAndA
	CompDOrA
	CompM
	CompNotM
	CompNegM
	CompMPlus1
	CompMMinus1
	CompDPlusM
	CompDMinusM
	CompMMinusD
	CompDAndM
	CompDOrM

	numComp
)

const (
	MaxAddress = 1<<15 - 1

	cPrefix   = 0b111 << 13
	compShift = 6
	destShift = 3

	compMask = 0b1111111
	destMask = 0b111
	jumpMask = 0b111
)

var (
	ErrUndefinedMnemonic = errors.New("undefined mnemonic")
	ErrAddressOutOfRange = errors.New("address out of range")
)

var destNames = [...]string{
	DestNull: "",
	DestM:    "M",
	DestD:    "D",
	DestMD:   "MD",
	DestA:    "A",
	DestAM:   "AM",
	DestAD:   "AD",
	DestAMD:  "AMD",
}

var jumpNames = [...]string{
	JumpNull: "",
	JGT:      "JGT",
	JEQ:      "JEQ",
	JGE:      "JGE",
	JLT:      "JLT",
	JNE:      "JNE",
	JLE:      "JLE",
	JMP:      "JMP",
}

var compNames = [numComp]string{
	Comp0:       "0",
	Comp1:       "1",
	CompNeg1:    "-1",
	CompD:       "D",
	CompA:       "A",
	CompNotD:    "!D",
	CompNotA:    "!A",
	CompNegD:    "-D",
	CompNegA:    "-A",
	CompDPlus1:  "D+1",
	CompAPlus1:  "A+1",
	CompDMinus1: "D-1",
	CompAMinus1: "A-1",
	CompDPlusA:  "D+A",
	CompDMinusA: "D-A",
	CompAMinusD: "A-D",
	CompDAndA:   "D&A",
	CompDOrA:    "D|A",
	CompM:       "M",
	CompNotM:    "!M",
	CompNegM:    "-M",
	CompMPlus1:  "M+1",
	CompMMinus1: "M-1",
	CompDPlusM:  "D+M",
	CompDMinusM: "D-M",
	CompMMinusD: "M-D",
	CompDAndM:   "D&M",
	CompDOrM:    "D|M",
}

// compCodes are the a bit followed by c1..c6.
var compCodes = [numComp]uint16{
	Comp0:       0b0101010,
	Comp1:       0b0111111,
	CompNeg1:    0b0111010,
	CompD:       0b0001100,
	CompA:       0b0110000,
	CompNotD:    0b0001101,
	CompNotA:    0b0110001,
	CompNegD:    0b0001111,
	CompNegA:    0b0110011,
	CompDPlus1:  0b0011111,
	CompAPlus1:  0b0110111,
	CompDMinus1: 0b0001110,
	CompAMinus1: 0b0110010,
	CompDPlusA:  0b0000010,
	CompDMinusA: 0b0010011,
	CompAMinusD: 0b0000111,
	CompDAndA:   0b0000000,
	CompDOrA:    0b0010101,
	CompM:       0b1110000,
	CompNotM:    0b1110001,
	CompNegM:    0b1110011,
	CompMPlus1:  0b1110111,
	CompMMinus1: 0b1110010,
	CompDPlusM:  0b1000010,
	CompDMinusM: 0b1010011,
	CompMMinusD: 0b1000111,
	CompDAndM:   0b1000000,
	CompDOrM:    0b1010101,
}

// commuted spellings of commutative operators.
var compAliases = [...]struct {
	Name string
	Comp Comp
}{
	{"A+D", CompDPlusA},
	{"M+D", CompDPlusM},
	{"A&D", CompDAndA},
	{"M&D", CompDAndM},
	{"A|D", CompDOrA},
	{"M|D", CompDOrM},
}

func ParseDest(s string) (d Dest, err error) {
	for _, c := range []byte(s) {
		var bit Dest

		switch c {
		case 'A':
			bit = DestA
		case 'D':
			bit = DestD
		case 'M':
			bit = DestM
		default:
			return 0, errors.Wrap(ErrUndefinedMnemonic, "dest %q", s)
		}

		if d&bit != 0 {
			return 0, errors.Wrap(ErrUndefinedMnemonic, "dest %q", s)
		}

		d |= bit
	}

	return d, nil
}

func ParseComp(s string) (Comp, error) {
	for c, n := range compNames {
		if n == s {
			return Comp(c), nil
		}
	}

	for _, a := range compAliases {
		if a.Name == s {
			return a.Comp, nil
		}
	}

	return 0, errors.Wrap(ErrUndefinedMnemonic, "comp %q", s)
}

func ParseJump(s string) (Jump, error) {
	for j, n := range jumpNames {
		if n == s {
			return Jump(j), nil
		}
	}

	return 0, errors.Wrap(ErrUndefinedMnemonic, "jump %q", s)
}

func (d Dest) String() string { return destNames[d&destMask] }
func (j Jump) String() string { return jumpNames[j&jumpMask] }

func (c Comp) String() string {
	if c >= numComp {
		return "<invalid>"
	}

	return compNames[c]
}

// Code returns the 7-bit comp field.
func (c Comp) Code() uint16 { return compCodes[c] }

// UsesM reports whether comp reads the memory operand.
func (c Comp) UsesM() bool { return compCodes[c]&(1<<6) != 0 }

func EncodeC(d Dest, c Comp, j Jump) uint16 {
	return cPrefix | compCodes[c]<<compShift | uint16(d&destMask)<<destShift | uint16(j&jumpMask)
}

func EncodeA(v uint16) (uint16, error) {
	if v > MaxAddress {
		return 0, errors.Wrap(ErrAddressOutOfRange, "%d", v)
	}

	return v, nil
}

func Decode(w uint16) (x Instr, err error) {
	if w&(1<<15) == 0 {
		return Instr{IsA: true, Value: w}, nil
	}

	if w&cPrefix != cPrefix {
		return x, errors.Wrap(ErrUndefinedMnemonic, "word %016b", w)
	}

	code := w >> compShift & compMask

	for c, cc := range compCodes {
		if cc == code {
			return Instr{
				Comp: Comp(c),
				Dest: Dest(w >> destShift & destMask),
				Jump: Jump(w & jumpMask),
			}, nil
		}
	}

	return x, errors.Wrap(ErrUndefinedMnemonic, "comp %07b", code)
}
