// Package format renders instructions and machine words as text.
package format

import (
	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/slowlang/hack/compiler/asm"
	"github.com/slowlang/hack/compiler/parse"
)

const WordBits = 16

var ErrMalformedWord = errors.New("malformed word")

// Instrs renders one instruction per line. Labels start at column zero, instructions are indented.
func Instrs(b []byte, xs []asm.Instr) (_ []byte, err error) {
	for _, x := range xs {
		d := 1
		if _, ok := x.(asm.L); ok {
			d = 0
		}

		b = app(b, d, "")

		b, err = Instr(b, x)
		if err != nil {
			return nil, err
		}

		b = append(b, '\n')
	}

	return b, nil
}

func Instr(b []byte, x asm.Instr) ([]byte, error) {
	switch x := x.(type) {
	case asm.A:
		b = app(b, 0, "@%s", x.Symbol)
	case asm.L:
		b = app(b, 0, "(%s)", x.Name)
	case asm.C:
		if x.Dest != "" {
			b = app(b, 0, "%s=", x.Dest)
		}

		b = append(b, x.Comp...)

		if x.Jump != "" {
			b = app(b, 0, ";%s", x.Jump)
		}
	default:
		return nil, errors.New("unsupported instruction: %T", x)
	}

	return b, nil
}

// Words renders a program image: one word per line, most significant bit first.
func Words(b []byte, ws []uint16) []byte {
	for _, w := range ws {
		b = Word(b, w)
		b = append(b, '\n')
	}

	return b
}

func Word(b []byte, w uint16) []byte {
	return hfmt.Appendf(b, "%016b", w)
}

// ParseWords reads a program image written by Words.
// Comments and blank lines are skipped.
func ParseWords(text []byte) (ws []uint16, err error) {
	for _, l := range parse.Lines(text) {
		if len(l.Text) != WordBits {
			return nil, errors.Wrap(ErrMalformedWord, "line %d: %d bits", l.Num, len(l.Text))
		}

		var w uint16

		for _, c := range []byte(l.Text) {
			w <<= 1

			switch c {
			case '0':
			case '1':
				w |= 1
			default:
				return nil, errors.Wrap(ErrMalformedWord, "line %d: %q", l.Num, l.Text)
			}
		}

		ws = append(ws, w)
	}

	return ws, nil
}

func app(b []byte, d int, f string, args ...any) []byte {
	const tabs = "\t\t\t\t\t\t\t\t\t\t\t\t\t\t\t"
	b = append(b, tabs[:d]...)
	b = hfmt.Appendf(b, f, args...)
	return b
}
