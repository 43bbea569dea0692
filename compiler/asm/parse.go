package asm

import (
	"context"
	"strings"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/hack/compiler/parse"
)

// Parse classifies every non-empty line of text.
func Parse(ctx context.Context, text []byte) (ls []Line, err error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "asm: parse", "size", len(text))
	defer tr.Finish("err", &err)

	for _, l := range parse.Lines(text) {
		x, err := Classify(l.Text)
		if err != nil {
			return nil, errors.Wrap(err, "line %d", l.Num)
		}

		if tr.If("asm_parse") {
			tr.Printw("instr", "line", l.Num, "text", l.Text, "typ", tlog.NextAsType, x, "instr", x)
		}

		ls = append(ls, Line{Num: l.Num, Instr: x})
	}

	return ls, nil
}

// Classify determines the instruction kind of a comment-free line and extracts its fields.
// Spaces inside the line are insignificant.
func Classify(l string) (Instr, error) {
	l = parse.SpaceAll.Compact(l)
	if l == "" {
		return nil, ErrEmptyLine
	}

	switch l[0] {
	case '@':
		if len(l) == 1 {
			return nil, errors.Wrap(ErrEmptySymbol, "%q", l)
		}

		return A{Symbol: l[1:]}, nil
	case '(':
		end := strings.IndexByte(l, ')')
		if end < 0 {
			return nil, errors.Wrap(ErrUnterminatedLabel, "%q", l)
		}

		if end == 1 {
			return nil, errors.Wrap(ErrEmptySymbol, "%q", l)
		}

		return L{Name: l[1:end]}, nil
	}

	rest, jump, _ := strings.Cut(l, ";")

	dest, comp, ok := strings.Cut(rest, "=")
	if !ok {
		dest, comp = "", rest
	}

	return C{Dest: dest, Comp: comp, Jump: jump}, nil
}
