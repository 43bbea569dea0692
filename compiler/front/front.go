// Package front parses stack machine source into ir commands.
package front

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/hack/compiler/ir"
	"github.com/slowlang/hack/compiler/parse"
)

func Parse(ctx context.Context, text []byte) (ls []ir.Line, err error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "front: parse", "size", len(text))
	defer tr.Finish("err", &err)

	for _, l := range parse.Lines(text) {
		c, err := Classify(l.Text)
		if err != nil {
			return nil, errors.Wrap(err, "line %d", l.Num)
		}

		if tr.If("front_parse") {
			tr.Printw("command", "line", l.Num, "text", l.Text, "typ", tlog.NextAsType, c, "cmd", c)
		}

		ls = append(ls, ir.Line{Num: l.Num, Text: l.Text, Command: c})
	}

	return ls, nil
}

// Classify parses a single comment-free line.
func Classify(l string) (ir.Command, error) {
	f := parse.SpaceAll.Fields(l)
	if len(f) == 0 {
		return nil, errors.Wrap(ir.ErrMalformedCommand, "empty line")
	}

	switch f[0] {
	case "push", "pop":
		return classifyAccess(f)
	}

	op, ok := ir.ParseArithOp(f[0])
	if !ok {
		return nil, errors.Wrap(ir.ErrUnknownCommand, "%q", f[0])
	}

	if len(f) != 1 {
		return nil, errors.Wrap(ir.ErrMalformedCommand, "%v: extra arguments: %q", op, f[1:])
	}

	return ir.Arithmetic{Op: op}, nil
}

func classifyAccess(f []string) (c ir.Command, err error) {
	if len(f) != 3 {
		return nil, errors.Wrap(ir.ErrMalformedCommand, "%v: want segment and index, got %q", f[0], f[1:])
	}

	seg, err := ir.ParseSegment(f[1])
	if err != nil {
		return nil, err
	}

	idx, err := parse.Uint(f[2], 1<<32-1)
	if err != nil {
		return nil, errors.Wrap(ir.ErrInvalidSegmentIndex, "%v %v %q", f[0], seg, f[2])
	}

	if f[0] == "push" {
		c = ir.Push{Segment: seg, Index: uint32(idx)}
	} else {
		c = ir.Pop{Segment: seg, Index: uint32(idx)}
	}

	err = ir.Check(c)
	if err != nil {
		return nil, err
	}

	return c, nil
}
