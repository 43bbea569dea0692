// Package back lowers stack machine commands to Hack assembly text.
package back

import (
	"context"
	"fmt"

	"tlog.app/go/errors"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/slowlang/hack/compiler/ir"
)

type (
	// Translator translates one program.
	// Comparison labels are numbered per Translator so they are unique within its output.
	Translator struct {
		// Program prefixes static segment symbols.
		Program string

		labels int
	}
)

const halt = `// end
(END)
@END
0;JMP
`

func New(program string) *Translator {
	return &Translator{
		Program: program,
	}
}

// Translate appends to b the code for every command followed by the halt loop.
func (t *Translator) Translate(ctx context.Context, b []byte, ls []ir.Line) (_ []byte, err error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "back: translate", "program", t.Program, "commands", len(ls))
	defer tr.Finish("err", &err)

	for _, l := range ls {
		text := l.Text
		if text == "" {
			text = l.Command.String()
		}

		b = fmt.Appendf(b, "// %s\n", text)

		b, err = t.Command(b, l.Command)
		if err != nil {
			return nil, errors.Wrap(err, "line %d", l.Num)
		}
	}

	b = append(b, halt...)

	return b, nil
}

func (t *Translator) Command(b []byte, c ir.Command) (_ []byte, err error) {
	st := len(b)

	switch c := c.(type) {
	case ir.Push:
		b, err = t.Push(b, c.Segment, c.Index)
	case ir.Pop:
		b, err = t.Pop(b, c.Segment, c.Index)
	case ir.Arithmetic:
		b, err = t.Arithmetic(b, c.Op)
	default:
		return nil, errors.New("unsupported command: %T", c)
	}

	if err != nil {
		return nil, errors.Wrap(err, "%v", c)
	}

	tlog.V("back_emit").Printw("emit", "cmd", c, "code", b[st:], "from", loc.Caller(1))

	return b, nil
}

// Labels is the number of comparisons translated so far.
func (t *Translator) Labels() int { return t.labels }
