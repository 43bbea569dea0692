package asm

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/hack/compiler/asm/hack"
	"github.com/slowlang/hack/compiler/parse"
)

type (
	// Assembler translates a single program.
	// Its symbol table lives as long as the Assembler.
	Assembler struct {
		syms *SymbolTable
	}
)

func New() *Assembler {
	return &Assembler{
		syms: NewSymbolTable(),
	}
}

func (a *Assembler) Symbols() *SymbolTable { return a.syms }

// Assemble returns one word per A and C instruction in source order.
// Nothing is returned if any instruction fails.
func (a *Assembler) Assemble(ctx context.Context, ls []Line) (_ []uint16, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "asm: assemble", "instrs", len(ls))
	defer tr.Finish("err", &err)

	err = a.pass1(ctx, ls)
	if err != nil {
		return nil, errors.Wrap(err, "pass 1")
	}

	words, err := a.pass2(ctx, ls)
	if err != nil {
		return nil, errors.Wrap(err, "pass 2")
	}

	if tr.If("asm_symbols") {
		for _, s := range a.syms.Symbols() {
			tr.Printw("symbol", "name", s.Name, "addr", s.Addr, "origin", s.Origin)
		}
	}

	return words, nil
}

func (a *Assembler) pass1(ctx context.Context, ls []Line) error {
	tr := tlog.SpanFromContext(ctx)

	rom := 0

	for _, l := range ls {
		switch x := l.Instr.(type) {
		case A, C:
			rom++
		case L:
			if rom > hack.MaxAddress {
				return errors.Wrap(hack.ErrAddressOutOfRange, "line %d: label %v", l.Num, x.Name)
			}

			err := a.syms.Bind(x.Name, uint16(rom))
			if err != nil {
				return errors.Wrap(err, "line %d", l.Num)
			}

			tr.V("asm_labels").Printw("label", "name", x.Name, "rom", rom, "line", l.Num)
		default:
			return errors.New("line %d: unsupported instruction: %T", l.Num, x)
		}
	}

	return nil
}

func (a *Assembler) pass2(ctx context.Context, ls []Line) ([]uint16, error) {
	tr := tlog.SpanFromContext(ctx)

	words := make([]uint16, 0, len(ls))

	for _, l := range ls {
		var w uint16
		var err error

		switch x := l.Instr.(type) {
		case L:
			continue
		case C:
			w, err = EncodeC(x)
		case A:
			w, err = a.encodeA(x)
		default:
			err = errors.New("unsupported instruction: %T", x)
		}

		if err != nil {
			return nil, errors.Wrap(err, "line %d", l.Num)
		}

		if tr.If("asm_words") {
			tr.Printw("word", "rom", len(words), "line", l.Num, "word", tlog.FormatNext("%016b"), w)
		}

		words = append(words, w)
	}

	return words, nil
}

func (a *Assembler) encodeA(x A) (uint16, error) {
	addr, err := a.address(x.Symbol)
	if err != nil {
		return 0, err
	}

	return hack.EncodeA(addr)
}

// address resolves a decimal literal or a symbol, allocating a variable for an unknown symbol.
func (a *Assembler) address(sym string) (uint16, error) {
	if parse.IsDecimal(sym) {
		v, err := parse.Uint(sym, hack.MaxAddress)
		if err != nil {
			return 0, errors.Wrap(hack.ErrAddressOutOfRange, "@%v", sym)
		}

		return uint16(v), nil
	}

	if addr, ok := a.syms.Resolve(sym); ok {
		return addr, nil
	}

	return a.syms.AllocateVariable(sym)
}

func EncodeC(x C) (uint16, error) {
	d, err := hack.ParseDest(x.Dest)
	if err != nil {
		return 0, err
	}

	c, err := hack.ParseComp(x.Comp)
	if err != nil {
		return 0, err
	}

	j, err := hack.ParseJump(x.Jump)
	if err != nil {
		return 0, err
	}

	return hack.EncodeC(d, c, j), nil
}
