package compiler

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/hack/compiler/asm"
	"github.com/slowlang/hack/compiler/back"
	"github.com/slowlang/hack/compiler/disasm"
	"github.com/slowlang/hack/compiler/format"
	"github.com/slowlang/hack/compiler/front"
)

const (
	ExtAsm    = ".asm"
	ExtVM     = ".vm"
	ExtBinary = ".hack"
)

var ErrUnknownExtension = errors.New("unknown file extension")

func AssembleFile(ctx context.Context, name string) (ws []uint16, syms *asm.SymbolTable, err error) {
	text, err := readFile(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	return Assemble(ctx, text)
}

// Assemble turns assembly text into a program image.
func Assemble(ctx context.Context, text []byte) (ws []uint16, syms *asm.SymbolTable, err error) {
	ls, err := asm.Parse(ctx, text)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parse")
	}

	a := asm.New()

	ws, err = a.Assemble(ctx, ls)
	if err != nil {
		return nil, nil, errors.Wrap(err, "assemble")
	}

	return ws, a.Symbols(), nil
}

func TranslateFile(ctx context.Context, name string) (text []byte, err error) {
	src, err := readFile(ctx, name)
	if err != nil {
		return nil, err
	}

	return Translate(ctx, Program(name), src)
}

// Translate turns stack machine commands into assembly text.
// program prefixes static variables.
func Translate(ctx context.Context, program string, src []byte) (text []byte, err error) {
	ls, err := front.Parse(ctx, src)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}

	t := back.New(program)

	text, err = t.Translate(ctx, nil, ls)
	if err != nil {
		return nil, errors.Wrap(err, "translate")
	}

	tlog.SpanFromContext(ctx).Printw("translated", "program", program, "commands", len(ls), "labels", t.Labels(), "size", len(text))

	return text, nil
}

func BuildFile(ctx context.Context, name string) (ws []uint16, err error) {
	src, err := readFile(ctx, name)
	if err != nil {
		return nil, err
	}

	return Build(ctx, Program(name), src)
}

// Build translates and assembles in memory.
func Build(ctx context.Context, program string, src []byte) (ws []uint16, err error) {
	text, err := Translate(ctx, program, src)
	if err != nil {
		return nil, err
	}

	tlog.SpanFromContext(ctx).V("build_asm").Printw("assembly", "size", len(text), "text", text)

	ws, _, err = Assemble(ctx, text)
	if err != nil {
		return nil, err
	}

	return ws, nil
}

func DisassembleFile(ctx context.Context, name string) (text []byte, err error) {
	src, err := readFile(ctx, name)
	if err != nil {
		return nil, err
	}

	return Disassemble(ctx, src)
}

// Disassemble turns a program image text back into assembly text.
func Disassemble(ctx context.Context, src []byte) (text []byte, err error) {
	ws, err := format.ParseWords(src)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}

	xs, err := disasm.Disassemble(ctx, ws)
	if err != nil {
		return nil, errors.Wrap(err, "disassemble")
	}

	return format.Instrs(nil, xs)
}

// LoadFile returns the program image for a binary, assembly or stack machine file.
func LoadFile(ctx context.Context, name string) (ws []uint16, err error) {
	switch ext := filepath.Ext(name); ext {
	case ExtBinary:
		text, err := readFile(ctx, name)
		if err != nil {
			return nil, err
		}

		return format.ParseWords(text)
	case ExtAsm:
		ws, _, err = AssembleFile(ctx, name)
		return ws, err
	case ExtVM:
		return BuildFile(ctx, name)
	default:
		return nil, errors.Wrap(ErrUnknownExtension, "%q", ext)
	}
}

// OutputPath replaces the extension of in with ext.
func OutputPath(in, ext string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + ext
}

// Program is the file base name without extension.
func Program(name string) string {
	base := filepath.Base(name)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

func readFile(ctx context.Context, name string) ([]byte, error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return text, nil
}
