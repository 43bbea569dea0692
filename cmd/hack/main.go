package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/hack/compiler"
	"github.com/slowlang/hack/compiler/asm"
	"github.com/slowlang/hack/compiler/format"
	"github.com/slowlang/hack/cpu"
)

func main() {
	asmCmd := &cli.Command{
		Name:        "asm",
		Description: "assemble .asm files into .hack program images",
		Action:      asmAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("output,o", "", "output file, - for stdout"),
			cli.NewFlag("symbols", false, "print symbol table"),
		},
	}

	vmCmd := &cli.Command{
		Name:        "vm",
		Description: "translate .vm files into .asm",
		Action:      vmAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("output,o", "", "output file, - for stdout"),
		},
	}

	buildCmd := &cli.Command{
		Name:        "build",
		Description: "translate and assemble .vm files into .hack program images",
		Action:      buildAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("output,o", "", "output file, - for stdout"),
		},
	}

	disCmd := &cli.Command{
		Name:        "dis",
		Description: "disassemble .hack program images",
		Action:      disAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("output,o", "", "output file, - for stdout"),
		},
	}

	runCmd := &cli.Command{
		Name:        "run",
		Description: "run a .hack, .asm or .vm program on the emulator",
		Action:      runAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("steps", 1000000, "max steps, 0 for no limit"),
			cli.NewFlag("ram", "", "RAM window to print: from:to, empty for written cells"),
			cli.NewFlag("sp", 256, "initial stack pointer"),
		},
	}

	app := &cli.Command{
		Name:        "hack",
		Description: "hack is a toolchain for the Hack computer",
		Before:      before,
		Flags: []*cli.Flag{
			cli.NewFlag("verbosity,v", "", "tlog verbosity topics"),
		},
		Commands: []*cli.Command{
			asmCmd,
			vmCmd,
			buildCmd,
			disCmd,
			runCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func before(c *cli.Command) error {
	tlog.SetVerbosity(c.String("verbosity"))

	return nil
}

func asmAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		ws, syms, err := compiler.AssembleFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "assemble %v", a)
		}

		if c.Bool("symbols") {
			printSymbols(os.Stdout, syms)
		}

		err = writeOutput(c, a, compiler.ExtBinary, format.Words(nil, ws))
		if err != nil {
			return err
		}
	}

	return nil
}

func vmAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		text, err := compiler.TranslateFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "translate %v", a)
		}

		err = writeOutput(c, a, compiler.ExtAsm, text)
		if err != nil {
			return err
		}
	}

	return nil
}

func buildAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		ws, err := compiler.BuildFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "build %v", a)
		}

		err = writeOutput(c, a, compiler.ExtBinary, format.Words(nil, ws))
		if err != nil {
			return err
		}
	}

	return nil
}

func disAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		text, err := compiler.DisassembleFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "disassemble %v", a)
		}

		err = writeOutput(c, a, compiler.ExtAsm, text)
		if err != nil {
			return err
		}
	}

	return nil
}

func runAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	from, to, err := parseWindow(c.String("ram"))
	if err != nil {
		return errors.Wrap(err, "ram flag")
	}

	for _, a := range c.Args {
		ws, err := compiler.LoadFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "load %v", a)
		}

		m := cpu.New(ws)
		m.RAM[0] = uint16(c.Int("sp"))

		steps, err := m.Run(ctx, c.Int("steps"))
		if err != nil {
			return errors.Wrap(err, "run %v", a)
		}

		fmt.Printf("%v: steps %d  PC %d  A %d  D %d\n", a, steps, m.PC, int16(m.A), int16(m.D))

		if from < to {
			for i := from; i < to && i < len(m.RAM); i++ {
				fmt.Printf("RAM[%d] = %d\n", i, int16(m.RAM[i]))
			}

			continue
		}

		m.Written.Range(func(i int) bool {
			fmt.Printf("RAM[%d] = %d\n", i, int16(m.RAM[i]))
			return true
		})
	}

	return nil
}

// writeOutput writes the whole output at once. With several inputs -o is ignored unless it is stdout.
func writeOutput(c *cli.Command, in, ext string, data []byte) error {
	out := c.String("output")

	if out == "-" {
		_, err := os.Stdout.Write(data)
		if err != nil {
			return errors.Wrap(err, "write stdout")
		}

		return nil
	}

	if out == "" || len(c.Args) > 1 {
		out = compiler.OutputPath(in, ext)
	}

	err := os.WriteFile(out, data, 0o644)
	if err != nil {
		return errors.Wrap(err, "write %v", out)
	}

	tlog.Printw("written", "in", in, "out", out, "size", len(data))

	return nil
}

func printSymbols(w io.Writer, t *asm.SymbolTable) {
	fmt.Fprintf(w, "symbols %d  next variable %d\n", t.Len(), t.NextVariable())

	for _, s := range t.Symbols() {
		fmt.Fprintf(w, "%-24s %5d  %v\n", s.Name, s.Addr, s.Origin)
	}
}

func parseWindow(s string) (from, to int, err error) {
	if s == "" {
		return 0, 0, nil
	}

	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, errors.New("want from:to, got %q", s)
	}

	from, err = strconv.Atoi(a)
	if err != nil {
		return 0, 0, errors.Wrap(err, "from")
	}

	to, err = strconv.Atoi(b)
	if err != nil {
		return 0, 0, errors.Wrap(err, "to")
	}

	if from < 0 || to > cpu.RAMSize || from > to {
		return 0, 0, errors.New("bad window %d:%d", from, to)
	}

	return from, to, nil
}
