// Package cpu emulates the Hack computer: ROM, data memory and the A, D and PC registers.
package cpu

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/hack/compiler/asm/hack"
	"github.com/slowlang/hack/compiler/set"
)

// RAMSize covers data memory, screen and the keyboard register.
const RAMSize = 24577

type CPU struct {
	ROM []uint16
	RAM []uint16

	A  uint16
	D  uint16
	PC uint16

	// Halted is set when the program spins in place or PC leaves ROM.
	Halted bool

	// Written keeps addresses stored to since New or Reset.
	Written set.Bits[int]
}

var (
	ErrStepLimit = errors.New("step limit reached")
	ErrHalted    = errors.New("halted")
)

func New(rom []uint16) *CPU {
	c := &CPU{
		ROM: rom,
		RAM: make([]uint16, RAMSize),
	}

	c.Halted = len(rom) == 0

	return c
}

// Reset clears registers and memory. ROM is kept.
func (c *CPU) Reset() {
	for i := range c.RAM {
		c.RAM[i] = 0
	}

	c.A, c.D, c.PC = 0, 0, 0
	c.Halted = len(c.ROM) == 0
	c.Written = set.Bits[int]{}
}

// Step executes one instruction.
func (c *CPU) Step() error {
	if c.Halted {
		return ErrHalted
	}

	pc := c.PC

	if int(pc) >= len(c.ROM) {
		c.Halted = true
		return ErrHalted
	}

	x, err := hack.Decode(c.ROM[pc])
	if err != nil {
		return errors.Wrap(err, "rom %d", pc)
	}

	if x.IsA {
		c.A = x.Value
		c.advance(pc + 1)

		return nil
	}

	a := c.A

	var y uint16

	if x.Comp.UsesM() {
		y, err = c.load(a)
		if err != nil {
			return errors.Wrap(err, "rom %d", pc)
		}
	} else {
		y = a
	}

	out := ALU(x.Comp, c.D, y)

	if x.Dest&hack.DestM != 0 {
		err = c.store(a, out)
		if err != nil {
			return errors.Wrap(err, "rom %d", pc)
		}
	}

	if x.Dest&hack.DestA != 0 {
		c.A = out
	}

	if x.Dest&hack.DestD != 0 {
		c.D = out
	}

	if !Taken(x.Jump, out) {
		c.advance(pc + 1)
		return nil
	}

	c.advance(a)

	if c.spins(pc, x) {
		c.Halted = true
	}

	return nil
}

// Run steps until the program halts, the context is canceled or maxSteps are executed.
// maxSteps <= 0 means no limit.
func (c *CPU) Run(ctx context.Context, maxSteps int) (steps int, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "cpu: run", "rom", len(c.ROM), "max_steps", maxSteps)
	defer tr.Finish("err", &err)

	for !c.Halted {
		if maxSteps > 0 && steps >= maxSteps {
			return steps, errors.Wrap(ErrStepLimit, "pc %d", c.PC)
		}

		if steps%1024 == 0 {
			select {
			case <-ctx.Done():
				return steps, ctx.Err()
			default:
			}
		}

		if tr.If("cpu_step") {
			tr.Printw("step", "pc", c.PC, "a", c.A, "d", c.D, "word", tlog.FormatNext("%016b"), c.ROM[c.PC])
		}

		err = c.Step()
		if err != nil {
			return steps, err
		}

		steps++
	}

	tr.Printw("halted", "steps", steps, "pc", c.PC)
	tr.V("cpu_written").Printw("written", "addrs", c.Written)

	return steps, nil
}

// spins reports whether the jump at pc loops forever without changing state:
// either it targets itself or the A instruction right before it that loaded the target.
func (c *CPU) spins(pc uint16, x hack.Instr) bool {
	if x.Dest != hack.DestNull {
		return false
	}

	if c.PC == pc {
		return true
	}

	return c.PC+1 == pc && c.ROM[c.PC] == c.PC
}

func (c *CPU) advance(pc uint16) {
	c.PC = pc
	c.Halted = int(pc) >= len(c.ROM)
}

func (c *CPU) load(addr uint16) (uint16, error) {
	if int(addr) >= len(c.RAM) {
		return 0, errors.Wrap(hack.ErrAddressOutOfRange, "load %d", addr)
	}

	return c.RAM[addr], nil
}

func (c *CPU) store(addr, v uint16) error {
	if int(addr) >= len(c.RAM) {
		return errors.Wrap(hack.ErrAddressOutOfRange, "store %d", addr)
	}

	c.RAM[addr] = v
	c.Written.Set(int(addr))

	return nil
}

// ALU computes comp over x = D and y = A or M.
func ALU(comp hack.Comp, x, y uint16) uint16 {
	switch comp {
	case hack.Comp0:
		return 0
	case hack.Comp1:
		return 1
	case hack.CompNeg1:
		return 0xffff
	case hack.CompD:
		return x
	case hack.CompA, hack.CompM:
		return y
	case hack.CompNotD:
		return ^x
	case hack.CompNotA, hack.CompNotM:
		return ^y
	case hack.CompNegD:
		return -x
	case hack.CompNegA, hack.CompNegM:
		return -y
	case hack.CompDPlus1:
		return x + 1
	case hack.CompAPlus1, hack.CompMPlus1:
		return y + 1
	case hack.CompDMinus1:
		return x - 1
	case hack.CompAMinus1, hack.CompMMinus1:
		return y - 1
	case hack.CompDPlusA, hack.CompDPlusM:
		return x + y
	case hack.CompDMinusA, hack.CompDMinusM:
		return x - y
	case hack.CompAMinusD, hack.CompMMinusD:
		return y - x
	case hack.CompDAndA, hack.CompDAndM:
		return x & y
	case hack.CompDOrA, hack.CompDOrM:
		return x | y
	}

	panic(comp)
}

// Taken reports whether jump condition j holds for the signed value out.
func Taken(j hack.Jump, out uint16) bool {
	v := int16(out)

	switch j {
	case hack.JGT:
		return v > 0
	case hack.JEQ:
		return v == 0
	case hack.JGE:
		return v >= 0
	case hack.JLT:
		return v < 0
	case hack.JNE:
		return v != 0
	case hack.JLE:
		return v <= 0
	case hack.JMP:
		return true
	}

	return false
}
