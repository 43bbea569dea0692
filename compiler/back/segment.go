package back

import (
	"fmt"
	"strconv"

	"tlog.app/go/errors"

	"github.com/slowlang/hack/compiler/ir"
)

// pushD pushes D: *SP = D, SP++.
const pushD = `@SP
A=M
M=D
@SP
M=M+1
`

// popD pops into D: SP--, D = *SP.
const popD = `@SP
AM=M-1
D=M
`

// scratch holds the target address while popping into an indirect segment.
const scratch = "R13"

var baseRegisters = [...]string{
	ir.Local:    "LCL",
	ir.Argument: "ARG",
	ir.This:     "THIS",
	ir.That:     "THAT",
}

var pointerRegisters = [ir.PointerSize]string{
	0: "THIS",
	1: "THAT",
}

func (t *Translator) Push(b []byte, seg ir.Segment, idx uint32) ([]byte, error) {
	err := seg.CheckIndex(idx)
	if err != nil {
		return nil, err
	}

	switch seg {
	case ir.Local, ir.Argument, ir.This, ir.That:
		b = fmt.Appendf(b, "@%s\nD=M\n@%d\nA=D+A\nD=M\n", baseRegisters[seg], idx)
	case ir.Constant:
		b = fmt.Appendf(b, "@%d\nD=A\n", idx)
	case ir.Static:
		b = fmt.Appendf(b, "@%s\nD=M\n", t.Static(idx))
	case ir.Pointer:
		b = fmt.Appendf(b, "@%s\nD=M\n", pointerRegisters[idx])
	case ir.Temp:
		b = fmt.Appendf(b, "@%d\nD=M\n", ir.TempBase+idx)
	default:
		return nil, errors.Wrap(ir.ErrUnknownSegment, "%d", int(seg))
	}

	b = append(b, pushD...)

	return b, nil
}

func (t *Translator) Pop(b []byte, seg ir.Segment, idx uint32) ([]byte, error) {
	if seg == ir.Constant {
		return nil, errors.Wrap(ir.ErrIllegalConstantPop, "index %d", idx)
	}

	err := seg.CheckIndex(idx)
	if err != nil {
		return nil, err
	}

	switch seg {
	case ir.Local, ir.Argument, ir.This, ir.That:
		b = fmt.Appendf(b, "@%s\nD=M\n@%d\nD=D+A\n@%s\nM=D\n", baseRegisters[seg], idx, scratch)
		b = append(b, popD...)
		b = fmt.Appendf(b, "@%s\nA=M\nM=D\n", scratch)
	case ir.Static:
		b = append(b, popD...)
		b = fmt.Appendf(b, "@%s\nM=D\n", t.Static(idx))
	case ir.Pointer:
		b = append(b, popD...)
		b = fmt.Appendf(b, "@%s\nM=D\n", pointerRegisters[idx])
	case ir.Temp:
		b = append(b, popD...)
		b = fmt.Appendf(b, "@%d\nM=D\n", ir.TempBase+idx)
	default:
		return nil, errors.Wrap(ir.ErrUnknownSegment, "%d", int(seg))
	}

	return b, nil
}

// Static is the symbol of the static variable idx.
func (t *Translator) Static(idx uint32) string {
	return t.Program + "." + strconv.FormatUint(uint64(idx), 10)
}
