// Package ir defines the stack machine commands the translator lowers to assembly.
package ir

import (
	"strconv"

	"tlog.app/go/errors"
)

type (
	Segment int
	ArithOp int

	Command interface {
		String() string
	}

	Push struct {
		Segment Segment
		Index   uint32
	}

	Pop struct {
		Segment Segment
		Index   uint32
	}

	Arithmetic struct {
		Op ArithOp
	}

	// Line is a command together with the source it came from.
	Line struct {
		Num     int
		Text    string
		Command Command
	}
)

const (
	Local Segment = iota
	Argument
	This
	That
	Constant
	Static
	Pointer
	Temp

	numSegments
)

const (
	Add ArithOp = iota
	Sub
	Neg
	Eq
	Gt
	Lt
	And
	Or
	Not

	numArithOps
)

const (
	TempBase = 5
	TempSize = 8

	PointerSize = 2

	MaxConstant = 1<<15 - 1

	// MaxIndex bounds the other segments: offsets end up in 15-bit A instructions.
	MaxIndex = 1<<15 - 1
)

var (
	ErrUnknownCommand      = errors.New("unknown command")
	ErrUnknownSegment      = errors.New("unknown segment")
	ErrMalformedCommand    = errors.New("malformed command")
	ErrInvalidSegmentIndex = errors.New("invalid segment index")
	ErrIllegalConstantPop  = errors.New("pop to constant segment")
)

var segmentNames = [numSegments]string{
	Local:    "local",
	Argument: "argument",
	This:     "this",
	That:     "that",
	Constant: "constant",
	Static:   "static",
	Pointer:  "pointer",
	Temp:     "temp",
}

var arithNames = [numArithOps]string{
	Add: "add",
	Sub: "sub",
	Neg: "neg",
	Eq:  "eq",
	Gt:  "gt",
	Lt:  "lt",
	And: "and",
	Or:  "or",
	Not: "not",
}

func ParseSegment(s string) (Segment, error) {
	for i, n := range segmentNames {
		if n == s {
			return Segment(i), nil
		}
	}

	return 0, errors.Wrap(ErrUnknownSegment, "%q", s)
}

func ParseArithOp(s string) (ArithOp, bool) {
	for i, n := range arithNames {
		if n == s {
			return ArithOp(i), true
		}
	}

	return 0, false
}

// CheckIndex validates index against segment bounds.
func (s Segment) CheckIndex(idx uint32) error {
	var lim uint32

	switch s {
	case Pointer:
		lim = PointerSize
	case Temp:
		lim = TempSize
	case Constant:
		lim = MaxConstant + 1
	default:
		lim = MaxIndex + 1
	}

	if idx >= lim {
		return errors.Wrap(ErrInvalidSegmentIndex, "%v %d", s, idx)
	}

	return nil
}

func (s Segment) String() string {
	if s < 0 || s >= numSegments {
		return "<invalid>"
	}

	return segmentNames[s]
}

func (op ArithOp) String() string {
	if op < 0 || op >= numArithOps {
		return "<invalid>"
	}

	return arithNames[op]
}

func (op ArithOp) Unary() bool { return op == Neg || op == Not }

func (op ArithOp) Comparison() bool { return op == Eq || op == Gt || op == Lt }

// Check reports the commands which are well-formed syntactically but not executable.
func Check(c Command) error {
	switch c := c.(type) {
	case Push:
		return c.Segment.CheckIndex(c.Index)
	case Pop:
		if c.Segment == Constant {
			return errors.Wrap(ErrIllegalConstantPop, "%v", c)
		}

		return c.Segment.CheckIndex(c.Index)
	case Arithmetic:
		if c.Op < 0 || c.Op >= numArithOps {
			return errors.Wrap(ErrUnknownCommand, "op %d", int(c.Op))
		}

		return nil
	default:
		return errors.New("unsupported command: %T", c)
	}
}

func (c Push) String() string {
	return "push " + c.Segment.String() + " " + strconv.FormatUint(uint64(c.Index), 10)
}

func (c Pop) String() string {
	return "pop " + c.Segment.String() + " " + strconv.FormatUint(uint64(c.Index), 10)
}

func (c Arithmetic) String() string { return c.Op.String() }
