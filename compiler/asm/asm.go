// Package asm implements the Hack assembler:
// source lines are classified into instructions,
// labels are bound in the first pass and words are emitted in the second.
package asm

import (
	"tlog.app/go/errors"
)

type (
	// Instr is one of A, C or L.
	Instr any

	// A loads a numeric or symbolic address into the A register.
	A struct {
		Symbol string
	}

	// C is dest=comp;jump. Dest and Jump are empty when omitted.
	C struct {
		Dest string
		Comp string
		Jump string
	}

	// L binds Name to the address of the next A or C instruction.
	L struct {
		Name string
	}

	Line struct {
		Num   int
		Instr Instr
	}
)

var (
	ErrEmptyLine          = errors.New("empty line")
	ErrEmptySymbol        = errors.New("empty symbol")
	ErrUnterminatedLabel  = errors.New("unterminated label")
	ErrSymbolRedefinition = errors.New("symbol redefinition")
)
