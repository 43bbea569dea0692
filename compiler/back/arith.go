package back

import (
	"fmt"
	"strings"

	"tlog.app/go/errors"

	"github.com/slowlang/hack/compiler/ir"
)

// binary pops the right operand into D and combines it with the left one in place.
const binary = `@SP
M=M-1
A=M
D=M
@SP
M=M-1
A=M
M=%s
@SP
M=M+1
`

const unary = `@SP
A=M-1
M=%s
`

// compare leaves -1 (true) or 0 (false) on the stack.
// Arguments: label name, label number, jump condition.
const compare = `@SP
M=M-1
A=M
D=M
@SP
M=M-1
A=M
D=M-D
@IS_%[1]s_%[2]d
D;%[3]s
(NOT_%[1]s_%[2]d)
D=0
@SET_RESULT_%[2]d
0;JMP
(IS_%[1]s_%[2]d)
D=-1
(SET_RESULT_%[2]d)
@SP
A=M
M=D
@SP
M=M+1
`

var arithComp = [...]string{
	ir.Add: "D+M",
	ir.Sub: "M-D",
	ir.Neg: "-M",
	ir.And: "D&M",
	ir.Or:  "D|M",
	ir.Not: "!M",
}

var compareJump = [...]string{
	ir.Eq: "JEQ",
	ir.Gt: "JGT",
	ir.Lt: "JLT",
}

func (t *Translator) Arithmetic(b []byte, op ir.ArithOp) ([]byte, error) {
	switch op {
	case ir.Add, ir.Sub, ir.And, ir.Or:
		b = fmt.Appendf(b, binary, arithComp[op])
	case ir.Neg, ir.Not:
		b = fmt.Appendf(b, unary, arithComp[op])
	case ir.Eq, ir.Gt, ir.Lt:
		b = fmt.Appendf(b, compare, strings.ToUpper(op.String()), t.labels, compareJump[op])

		t.labels++
	default:
		return nil, errors.Wrap(ir.ErrUnknownCommand, "op %d", int(op))
	}

	return b, nil
}
