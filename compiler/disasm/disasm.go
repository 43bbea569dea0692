// Package disasm turns a program image back into assembly.
package disasm

import (
	"context"
	"strconv"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/hack/compiler/asm"
	"github.com/slowlang/hack/compiler/asm/hack"
	"github.com/slowlang/hack/compiler/set"
)

// Disassemble decodes words into instructions.
// Addresses loaded right before a jump and pointing into the program
// get a label, and the loading instruction refers to it by name.
func Disassemble(ctx context.Context, ws []uint16) (xs []asm.Instr, err error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "disasm", "words", len(ws))
	defer tr.Finish("err", &err)

	dec := make([]hack.Instr, len(ws))

	for i, w := range ws {
		dec[i], err = hack.Decode(w)
		if err != nil {
			return nil, errors.Wrap(err, "rom %d", i)
		}
	}

	var targets set.Bits[int]

	for i := 0; i+1 < len(dec); i++ {
		if isJumpTarget(dec, i) {
			targets.Set(int(dec[i].Value))
		}
	}

	tr.V("disasm_targets").Printw("jump targets", "targets", targets)

	for i, x := range dec {
		if targets.IsSet(i) {
			xs = append(xs, asm.L{Name: Label(i)})
		}

		if !x.IsA {
			xs = append(xs, asm.C{Dest: x.Dest.String(), Comp: x.Comp.String(), Jump: x.Jump.String()})
			continue
		}

		sym := strconv.FormatUint(uint64(x.Value), 10)
		if isJumpTarget(dec, i) {
			sym = Label(int(x.Value))
		}

		xs = append(xs, asm.A{Symbol: sym})
	}

	return xs, nil
}

func Label(addr int) string {
	return "L" + strconv.Itoa(addr)
}

func isJumpTarget(dec []hack.Instr, i int) bool {
	if i+1 >= len(dec) {
		return false
	}

	a, c := dec[i], dec[i+1]

	return a.IsA && !c.IsA && c.Jump != hack.JumpNull && int(a.Value) < len(dec)
}
