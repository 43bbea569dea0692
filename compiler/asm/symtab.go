package asm

import (
	"nikand.dev/go/heap"
	"tlog.app/go/errors"

	"github.com/slowlang/hack/compiler/asm/hack"
)

type (
	Origin int

	Symbol struct {
		Name   string
		Addr   uint16
		Origin Origin
	}

	// SymbolTable maps symbols to RAM or ROM addresses.
	// Variables are allocated from VarBase upwards.
	SymbolTable struct {
		m    map[string]Symbol
		next uint16
	}
)

const (
	OriginPredefined Origin = iota
	OriginLabel
	OriginVariable
)

const (
	VarBase = 16

	Screen   = 16384
	Keyboard = 24576
)

var predefined = [...]struct {
	Name string
	Addr uint16
}{
	{"SP", 0},
	{"LCL", 1},
	{"ARG", 2},
	{"THIS", 3},
	{"THAT", 4},
	{"R0", 0},
	{"R1", 1},
	{"R2", 2},
	{"R3", 3},
	{"R4", 4},
	{"R5", 5},
	{"R6", 6},
	{"R7", 7},
	{"R8", 8},
	{"R9", 9},
	{"R10", 10},
	{"R11", 11},
	{"R12", 12},
	{"R13", 13},
	{"R14", 14},
	{"R15", 15},
	{"SCREEN", Screen},
	{"KBD", Keyboard},
}

var originNames = [...]string{
	OriginPredefined: "predefined",
	OriginLabel:      "label",
	OriginVariable:   "variable",
}

func NewSymbolTable() *SymbolTable {
	t := &SymbolTable{
		m:    make(map[string]Symbol, len(predefined)),
		next: VarBase,
	}

	for _, p := range predefined {
		t.m[p.Name] = Symbol{Name: p.Name, Addr: p.Addr, Origin: OriginPredefined}
	}

	return t
}

// Bind binds a label to addr.
// Binding a name again to the same address is a no-op.
func (t *SymbolTable) Bind(name string, addr uint16) error {
	if s, ok := t.Lookup(name); ok {
		if s.Addr == addr {
			return nil
		}

		return errors.Wrap(ErrSymbolRedefinition, "%v: %v %d, rebound to %d", name, s.Origin, s.Addr, addr)
	}

	if addr > hack.MaxAddress {
		return errors.Wrap(hack.ErrAddressOutOfRange, "%v: %d", name, addr)
	}

	t.m[name] = Symbol{Name: name, Addr: addr, Origin: OriginLabel}

	return nil
}

func (t *SymbolTable) Resolve(name string) (uint16, bool) {
	s, ok := t.m[name]

	return s.Addr, ok
}

// Lookup is Resolve that also reports where the symbol came from.
func (t *SymbolTable) Lookup(name string) (Symbol, bool) {
	s, ok := t.m[name]

	return s, ok
}

// AllocateVariable returns the address name is bound to,
// binding it to the next free RAM cell first if it's unbound.
func (t *SymbolTable) AllocateVariable(name string) (uint16, error) {
	if s, ok := t.Lookup(name); ok {
		return s.Addr, nil
	}

	if t.next > hack.MaxAddress {
		return 0, errors.Wrap(hack.ErrAddressOutOfRange, "variable %v", name)
	}

	addr := t.next
	t.next++

	t.m[name] = Symbol{Name: name, Addr: addr, Origin: OriginVariable}

	return addr, nil
}

// NextVariable is the address the next variable would get.
func (t *SymbolTable) NextVariable() uint16 { return t.next }

func (t *SymbolTable) Len() int { return len(t.m) }

// Symbols lists all the entries ordered by address and then by name.
func (t *SymbolTable) Symbols() []Symbol {
	h := heap.Heap[Symbol]{Less: symbolLess}

	for _, s := range t.m {
		h.Push(s)
	}

	r := make([]Symbol, 0, h.Len())

	for h.Len() != 0 {
		r = append(r, h.Pop())
	}

	return r
}

func symbolLess(d []Symbol, i, j int) bool {
	if d[i].Addr != d[j].Addr {
		return d[i].Addr < d[j].Addr
	}

	return d[i].Name < d[j].Name
}

func (o Origin) String() string {
	if o < 0 || int(o) >= len(originNames) {
		return "<invalid>"
	}

	return originNames[o]
}
