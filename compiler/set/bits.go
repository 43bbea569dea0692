package set

import (
	"math/bits"

	"tlog.app/go/tlog/tlwire"
)

type (
	Key interface {
		~int | ~int64 | ~uint16
	}

	// Bits is a set of addresses starting from base.
	// Zero value is an empty set based at zero.
	Bits[K Key] struct {
		base K
		b    []uint64
		b0   [2]uint64
	}
)

func MakeBits[K Key](base K) Bits[K] {
	s := Bits[K]{
		base: base,
	}

	s.b = s.b0[:0]

	return s
}

func (s *Bits[K]) Set(k K) {
	i, j := s.ij(k)

	s.grow(i)

	s.b[i] |= 1 << j
}

func (s Bits[K]) IsSet(k K) bool {
	if k < s.base {
		return false
	}

	i, j := s.ij(k)

	if i >= len(s.b) {
		return false
	}

	return s.b[i]&(1<<j) != 0
}

func (s Bits[K]) Clear(k K) {
	if k < s.base {
		return
	}

	i, j := s.ij(k)

	if i >= len(s.b) {
		return
	}

	s.b[i] &^= 1 << j
}

func (s Bits[K]) Size() (r int) {
	for _, c := range s.b {
		r += bits.OnesCount64(c)
	}

	return r
}

// Range calls f for each key in ascending order until f returns false.
func (s Bits[K]) Range(f func(k K) bool) {
	for i, x := range s.b {
		for x != 0 {
			j := bits.TrailingZeros64(x)
			x &^= 1 << j

			if !f(s.base + K(i*64+j)) {
				return
			}
		}
	}
}

func (s Bits[K]) Slice() (r []K) {
	s.Range(func(k K) bool {
		r = append(r, k)
		return true
	})

	return r
}

func (s Bits[K]) TlogAppend(b []byte) []byte {
	var e tlwire.LowEncoder

	if s.b == nil {
		return e.AppendNil(b)
	}

	b = e.AppendTag(b, tlwire.Array, -1)

	s.Range(func(k K) bool {
		b = e.AppendInt(b, int(k))

		return true
	})

	b = e.AppendBreak(b)

	return b
}

func (s *Bits[K]) ij(k K) (i int, j int) {
	p := int(k - s.base)
	i, j = p/64, p%64

	return i, j
}

func (s *Bits[K]) grow(i int) {
	if s.b == nil {
		s.b = s.b0[:0]
	}

	for i >= len(s.b) {
		s.b = append(s.b, 0)
	}
}
