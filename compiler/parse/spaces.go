package parse

type (
	Spaces uint64
)

var (
	Space    = NewSpaces(' ')
	SpaceTab = NewSpaces(' ', '\t')
	SpaceAll = NewSpaces(' ', '\t', '\r', '\n', '\v', '\f')
)

func NewSpaces(skip ...byte) (ss Spaces) {
	for _, q := range skip {
		if q >= 64 {
			panic("too high char code")
		}

		ss |= 1 << q
	}

	return
}

func (s Spaces) Is(c byte) bool {
	return c < 64 && s&(1<<c) != 0
}

func (s Spaces) Skip(b string, st int) (i int) {
	i = st

	for i < len(b) && s.Is(b[i]) {
		i++
	}

	return
}

// Until returns the index of the first space at or after st.
func (s Spaces) Until(b string, st int) (i int) {
	i = st

	for i < len(b) && !s.Is(b[i]) {
		i++
	}

	return
}

func (s Spaces) Trim(b string) string {
	st := s.Skip(b, 0)
	end := len(b)

	for end > st && s.Is(b[end-1]) {
		end--
	}

	return b[st:end]
}

// Compact removes all the spaces from b.
func (s Spaces) Compact(b string) string {
	i := s.Until(b, 0)
	if i == len(b) {
		return b
	}

	r := make([]byte, 0, len(b))

	for i = 0; i < len(b); i++ {
		if !s.Is(b[i]) {
			r = append(r, b[i])
		}
	}

	return string(r)
}

func (s Spaces) Fields(b string) (r []string) {
	for i := s.Skip(b, 0); i < len(b); i = s.Skip(b, i) {
		end := s.Until(b, i)

		r = append(r, b[i:end])

		i = end
	}

	return r
}
