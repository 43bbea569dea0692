package parse

import (
	"tlog.app/go/errors"
)

var (
	ErrNumberExpected = errors.New("number expected")
	ErrNumberOverflow = errors.New("number overflow")
)

// Digits returns the end of the decimal digit run starting at st.
func Digits(s string, st int) (i int) {
	i = st

	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}

	return i
}

// IsDecimal reports whether s is a non-empty run of decimal digits.
func IsDecimal(s string) bool {
	return s != "" && Digits(s, 0) == len(s)
}

// Uint parses a decimal number not greater than max.
// Signs, base prefixes and separators are not accepted.
func Uint(s string, max uint64) (v uint64, err error) {
	if !IsDecimal(s) {
		return 0, errors.Wrap(ErrNumberExpected, "%q", s)
	}

	for _, c := range []byte(s) {
		d := uint64(c - '0')

		if d > max || v > (max-d)/10 {
			return 0, errors.Wrap(ErrNumberOverflow, "%q > %d", s, max)
		}

		v = v*10 + d
	}

	return v, nil
}
