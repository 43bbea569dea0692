package parse

import (
	"strings"
)

type (
	// Line is a logical source line with comment and surrounding spaces removed.
	Line struct {
		Num  int
		Text string
	}
)

const Comment = "//"

// Lines splits text into non-empty logical lines.
// Line numbers are 1-based and count the empty lines too.
func Lines(text []byte) (ls []Line) {
	num := 0

	for st := 0; st < len(text); {
		num++

		end := st
		for end < len(text) && text[end] != '\n' {
			end++
		}

		l := StripComment(string(text[st:end]))

		if l != "" {
			ls = append(ls, Line{Num: num, Text: l})
		}

		st = end + 1
	}

	return ls
}

func StripComment(l string) string {
	if p := strings.Index(l, Comment); p >= 0 {
		l = l[:p]
	}

	return SpaceAll.Trim(l)
}
