package textstats

import (
	"strings"
	"unicode/utf8"
)

// Words counts whitespace-separated tokens.
func Words(s string) int { return len(strings.Fields(s)) }

// Chars counts runes, not bytes, matching what callers see as text length.
func Chars(s string) int { return utf8.RuneCountInString(s) }
