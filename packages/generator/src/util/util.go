package util

import (
	"unicode"
	"unicode/utf8"
)

// Capitalize upper-cases the first rune of the input
func Capitalize(input string) string {
	if input == "" {
		return input
	}
	r, size := utf8.DecodeRuneInString(input)
	return string(unicode.ToUpper(r)) + input[size:]
}

// Uncapitalize lower-cases the first rune of the input
func Uncapitalize(input string) string {
	if input == "" {
		return input
	}
	r, size := utf8.DecodeRuneInString(input)
	return string(unicode.ToLower(r)) + input[size:]
}
