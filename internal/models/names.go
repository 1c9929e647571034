// internal/models/names.go
package models

import (
	"strings"
	"unicode/utf8"
)

// SameName is the single name-equality rule of the catalog: exact
// case-insensitive comparison of the stored strings, no trimming.
func SameName(a, b string) bool {
	return strings.EqualFold(a, b)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func nameLength(s string) int {
	return utf8.RuneCountInString(s)
}
