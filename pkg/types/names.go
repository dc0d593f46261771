package types

import (
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the longest entry name a store accepts, in runes.
const MaxNameLength = 255

const forbiddenNameChars = "<>/\\\":;?*,=`"

// IsValidName reports whether name may be used for a symbol table record.
// Names must be non-empty, must not start or end with a space, must not
// contain any of <>/\":;?*,=` and may contain a vertical bar only when
// allowVerticalBar is true (dependent symbols of external references use
// "block|name").
func IsValidName(name string, allowVerticalBar bool) bool {
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return false
	}
	if strings.HasPrefix(name, " ") || strings.HasSuffix(name, " ") {
		return false
	}
	if strings.ContainsAny(name, forbiddenNameChars) {
		return false
	}
	if !allowVerticalBar && strings.Contains(name, "|") {
		return false
	}
	return true
}
