package routes

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// paramName folds the "$" parameter marker of a base name into "Param".
func paramName(baseName string) string {
	return strings.ReplaceAll(baseName, "$", "Param")
}

// ComponentName returns the identifier a route component is imported as.
//
//	"home"        → "Home"
//	"user-list"   → "UserList"
//	"$id"         → "Paramid"
//	"404"         → "Page404"
func ComponentName(baseName string) string {
	name := PascalCase(paramName(baseName))
	if name == "" {
		return "Page"
	}
	if first, _ := utf8.DecodeRuneInString(name); unicode.IsDigit(first) {
		return "Page" + name
	}
	return name
}

// RouteVar returns the identifier of the generated route constant, the
// component name with a lower-cased first character.
//
//	"user-list" → "userListRoute"
//	"$id"       → "paramidRoute"
func RouteVar(baseName string) string {
	name := ComponentName(baseName)
	first, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(first)) + name[size:] + "Route"
}

// PascalCase removes runs of separators (anything that is not a letter or
// a digit, such as ".", "-", "_" and whitespace), upper-casing the
// character that follows each run and the first character.
func PascalCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	upperNext := false
	for _, r := range s {
		if isSeparator(r) {
			upperNext = true
			continue
		}
		if upperNext {
			r = unicode.ToUpper(r)
			upperNext = false
		}
		b.WriteRune(r)
	}

	out := b.String()
	if out == "" {
		return out
	}
	first, size := utf8.DecodeRuneInString(out)
	return string(unicode.ToUpper(first)) + out[size:]
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
