// Package slug derives URL-safe course identifiers from titles.
package slug

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// The whitespace class mirrors ECMAScript's \s so titles pasted from rich
// text (NBSP, line separators, BOM) behave like ordinary spaces.
const space = `\s\v\p{Z}\x{FEFF}`

var (
	// combiningMarks matches the combining diacritical marks block.
	combiningMarks = regexp.MustCompile(`[\x{0300}-\x{036f}]`)
	// disallowed matches anything that isn't a letter, digit, space, or hyphen.
	disallowed = regexp.MustCompile(`[^a-z0-9` + space + `-]`)
	// spaces collapses whitespace runs into one hyphen.
	spaces = regexp.MustCompile(`[` + space + `]+`)
	// hyphens collapses consecutive hyphens into one.
	hyphens = regexp.MustCompile(`-+`)
)

// Slugify creates a URL-friendly slug from the given title.
// Accents are dropped rather than transliterated:
// "Gestão Hospitalar" → "gestao-hospitalar".
// The result may be empty when the input has no retainable characters.
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = norm.NFD.String(s)
	s = combiningMarks.ReplaceAllString(s, "")
	s = disallowed.ReplaceAllString(s, "")
	s = strings.TrimFunc(s, isSpace)
	s = spaces.ReplaceAllString(s, "-")
	s = hyphens.ReplaceAllString(s, "-")
	return s
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0x00a0, 0x1680, 0x2028, 0x2029, 0x202f, 0x205f, 0x3000, 0xfeff:
		return true
	}
	return r >= 0x2000 && r <= 0x200a
}
