package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Normalize returns the canonical form of tag. Empty or unparsable input
// yields fallback and false.
func Normalize(tag, fallback string) (string, bool) {
	tag = strings.TrimSpace(strings.ReplaceAll(tag, "_", "-"))
	if tag == "" {
		return fallback, false
	}
	parsed, err := language.Parse(tag)
	if err != nil || parsed == language.Und {
		return fallback, false
	}
	return parsed.String(), true
}

// Valid reports whether tag parses as a BCP 47 tag.
func Valid(tag string) bool {
	_, ok := Normalize(tag, "")
	return ok
}

// DisplayName returns the tag's name in its own language, e.g. "português
// (Brasil)" for pt-BR. Unknown tags are returned unchanged.
func DisplayName(tag string) string {
	parsed, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return tag
	}
	name := display.Self.Name(parsed)
	if name == "" {
		return tag
	}
	return name
}
