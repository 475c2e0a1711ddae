package service

import (
	"strings"
	"unicode"

	"ladder/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LocalPart returns the portion of an identity before its domain separator
func LocalPart(identity string) string {
	local, _, _ := strings.Cut(identity, "@")
	return local
}

// Salutation derives a display name from an identity: "john.smith@x" becomes
// "John Smith". Every run of letters is its own word, so "john_smith" becomes
// "John_Smith" and "dave2x" becomes "Dave2X".
func Salutation(identity string) string {
	name := strings.ReplaceAll(LocalPart(identity), ".", " ")

	// cases.Caser keeps state between calls, so one is built per use
	caser := cases.Title(language.Und)

	var b strings.Builder
	b.Grow(len(name))
	start := -1
	for i, r := range name {
		switch {
		case unicode.IsLetter(r):
			if start < 0 {
				start = i
			}
		case start >= 0:
			b.WriteString(caser.String(name[start:i]))
			start = -1
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	if start >= 0 {
		b.WriteString(caser.String(name[start:]))
	}
	return b.String()
}

// NewActor builds the per-request actor from a directory handle
func NewActor(handle string) models.Actor {
	identity := strings.ToLower(strings.TrimSpace(handle))
	return models.Actor{
		Identity:    identity,
		DisplayName: Salutation(identity),
	}
}
