package models

import "strings"

// Lang is a display language code. Values outside the supported set are
// accepted; they simply match no translation payload.
type Lang string

const (
	LangFR Lang = "fr"
	LangEN Lang = "en"
)

// DefaultLang is the language used when nothing is persisted
const DefaultLang = LangFR

// SupportedLangs lists the languages the site ships payloads for
var SupportedLangs = []Lang{LangFR, LangEN}

// ParseLang normalises a language code, keeping unknown codes as-is
func ParseLang(s string) Lang {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultLang
	}
	return Lang(s)
}

// IsFrench reports whether French wording applies; every other code reads English
func (l Lang) IsFrench() bool {
	return l == LangFR
}
