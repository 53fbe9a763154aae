package site

import (
	"regexp"
	"strings"

	"github.com/greenpitch/greenpitch/internal/models"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Any mix of digits, spaces, hyphens, plus signs and parentheses passes,
	// including a lone "+".
	phonePattern = regexp.MustCompile(`^[0-9\s\-\+\(\)]+$`)
)

// Rule names a failed validation rule.
type Rule string

const (
	RuleNone     Rule = ""
	RuleRequired Rule = "required"
	RuleEmail    Rule = "email"
	RulePhone    Rule = "phone"
)

// Field is the validation input of one form control.
type Field struct {
	Type     string // input type: text, email, tel, ...
	Required bool
	Value    string
}

// Check applies the rules in priority order: required-and-empty, email
// shape, phone shape. It returns the first rule that fails.
func Check(f Field) Rule {
	value := strings.TrimSpace(f.Value)
	switch {
	case f.Required && value == "":
		return RuleRequired
	case f.Type == "email" && value != "":
		if !emailPattern.MatchString(value) {
			return RuleEmail
		}
	case f.Type == "tel" && value != "":
		if !phonePattern.MatchString(value) {
			return RulePhone
		}
	}
	return RuleNone
}

// Message returns the localized error text of a failed rule.
func (r Rule) Message(lang models.Lang) string {
	msgs := MessagesFor(lang)
	switch r {
	case RuleRequired:
		return msgs.Required
	case RuleEmail:
		return msgs.InvalidEmail
	case RulePhone:
		return msgs.InvalidPhone
	default:
		return ""
	}
}
