package models

// Theme represents the colour theme of the site
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// DefaultTheme is applied when nothing is persisted
const DefaultTheme = ThemeDark

// ParseTheme returns the theme named by s, or the default for unknown values
func ParseTheme(s string) Theme {
	switch Theme(s) {
	case ThemeLight:
		return ThemeLight
	case ThemeDark:
		return ThemeDark
	default:
		return DefaultTheme
	}
}

// Toggle returns the opposite theme
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
