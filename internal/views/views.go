// Package views holds the templ components the server renders.
package views

import (
	"github.com/a-h/templ"
)

//go:generate templ generate

// Document renders a visitor's page as it currently stands.
func Document(html string) templ.Component {
	return templ.Raw(html)
}

// ErrorPageProps feeds ErrorPage
type ErrorPageProps struct {
	Lang         string
	Theme        string
	ErrorTitle   string
	ErrorMessage string
	BackLink     string
	BackText     string
}

// ErrorPage is the standalone page shown for HTTP errors.
func ErrorPage(props ErrorPageProps) templ.Component {
	if props.Lang == "" {
		props.Lang = "fr"
	}
	if props.Theme == "" {
		props.Theme = "dark"
	}
	if props.BackLink == "" {
		props.BackLink = "/"
	}
	if props.BackText == "" {
		props.BackText = "Green Pitch"
	}
	return errorPage(props)
}
