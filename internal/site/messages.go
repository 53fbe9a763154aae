package site

import "github.com/greenpitch/greenpitch/internal/models"

// Messages holds the wording the controllers render themselves.
type Messages struct {
	Required        string
	InvalidEmail    string
	InvalidPhone    string
	Acknowledgement string
	OpenMenu        string
}

var messagesFR = Messages{
	Required:        "Ce champ est obligatoire",
	InvalidEmail:    "Email invalide",
	InvalidPhone:    "Numéro invalide",
	Acknowledgement: "Merci pour votre message ! Nous vous contacterons bientôt.",
	OpenMenu:        "Ouvrir le menu de navigation",
}

var messagesEN = Messages{
	Required:        "This field is required",
	InvalidEmail:    "Invalid email",
	InvalidPhone:    "Invalid number",
	Acknowledgement: "Thank you for your message! We will contact you soon.",
	OpenMenu:        "Open navigation menu",
}

// MessagesFor returns French wording for fr and English for anything else.
func MessagesFor(lang models.Lang) Messages {
	if lang.IsFrench() {
		return messagesFR
	}
	return messagesEN
}

// Theme toggle labels, keyed by the theme currently applied.
var themeLabels = map[models.Theme]map[models.Lang]string{
	models.ThemeDark:  {models.LangFR: "Mode Clair", models.LangEN: "Light Mode"},
	models.ThemeLight: {models.LangFR: "Mode Sombre", models.LangEN: "Dark Mode"},
}

var themeIcons = map[models.Theme]string{
	models.ThemeDark:  "fa-solid fa-sun",
	models.ThemeLight: "fa-solid fa-moon",
}
