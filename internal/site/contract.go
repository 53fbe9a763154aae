package site

// Element ids the document must supply.
const (
	IDThemeIcon      = "theme-icon"
	IDThemeText      = "theme-text"
	IDMainContent    = "main-content"
	IDSportsOverview = "sports-overview"
	IDSportsTitle    = "sports-title"
	IDContactForm    = "contact-form"
	IDAnnouncer      = "aria-announcer"
)

// Id prefixes binding a name to an element.
const (
	PagePrefix  = "page-"
	SportPrefix = "sport-"
	ErrorPrefix = "error-"
)

// CSS class names.
const (
	ClassActive       = "active"
	ClassValid        = "valid"
	ClassInvalid      = "invalid"
	ClassLang         = "lang"
	ClassLangButton   = "lang-btn"
	ClassBurger       = "burger"
	ClassNavLinks     = "nav-links"
	ClassNavLink      = "nav-link"
	ClassPageContent  = "page-content"
	ClassSportDetail  = "sport-detail"
	ClassFormControl  = "form-control"
	ClassErrorMessage = "error-message"
	ClassCard         = "card"
	ClassTeamCard     = "team-card"
	ClassGameCard     = "game-card"
	ClassVideoBox     = "video-box"
)

// Attribute names.
const (
	AttrTheme        = "data-theme"
	AttrPage         = "data-page"
	AttrDeferredSrc  = "data-src"
	AttrFocus        = "data-focus"
	AttrAriaExpanded = "aria-expanded"
	AttrAriaPressed  = "aria-pressed"
	AttrAriaInvalid  = "aria-invalid"
	AttrAriaDescBy   = "aria-describedby"
	AttrAriaLabel    = "aria-label"
	AttrAriaLive     = "aria-live"
	AttrAriaCurrent  = "aria-current"
	AttrTabIndex     = "tabindex"
	AttrOnClick      = "onclick"
)

// payloadAttr returns the per-language payload attribute, e.g. data-fr.
func payloadAttr(lang string) string {
	return "data-" + lang
}
