package site

import "github.com/greenpitch/greenpitch/internal/models"

// State is the application state owned by a View.
type State struct {
	Theme           models.Theme `json:"theme"`
	Lang            models.Lang  `json:"lang"`
	ActivePage      string       `json:"active_page"`
	ActiveSport     string       `json:"active_sport,omitempty"` // empty while the overview shows
	MenuOpen        bool         `json:"menu_open"`
	Focus           string       `json:"focus,omitempty"`
	Scroll          Scroll       `json:"scroll"`
	Acknowledgement string       `json:"acknowledgement,omitempty"`
}

// Scroll is the last scroll request.
type Scroll struct {
	Target string `json:"target"` // "top" or an element id
	Smooth bool   `json:"smooth"`
	Seq    int    `json:"seq"`
}

// ScrollTop is the target of a scroll back to the top of the viewport.
const ScrollTop = "top"

// Outcome is what an event produced beyond the document mutation.
type Outcome struct {
	Handled         bool   `json:"handled"`
	PreventDefault  bool   `json:"prevent_default"`
	Valid           *bool  `json:"valid,omitempty"`
	Acknowledgement string `json:"acknowledgement,omitempty"`
	// Focus names the new focus landing point when the event moved focus,
	// and is empty otherwise.
	Focus string `json:"focus,omitempty"`
}
