package handlers

import (
	"encoding/json"

	"github.com/greenpitch/greenpitch/internal/site"
)

// EventRequest is the body of POST /api/events
type EventRequest struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// EventResponse is what the client applies after an event: the outcome,
// the new state and the re-rendered document.
type EventResponse struct {
	Outcome site.Outcome `json:"outcome"`
	State   site.State   `json:"state"`
	HTML    string       `json:"html"`
}

// ContactFields are the contact form inputs posted without scripts
var ContactFields = []string{"name", "email", "phone", "subject", "message"}
