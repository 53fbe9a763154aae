package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// VisitorCookie carries the visitor id between requests
	VisitorCookie = "gp_visitor"
	// VisitorKey is the echo context key of the visitor id
	VisitorKey = "visitorID"

	visitorCookieMaxAge = 365 * 24 * time.Hour
)

// RequireVisitor makes sure every request carries a visitor id, issuing a
// fresh one when the cookie is missing or malformed.
func RequireVisitor(secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var id string
			if cookie, err := c.Cookie(VisitorCookie); err == nil {
				if parsed, err := uuid.Parse(cookie.Value); err == nil {
					id = parsed.String()
				}
			}

			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     VisitorCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(visitorCookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(VisitorKey, id)
			return next(c)
		}
	}
}

// VisitorID returns the id set by RequireVisitor
func VisitorID(c echo.Context) string {
	if id, ok := c.Get(VisitorKey).(string); ok {
		return id
	}
	return ""
}
