package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/greenpitch/greenpitch/internal/views"
)

// CustomErrorHandler creates a custom error handler for Echo
func CustomErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		errorTitle := "Internal Server Error"
		errorMessage := ""

		// Check if it's an Echo HTTPError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code

			// Try to extract message from HTTPError
			if msg, ok := he.Message.(string); ok && msg != "" {
				errorMessage = msg
			}

			// Set title and default message if no custom message provided
			switch code {
			case http.StatusNotFound:
				errorTitle = "Page Not Found"
				if errorMessage == "" {
					errorMessage = "The page you're looking for doesn't exist."
				}
			case http.StatusBadRequest:
				errorTitle = "Bad Request"
				if errorMessage == "" {
					errorMessage = "The request could not be processed."
				}
			case http.StatusMethodNotAllowed:
				errorTitle = "Method Not Allowed"
				if errorMessage == "" {
					errorMessage = "This address does not accept that request."
				}
			default:
				if code < http.StatusInternalServerError {
					errorTitle = http.StatusText(code)
				}
				if errorMessage == "" || code >= http.StatusInternalServerError {
					errorMessage = "Something went wrong. Please try again later."
				}
			}
		} else {
			// Non-HTTPError, use default
			errorMessage = "Something went wrong. Please try again later."
		}

		if code >= http.StatusInternalServerError {
			log.Error("request failed", "path", c.Request().URL.Path, "status", code, "error", err)
		} else {
			log.Debug("request rejected", "path", c.Request().URL.Path, "status", code, "error", err)
		}

		// API and HEAD callers get JSON or nothing
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		if strings.HasPrefix(c.Request().URL.Path, "/api/") {
			_ = c.JSON(code, map[string]string{"error": errorMessage})
			return
		}

		props := views.ErrorPageProps{
			ErrorTitle:   errorTitle,
			ErrorMessage: errorMessage,
		}

		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		c.Response().WriteHeader(code)
		if renderErr := views.ErrorPage(props).Render(c.Request().Context(), c.Response()); renderErr != nil {
			// Fallback to plain text if template fails
			log.Error("failed to render error page", "error", fmt.Errorf("render: %w", renderErr))
			_ = c.String(code, errorMessage)
		}
	}
}
