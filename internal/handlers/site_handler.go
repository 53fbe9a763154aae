package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/greenpitch/greenpitch/internal/logging"
	"github.com/greenpitch/greenpitch/internal/middleware"
	"github.com/greenpitch/greenpitch/internal/models"
	"github.com/greenpitch/greenpitch/internal/site"
	"github.com/greenpitch/greenpitch/internal/views"
)

// maxEventBody bounds POST /api/events bodies
const maxEventBody = 64 << 10

type SiteHandler struct {
	sessions *site.Manager
	metrics  *middleware.Metrics
	log      *slog.Logger
}

// NewSiteHandler serves the visitor views held by sessions. metrics may be nil.
func NewSiteHandler(sessions *site.Manager, metrics *middleware.Metrics, log *slog.Logger) *SiteHandler {
	return &SiteHandler{sessions: sessions, metrics: metrics, log: logging.Component(log, "handlers")}
}

func (h *SiteHandler) view(c echo.Context) *site.View {
	return h.sessions.View(c.Request().Context(), middleware.VisitorID(c))
}

func (h *SiteHandler) render(c echo.Context, code int, v *site.View) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	c.Response().WriteHeader(code)
	return views.Document(v.HTML()).Render(c.Request().Context(), c.Response())
}

// Index renders the visitor's page as it stands
func (h *SiteHandler) Index(c echo.Context) error {
	return h.render(c, http.StatusOK, h.view(c))
}

// Page activates one page and renders
func (h *SiteHandler) Page(c echo.Context) error {
	v := h.view(c)
	name := c.Param("name")
	if !v.HasPage(name) {
		return echo.NewHTTPError(http.StatusNotFound, "Page not found")
	}
	v.ShowPage(name)
	return h.render(c, http.StatusOK, v)
}

// Sports opens the sports page on its overview
func (h *SiteHandler) Sports(c echo.Context) error {
	v := h.view(c)
	v.ShowPage("sports")
	v.ShowSportsOverview()
	return h.render(c, http.StatusOK, v)
}

// SportDetail opens the sports page on one sport
func (h *SiteHandler) SportDetail(c echo.Context) error {
	v := h.view(c)
	name := c.Param("name")
	if !v.HasSport(name) {
		return echo.NewHTTPError(http.StatusNotFound, "Sport not found")
	}
	v.ShowPage("sports")
	v.ShowSportDetail(name)
	return h.render(c, http.StatusOK, v)
}

// ToggleTheme flips the theme and sends the visitor back
func (h *SiteHandler) ToggleTheme(c echo.Context) error {
	h.view(c).ToggleTheme(c.Request().Context())
	return redirectBack(c)
}

// SwitchLang changes the language and sends the visitor back
func (h *SiteHandler) SwitchLang(c echo.Context) error {
	lang := models.ParseLang(c.Param("lang"))
	h.view(c).SwitchLang(c.Request().Context(), lang)
	return redirectBack(c)
}

// Contact handles the contact form posted without scripts. HTMX-style
// callers get the acknowledgement fragment alone.
func (h *SiteHandler) Contact(c echo.Context) error {
	values := make(map[string]string, len(ContactFields))
	for _, name := range ContactFields {
		values[name] = c.FormValue(name)
	}

	v := h.view(c)
	v.ShowPage("contact")
	record, out := v.SubmitForm(values)
	valid := out.Valid != nil && *out.Valid
	if valid {
		h.log.Info("contact form acknowledged", "fields", len(record))
	}
	h.countEvent(site.EventFormSubmitted, valid)

	if c.Request().Header.Get("HX-Request") == "true" {
		if !valid {
			return c.NoContent(http.StatusUnprocessableEntity)
		}
		return views.Acknowledgement(out.Acknowledgement).Render(c.Request().Context(), c.Response())
	}

	code := http.StatusOK
	if !valid {
		code = http.StatusUnprocessableEntity
	}
	return h.render(c, code, v)
}

// Events applies one client event and returns the new document
func (h *SiteHandler) Events(c echo.Context) error {
	var req EventRequest
	body := http.MaxBytesReader(c.Response(), c.Request().Body, maxEventBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid event body")
	}

	ev, err := site.DecodeEvent(req.Type, req.Payload)
	if err != nil {
		h.countEvent(req.Type, false)
		if errors.Is(err, site.ErrUnknownEvent) {
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown event")
		}
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid event payload")
	}

	v := h.view(c)
	out, err := v.Dispatch(c.Request().Context(), ev)
	if err != nil {
		h.countEvent(req.Type, false)
		return err
	}
	h.countEvent(req.Type, true)

	return c.JSON(http.StatusOK, EventResponse{
		Outcome: out,
		State:   v.State(),
		HTML:    v.HTML(),
	})
}

// State returns the visitor's state
func (h *SiteHandler) State(c echo.Context) error {
	return c.JSON(http.StatusOK, h.view(c).State())
}

// Healthz reports liveness
func (h *SiteHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": h.sessions.Len(),
	})
}

func (h *SiteHandler) countEvent(name string, ok bool) {
	if h.metrics == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	if _, known := site.DefaultRegistry.Get(name); !known {
		name = "unknown"
	}
	h.metrics.Events.WithLabelValues(name, result).Inc()
}

// redirectBack sends the visitor to the referring page of this site, or home
func redirectBack(c echo.Context) error {
	target := "/"
	if ref := c.Request().Referer(); ref != "" {
		if u, err := url.Parse(ref); err == nil && (u.Host == "" || u.Host == c.Request().Host) &&
			strings.HasPrefix(u.Path, "/") {
			target = u.RequestURI()
		}
	}
	return c.Redirect(http.StatusSeeOther, target)
}
