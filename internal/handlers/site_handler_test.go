package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenpitch/greenpitch/internal/dom"
	"github.com/greenpitch/greenpitch/internal/logging"
	"github.com/greenpitch/greenpitch/internal/middleware"
	"github.com/greenpitch/greenpitch/internal/services"
	"github.com/greenpitch/greenpitch/internal/site"
)

type testServer struct {
	e        *echo.Echo
	sessions *site.Manager
	store    *services.MemoryStore
	cookie   *http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	doc, err := services.LoadDocument("")
	require.NoError(t, err)
	store := services.NewMemoryStore()
	sessions := site.NewManager(doc, site.ManagerOptions{
		Store:  store,
		Logger: logging.Discard(),
	})
	e := NewRouter(RouterOptions{Sessions: sessions, Logger: logging.Discard()})
	return &testServer{e: e, sessions: sessions, store: store}
}

func (s *testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.VisitorCookie {
			s.cookie = c
		}
	}
	return rec
}

func (s *testServer) get(t *testing.T, path string) *httptest.ResponseRecorder {
	return s.do(t, httptest.NewRequest(http.MethodGet, path, nil))
}

func (s *testServer) event(t *testing.T, typ string, payload any) (*httptest.ResponseRecorder, EventResponse) {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	body, err := json.Marshal(EventRequest{Type: typ, Payload: raw})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := s.do(t, req)
	var resp EventResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(rec.Body.String())
	require.NoError(t, err)
	return doc
}

func TestIndexIssuesVisitorAndRendersDocument(t *testing.T) {
	s := newTestServer(t)

	rec := s.get(t, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, s.cookie)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	doc := parseBody(t, rec)
	assert.True(t, doc.GetElementByID("page-accueil").HasClass("active"))
	assert.Equal(t, "0", attr(doc, "card-football", "tabindex"), "document is booted")
	assert.Equal(t, 1, s.sessions.Len())
}

func TestPageRoute(t *testing.T) {
	s := newTestServer(t)

	doc := parseBody(t, s.get(t, "/page/contact"))
	assert.True(t, doc.GetElementByID("page-contact").HasClass("active"))
	assert.False(t, doc.GetElementByID("page-accueil").HasClass("active"))

	rec := s.get(t, "/page/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	doc = parseBody(t, s.get(t, "/"))
	assert.True(t, doc.GetElementByID("page-contact").HasClass("active"), "state survives between requests")
}

func TestSportRoutes(t *testing.T) {
	s := newTestServer(t)

	doc := parseBody(t, s.get(t, "/sports/basketball"))
	assert.True(t, doc.GetElementByID("page-sports").HasClass("active"))
	assert.Equal(t, "block", doc.GetElementByID("sport-basketball").Style("display"))
	assert.Equal(t, "none", doc.GetElementByID("sports-overview").Style("display"))

	doc = parseBody(t, s.get(t, "/sports"))
	assert.Equal(t, "grid", doc.GetElementByID("sports-overview").Style("display"))
	assert.Equal(t, "none", doc.GetElementByID("sport-basketball").Style("display"))

	assert.Equal(t, http.StatusNotFound, s.get(t, "/sports/curling").Code)
}

func TestThemeToggleRedirectsBack(t *testing.T) {
	s := newTestServer(t)
	s.get(t, "/")

	req := httptest.NewRequest(http.MethodPost, "/theme/toggle", nil)
	req.Header.Set("Referer", "http://example.com/page/sports")
	rec := s.do(t, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/page/sports", rec.Header().Get(echo.HeaderLocation))

	doc := parseBody(t, s.get(t, "/"))
	theme, _ := doc.DocumentElement().Attr("data-theme")
	assert.Equal(t, "light", theme)
	v, ok, _ := s.store.Get(context.Background(), s.cookie.Value, "theme")
	assert.True(t, ok)
	assert.Equal(t, "light", v)
}

func TestRedirectBackIgnoresForeignReferer(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/lang/en", nil)
	req.Header.Set("Referer", "https://evil.test/phish")
	rec := s.do(t, req)

	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}

func TestSwitchLangRoute(t *testing.T) {
	s := newTestServer(t)

	s.do(t, httptest.NewRequest(http.MethodPost, "/lang/en", nil))
	doc := parseBody(t, s.get(t, "/"))

	lang, _ := doc.DocumentElement().Attr("lang")
	assert.Equal(t, "en", lang)
	assert.Equal(t, "Welcome to Green Pitch", doc.GetElementByID("accueil-title").Text())
}

func TestContactFormPost(t *testing.T) {
	s := newTestServer(t)

	form := url.Values{"name": {""}, "email": {"bad"}}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := s.do(t, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	doc := parseBody(t, rec)
	assert.True(t, doc.GetElementByID("page-contact").HasClass("active"))
	assert.Equal(t, "Email invalide", doc.GetElementByID("error-email").Text())

	form = url.Values{
		"name":    {"Ana"},
		"email":   {"ana@example.org"},
		"subject": {"club"},
		"message": {"Bonjour"},
	}
	req = httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.Header.Set("HX-Request", "true")
	rec = s.do(t, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Merci pour votre message")
	assert.NotContains(t, rec.Body.String(), "<html")
}

func TestEventsEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.event(t, site.EventPageRequested, map[string]string{"name": "sports"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Outcome.Handled)
	assert.Equal(t, "sports", resp.State.ActivePage)
	assert.Equal(t, "#main-content", resp.State.Focus)
	assert.Equal(t, "#main-content", resp.Outcome.Focus)
	assert.Contains(t, resp.HTML, `id="page-sports" class="page-content active"`)

	rec, resp = s.event(t, site.EventThemeToggled, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp.Outcome.Focus)
	assert.NotContains(t, resp.HTML, "data-focus")

	rec, resp = s.event(t, site.EventKeyPressed, map[string]any{"key": "c", "alt": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Outcome.PreventDefault)
	assert.Equal(t, "contact", resp.State.ActivePage)

	rec, resp = s.event(t, site.EventFormSubmitted, map[string]any{"values": map[string]string{}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resp.Outcome.Valid)
	assert.False(t, *resp.Outcome.Valid)
}

func TestEventsEndpointRejectsBadInput(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.event(t, "teleport", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Unknown event"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader("{"))
	rec = s.do(t, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/events",
		strings.NewReader(`{"type":"page_requested","payload":{"name":7}}`))
	rec = s.do(t, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStateEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.event(t, site.EventThemeToggled, nil)

	rec := s.get(t, "/api/state")
	require.Equal(t, http.StatusOK, rec.Code)
	var state site.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "light", string(state.Theme))
	assert.Equal(t, "fr", string(state.Lang))
}

func TestHealthzAndMetrics(t *testing.T) {
	s := newTestServer(t)
	s.get(t, "/")

	rec := s.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","sessions":1}`, rec.Body.String())

	rec = s.get(t, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "greenpitch_http_request_duration_seconds")
	assert.Contains(t, rec.Body.String(), "greenpitch_sessions 1")
}

func TestStaticFiles(t *testing.T) {
	s := newTestServer(t)
	rec := s.get(t, "/static/site.js")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/events")
	for _, ev := range []string{site.EventFieldInput, site.EventFieldFocused, site.EventUserActive,
		site.EventAnchorFollowed, site.EventPerformanceObserved} {
		assert.Contains(t, rec.Body.String(), "'"+ev+"'")
	}
}

func TestLiveStreamForwardsAnnouncements(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.e)
	defer srv.Close()

	// Issue the visitor cookie first, then reuse it for the websocket.
	s.get(t, "/")
	view := s.sessions.View(context.Background(), s.cookie.Value)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	header := http.Header{}
	header.Add("Cookie", s.cookie.Name+"="+s.cookie.Value)
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/live", &websocket.DialOptions{
		HTTPHeader: header,
	})
	require.NoError(t, err)
	defer conn.CloseNow()

	// The subscription is registered once the handler runs; retry until seen.
	got := make(chan site.Announcement, 1)
	go func() {
		var a site.Announcement
		if err := wsjson.Read(ctx, conn, &a); err == nil {
			got <- a
		}
	}()
	for {
		view.Announce("Bonjour", site.PriorityPolite)
		select {
		case a := <-got:
			assert.Equal(t, "Bonjour", a.Message)
			assert.Equal(t, site.PriorityPolite, a.Priority)
			return
		case <-time.After(50 * time.Millisecond):
		case <-ctx.Done():
			t.Fatal("no announcement received")
		}
	}
}

func attr(doc *dom.Document, id, name string) string {
	v, _ := doc.GetElementByID(id).Attr(name)
	return v
}
