package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/labstack/echo/v4"

	"github.com/greenpitch/greenpitch/internal/logging"
	"github.com/greenpitch/greenpitch/internal/middleware"
	"github.com/greenpitch/greenpitch/internal/site"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// LiveHandler streams a visitor's live-region announcements over a websocket
type LiveHandler struct {
	sessions       *site.Manager
	originPatterns []string
	log            *slog.Logger
}

// NewLiveHandler accepts same-origin connections plus any origin matching
// originPatterns.
func NewLiveHandler(sessions *site.Manager, originPatterns []string, log *slog.Logger) *LiveHandler {
	return &LiveHandler{sessions: sessions, originPatterns: originPatterns, log: logging.Component(log, "live")}
}

// Stream upgrades the request and forwards announcements until either side
// goes away
func (h *LiveHandler) Stream(c echo.Context) error {
	visitorID := middleware.VisitorID(c)
	view := h.sessions.View(c.Request().Context(), visitorID)

	conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		// Accept has already written the response
		h.log.Debug("websocket upgrade failed", "error", err)
		return nil
	}
	defer conn.CloseNow()

	announcements, cancel := view.Live().Subscribe()
	defer cancel()

	// Nothing is expected from the client; CloseRead handles control frames
	// and cancels ctx once the peer closes.
	ctx := conn.CloseRead(context.Background())

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	h.log.Debug("live stream opened", "visitor", visitorID)
	for {
		select {
		case <-ctx.Done():
			return nil
		case a, ok := <-announcements:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "session ended")
				return nil
			}
			writeCtx, cancelWrite := context.WithTimeout(ctx, writeWait)
			err := wsjson.Write(writeCtx, conn, a)
			cancelWrite()
			if err != nil {
				h.log.Debug("live write failed", "error", err)
				return nil
			}
		case <-ticker.C:
			pingCtx, cancelPing := context.WithTimeout(ctx, writeWait)
			err := conn.Ping(pingCtx)
			cancelPing()
			if err != nil {
				return nil
			}
		}
	}
}
