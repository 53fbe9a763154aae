package handlers

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/greenpitch/greenpitch/internal/logging"
	"github.com/greenpitch/greenpitch/internal/middleware"
	"github.com/greenpitch/greenpitch/internal/site"
	"github.com/greenpitch/greenpitch/web"
)

// RouterOptions wires the HTTP surface
type RouterOptions struct {
	Sessions       *site.Manager
	Logger         *slog.Logger
	Registry       *prometheus.Registry
	SecureCookies  bool
	OriginPatterns []string
	SlowThreshold  time.Duration
	RequestLog     bool
}

// NewRouter builds the echo instance serving the site
func NewRouter(opts RouterOptions) *echo.Echo {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.SlowThreshold <= 0 {
		opts.SlowThreshold = site.DefaultSlowThreshold
	}

	httpLog := logging.Component(log, "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.CustomErrorHandler(httpLog)

	metrics := middleware.NewMetrics(opts.Registry, opts.Sessions.Len)

	// Middleware
	if opts.RequestLog {
		e.Use(middleware.RequestLogger(httpLog))
	}
	e.Use(echomw.Recover())
	e.Use(metrics.Observe(httpLog, opts.SlowThreshold))

	// Static file serving
	e.StaticFS("/static", echo.MustSubFS(web.Files, "static"))
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))

	siteHandler := NewSiteHandler(opts.Sessions, metrics, log)
	liveHandler := NewLiveHandler(opts.Sessions, opts.OriginPatterns, log)

	e.GET("/healthz", siteHandler.Healthz)

	// Visitor routes
	visitor := e.Group("")
	visitor.Use(middleware.RequireVisitor(opts.SecureCookies))
	visitor.GET("/", siteHandler.Index)
	visitor.GET("/page/:name", siteHandler.Page)
	visitor.GET("/sports", siteHandler.Sports)
	visitor.GET("/sports/:name", siteHandler.SportDetail)
	visitor.POST("/theme/toggle", siteHandler.ToggleTheme)
	visitor.POST("/lang/:lang", siteHandler.SwitchLang)
	visitor.POST("/contact", siteHandler.Contact)
	visitor.POST("/api/events", siteHandler.Events)
	visitor.GET("/api/state", siteHandler.State)
	visitor.GET("/live", liveHandler.Stream)

	return e
}
