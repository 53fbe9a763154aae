package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/greenpitch/greenpitch/internal/site"
)

// Metrics holds the collectors the server exports
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	Events          *prometheus.CounterVec
	Sessions        prometheus.GaugeFunc
}

// NewMetrics registers the collectors on reg. sessions reports the number of
// live visitor views.
func NewMetrics(reg prometheus.Registerer, sessions func() int) *Metrics {
	m := &Metrics{
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "greenpitch",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "greenpitch",
			Name:      "events_total",
			Help:      "Client events dispatched, by name and result.",
		}, []string{"event", "result"}),
		Sessions: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "greenpitch",
			Name:      "sessions",
			Help:      "Visitor views currently held in memory.",
		}, func() float64 { return float64(sessions()) }),
	}
	reg.MustRegister(m.RequestDuration, m.Events, m.Sessions)
	return m
}

// Observe records request durations and warns about slow requests.
func (m *Metrics) Observe(log *slog.Logger, slow time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			elapsed := time.Since(start)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.RequestDuration.
				WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).
				Observe(elapsed.Seconds())

			site.WarnIfSlow(log, site.PerformanceEntry{
				Name:     c.Request().Method + " " + route,
				Duration: elapsed,
			}, slow)
			return err
		}
	}
}
