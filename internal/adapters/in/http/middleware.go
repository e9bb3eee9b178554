package http

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/logging"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const principalKey = "operator.principal"

var errBearerMissing = errs.NewAuthorizationError("missing bearer token")

// OperatorAuth admits requests whose bearer token the gateway accepts and
// stores the principal for the handler.
func OperatorAuth(gateway ports.AdminGateway) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer realm="storefront"`)
				return errBearerMissing
			}

			principal, err := gateway.Authorize(c.Request().Context(), strings.TrimSpace(token))
			if err != nil {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer error="invalid_token"`)
				return err
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

func principalFrom(c echo.Context) ports.Principal {
	p, _ := c.Get(principalKey).(ports.Principal)
	return p
}

// Metrics holds the HTTP and business collectors served on /metrics.
type Metrics struct {
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	checkoutsOK   prometheus.Counter
	statusChanges *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		checkoutsOK: factory.NewCounter(prometheus.CounterOpts{
			Name: "storefront_checkouts_succeeded_total",
			Help: "Successful checkout responses, idempotent replays included.",
		}),
		statusChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_order_status_changes_total",
			Help: "Accepted order status changes by target status.",
		}, []string{"status"}),
	}
}

func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			status := c.Response().Status
			if err != nil {
				status, _ = toHTTPError(err)
			}

			m.requests.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			m.latency.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

func (m *Metrics) checkoutSucceeded() {
	if m != nil {
		m.checkoutsOK.Inc()
	}
}

func (m *Metrics) statusChanged(status string) {
	if m != nil {
		m.statusChanges.WithLabelValues(status).Inc()
	}
}

// RequestLogger logs one line per request and attaches a request-scoped
// logger carrying the request id to the context.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logRequest := middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= 500 {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		withScopedLogger := func(c echo.Context) error {
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			ctx := logging.WithCtx(c.Request().Context(), logger.With("request_id", requestID))
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
		return logRequest(withScopedLogger)
	}
}
