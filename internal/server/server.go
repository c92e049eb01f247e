// Package server exposes a search session over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/wizenheimer/localsearch"
	"github.com/wizenheimer/localsearch/internal/config"
)

// maxPageBytes bounds the body accepted by the highlight endpoint.
const maxPageBytes = 8 << 20

// Server is the HTTP query service.
type Server struct {
	echo    *echo.Echo
	session *localsearch.Session
	metrics *Metrics
	limiter *rate.Limiter
	addr    string
}

// New wires routes and middleware around session.
func New(cfg config.ServerConfig, session *localsearch.Session) *Server {
	s := &Server{
		echo:    echo.New(),
		session: session,
		metrics: NewMetrics(session),
		addr:    cfg.Addr,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.Any("error", v.Error))
			}
			slog.Debug("request", attrs...)
			return nil
		},
	}))

	e.GET("/healthz", s.healthz)
	e.GET("/readyz", s.readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))

	api := e.Group("/api")
	if s.limiter != nil {
		api.Use(s.rateLimit)
	}
	api.GET("/search", s.search)
	api.POST("/highlight", s.highlight)

	return s
}

// Handler returns the underlying HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Run serves until ctx is cancelled, then shuts down gracefully. With preload
// enabled the index fetch starts immediately; otherwise the first search
// request triggers it.
func (s *Server) Run(ctx context.Context) error {
	if s.session.Config().Preload {
		s.session.FetchData(context.WithoutCancel(ctx))
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("search service listening", slog.String("addr", s.addr))
		errCh <- s.echo.Start(s.addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.limiter.Allow() {
			s.metrics.RateLimited.Inc()
			return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
		}
		return next(c)
	}
}

func (s *Server) healthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (s *Server) readyz(c echo.Context) error {
	state := s.session.State()
	if state != localsearch.Ready {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"state": state.String()})
	}
	return c.JSON(http.StatusOK, map[string]string{"state": state.String()})
}

func (s *Server) search(c echo.Context) error {
	if s.session.State() == localsearch.Unloaded {
		s.session.FetchData(context.WithoutCancel(c.Request().Context()))
	}

	start := time.Now()
	res := s.session.Query(c.QueryParam("q"))
	s.metrics.QueryDuration.Observe(time.Since(start).Seconds())
	s.metrics.Queries.WithLabelValues(outcomeOf(res)).Inc()
	if !res.Pending && !res.Cleared {
		s.metrics.ResultsPerHit.Observe(float64(len(res.Items)))
	}

	return c.JSON(http.StatusOK, res.View())
}

func (s *Server) highlight(c echo.Context) error {
	words := localsearch.WordsFromURL(c.Request().URL)
	if len(words) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "missing highlight parameter")
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxPageBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "read body").SetInternal(err)
	}

	page, marks, err := localsearch.HighlightPage(string(body), words, s.session.Config().Unescape)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "parse html").SetInternal(err)
	}
	s.metrics.HighlightMarks.Add(float64(marks))

	c.Response().Header().Set("X-Highlight-Marks", strconv.Itoa(marks))
	return c.HTML(http.StatusOK, page)
}

// errorHandler renders every error as {"error": "..."} and logs server faults.
func errorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
	}
	if code >= http.StatusInternalServerError {
		req := c.Request()
		slog.Error("request failed",
			slog.Int("status", code),
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Any("error", err))
	}
	if !c.Response().Committed {
		_ = c.JSON(code, map[string]string{"error": msg})
	}
}
