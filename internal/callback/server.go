package callback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"gengo-go/sdk/gengo"
)

// Event is one decoded callback. Exactly one of Job or Comment is set.
type Event struct {
	Job     *gengo.Job
	JobID   *int
	Comment *gengo.Comment
}

type Options struct {
	Addr            string
	Path            string
	ShutdownTimeout time.Duration
}

type Server struct {
	opts    Options
	logger  zerolog.Logger
	onEvent func(Event)
	e       *echo.Echo
}

const maxBodyBytes = 1 << 20

func NewServer(logger zerolog.Logger, opts Options, onEvent func(Event)) *Server {
	if strings.TrimSpace(opts.Addr) == "" {
		opts.Addr = "127.0.0.1:8787"
	}
	if !strings.HasPrefix(opts.Path, "/") {
		opts.Path = "/" + opts.Path
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	if onEvent == nil {
		onEvent = func(Event) {}
	}
	s := &Server{opts: opts, logger: logger, onEvent: onEvent}
	s.e = s.routes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.e }

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := s.logger.Info()
			if v.Error != nil {
				ev = s.logger.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("callback request")
			return nil
		},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.POST(s.opts.Path, s.handleCallback)
	return e
}

// handleCallback accepts the form fields "job" or "comment" holding JSON, or
// a raw JSON job body.
func (s *Server) handleCallback(c echo.Context) error {
	ev, err := decodeEvent(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.onEvent(ev)
	return c.String(http.StatusOK, "ok")
}

func decodeEvent(c echo.Context) (Event, error) {
	req := c.Request()
	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		b, err := io.ReadAll(io.LimitReader(req.Body, maxBodyBytes))
		if err != nil {
			return Event{}, err
		}
		j, err := gengo.ParseJob(b)
		if err != nil {
			return Event{}, err
		}
		return Event{Job: &j, JobID: j.ID}, nil
	}
	if raw := c.FormValue("job"); raw != "" {
		j, err := gengo.ParseJob([]byte(raw))
		if err != nil {
			return Event{}, err
		}
		return Event{Job: &j, JobID: j.ID}, nil
	}
	if raw := c.FormValue("comment"); raw != "" {
		id, cm, err := gengo.ParseComment([]byte(raw))
		if err != nil {
			return Event{}, err
		}
		return Event{JobID: id, Comment: &cm}, nil
	}
	return Event{}, fmt.Errorf("callback carries neither job nor comment")
}

// Start serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.e,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if err := s.e.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("callback server shutdown failed")
		}
	}()

	s.logger.Info().Str("addr", s.opts.Addr).Str("path", s.opts.Path).Msg("callback server started")
	if err := s.e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start callback server: %w", err)
	}
	s.logger.Info().Msg("callback server stopped")
	return nil
}
