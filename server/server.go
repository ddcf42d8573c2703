// Package server wires the tokenizer, post service and selection sessions
// into the HTTP serving surface.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/kumotan/kumotan/internal/profile"
	"github.com/kumotan/kumotan/plugin/morph"
	"github.com/kumotan/kumotan/plugin/segmenter"
	"github.com/kumotan/kumotan/server/middleware"
	apiv1 "github.com/kumotan/kumotan/server/router/api/v1"
	"github.com/kumotan/kumotan/server/service/post"
	"github.com/kumotan/kumotan/server/service/selection"
)

type Server struct {
	Profile *profile.Profile

	echoServer *echo.Echo
	logger     *slog.Logger
}

// NewServer assembles the serving stack from the profile.
func NewServer(ctx context.Context, profile *profile.Profile, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tokenizer, err := buildTokenizer(profile)
	if err != nil {
		return nil, err
	}
	postService, err := post.NewService(tokenizer, profile.TokenCacheSize, profile.MaxConcurrentTokenize, logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create post service")
	}
	sessions := selection.NewManager(time.Duration(profile.DoubleTapWindowMs)*time.Millisecond, nil)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLoggerMiddleware(logger))
	e.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter(profile.RateLimitRPS, profile.RateLimitBurst)))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": profile.Version})
	})

	apiv1.NewAPIV1Service(profile, postService, sessions, logger).RegisterRoutes(e)

	return &Server{
		Profile:    profile,
		echoServer: e,
		logger:     logger,
	}, nil
}

// buildTokenizer wires the Japanese splitter per profile: the morphological
// one when enabled, otherwise the script-run fallback.
func buildTokenizer(profile *profile.Profile) (*segmenter.Tokenizer, error) {
	if !profile.MorphEnabled {
		return segmenter.NewTokenizer(), nil
	}
	policy := morph.DefaultPolicy()
	if profile.MorphPolicyPath != "" {
		loaded, err := morph.LoadPolicy(profile.MorphPolicyPath)
		if err != nil {
			return nil, err
		}
		policy = loaded
	}
	splitter, err := morph.NewSplitter(policy)
	if err != nil {
		return nil, err
	}
	return segmenter.NewTokenizer(segmenter.WithJapaneseSplitter(splitter)), nil
}

// Start runs the HTTP server until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	s.logger.Info("server started", slog.String("address", address), slog.String("mode", s.Profile.Mode))

	errCh := make(chan error, 1)
	go func() {
		if err := s.echoServer.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "server failed")
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s.echoServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "failed to shut down server")
	}
	s.logger.Info("server stopped")
	return nil
}

// Echo exposes the router, mainly for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echoServer
}
