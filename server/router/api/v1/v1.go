// Package v1 exposes the tokenization and selection services over HTTP.
package v1

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/kumotan/kumotan/internal/profile"
	"github.com/kumotan/kumotan/server/service/post"
	"github.com/kumotan/kumotan/server/service/selection"
)

type APIV1Service struct {
	Profile     *profile.Profile
	PostService *post.Service
	Sessions    *selection.Manager

	logger *slog.Logger
}

func NewAPIV1Service(profile *profile.Profile, postService *post.Service, sessions *selection.Manager, logger *slog.Logger) *APIV1Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIV1Service{
		Profile:     profile,
		PostService: postService,
		Sessions:    sessions,
		logger:      logger,
	}
}

// RegisterRoutes mounts the v1 API on the echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.POST("/posts/tokenize", s.TokenizePost)
	g.POST("/selection/sessions", s.CreateSelectionSession)
	g.POST("/selection/sessions/:id/events", s.HandleSelectionEvent)
	g.DELETE("/selection/sessions/:id", s.DeleteSelectionSession)
}
