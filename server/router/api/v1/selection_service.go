package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kumotan/kumotan/plugin/segmenter"
	"github.com/kumotan/kumotan/server/service/selection"
)

type createSessionRequest struct {
	PostID string            `json:"postId"`
	Text   string            `json:"text"`
	Facets []segmenter.Facet `json:"facets"`
}

type createSessionResponse struct {
	SessionID string            `json:"sessionId"`
	Tokens    []segmenter.Token `json:"tokens"`
}

// CreateSelectionSession tokenizes the post and opens a selection session
// over the resulting token stream.
func (s *APIV1Service) CreateSelectionSession(c echo.Context) error {
	request := &createSessionRequest{}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed session request").SetInternal(err)
	}

	tokens, err := s.PostService.Tokenize(c.Request().Context(), request.Text, request.Facets)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to tokenize post").SetInternal(err)
	}
	sentences := s.PostService.Sentences(request.Text)
	session := s.Sessions.Create(request.PostID, request.Text, tokens, sentences)

	if tokens == nil {
		tokens = []segmenter.Token{}
	}
	return c.JSON(http.StatusOK, &createSessionResponse{
		SessionID: session.ID,
		Tokens:    tokens,
	})
}

// HandleSelectionEvent applies one gesture event to a session and returns
// the resolved outcome.
func (s *APIV1Service) HandleSelectionEvent(c echo.Context) error {
	session, err := s.Sessions.Get(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "selection session not found").SetInternal(err)
	}

	event := &selection.Event{}
	if err := c.Bind(event); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed selection event").SetInternal(err)
	}

	outcome := session.Handle(*event)
	return c.JSON(http.StatusOK, outcome)
}

// DeleteSelectionSession clears a session, canceling any pending
// double-tap timer.
func (s *APIV1Service) DeleteSelectionSession(c echo.Context) error {
	s.Sessions.Delete(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}
