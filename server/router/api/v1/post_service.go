package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kumotan/kumotan/plugin/segmenter"
)

type tokenizePostRequest struct {
	PostID string            `json:"postId"`
	Text   string            `json:"text"`
	Facets []segmenter.Facet `json:"facets"`
}

type tokenizePostResponse struct {
	PostID    string            `json:"postId"`
	Tokens    []segmenter.Token `json:"tokens"`
	Sentences []string          `json:"sentences"`
}

// TokenizePost converts one post body into its ordered token stream plus
// the sentence list the selection machine needs.
func (s *APIV1Service) TokenizePost(c echo.Context) error {
	request := &tokenizePostRequest{}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed tokenize request").SetInternal(err)
	}

	tokens, err := s.PostService.Tokenize(c.Request().Context(), request.Text, request.Facets)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to tokenize post").SetInternal(err)
	}
	if tokens == nil {
		tokens = []segmenter.Token{}
	}
	sentences := s.PostService.Sentences(request.Text)
	if sentences == nil {
		sentences = []string{}
	}

	return c.JSON(http.StatusOK, &tokenizePostResponse{
		PostID:    request.PostID,
		Tokens:    tokens,
		Sentences: sentences,
	})
}
