package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kumotan/kumotan/internal/profile"
)

func TestNewServer_Healthz(t *testing.T) {
	testProfile := &profile.Profile{Mode: "dev", Version: "test"}
	require.NoError(t, testProfile.Validate())

	s, err := NewServer(context.Background(), testProfile, nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "ok")
}

func TestNewServer_BadMorphPolicy(t *testing.T) {
	testProfile := &profile.Profile{Mode: "dev", MorphEnabled: true, MorphPolicyPath: "/nonexistent/policy.yaml"}
	require.NoError(t, testProfile.Validate())

	_, err := NewServer(context.Background(), testProfile, nil)
	require.Error(t, err)
}
