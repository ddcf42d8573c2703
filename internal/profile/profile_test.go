package profile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProfile_ValidateDefaults(t *testing.T) {
	p := &Profile{}
	require.NoError(t, p.Validate())

	require.Equal(t, "dev", p.Mode)
	require.Equal(t, 8230, p.Port)
	require.Equal(t, 300, p.DoubleTapWindowMs)
	require.Equal(t, 1024, p.TokenCacheSize)
	require.Equal(t, int64(8), p.MaxConcurrentTokenize)
	require.Equal(t, float64(10), p.RateLimitRPS)
	require.Equal(t, 20, p.RateLimitBurst)
	require.True(t, p.IsDev())
}

func TestProfile_ValidateInvalidMode(t *testing.T) {
	p := &Profile{Mode: "demo"}
	require.NoError(t, p.Validate())
	require.Equal(t, "dev", p.Mode)
}

func TestProfile_ValidateInvalidPort(t *testing.T) {
	p := &Profile{Port: 99999}
	require.Error(t, p.Validate())
}

func TestProfile_FromEnv(t *testing.T) {
	t.Setenv("KUMOTAN_MODE", "prod")
	t.Setenv("KUMOTAN_PORT", "9000")
	t.Setenv("KUMOTAN_DOUBLE_TAP_WINDOW_MS", "450")
	t.Setenv("KUMOTAN_MORPH_ENABLED", "true")

	p := &Profile{}
	p.FromEnv()
	require.NoError(t, p.Validate())

	require.Equal(t, "prod", p.Mode)
	require.Equal(t, 9000, p.Port)
	require.Equal(t, 450, p.DoubleTapWindowMs)
	require.True(t, p.MorphEnabled)
	require.False(t, p.IsDev())
}

func TestProfile_FromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("KUMOTAN_PORT", "not-a-number")

	p := &Profile{Port: 8230}
	p.FromEnv()
	require.Equal(t, 8230, p.Port)
}
