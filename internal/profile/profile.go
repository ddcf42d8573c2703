package profile

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Version is the current version of server
	Version string

	// DoubleTapWindowMs is the tap/double-tap disambiguation window.
	DoubleTapWindowMs int
	// MorphEnabled wires the dictionary-backed Japanese splitter. When
	// false the script-run fallback is used.
	MorphEnabled bool
	// MorphPolicyPath optionally points to a YAML meaningfulness policy.
	MorphPolicyPath string
	// TokenCacheSize is the max number of memoized tokenizations.
	TokenCacheSize int
	// MaxConcurrentTokenize bounds concurrent morphological work.
	MaxConcurrentTokenize int64
	// RateLimitRPS and RateLimitBurst throttle API clients per IP.
	RateLimitRPS   float64
	RateLimitBurst int
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// FromEnv loads configuration from KUMOTAN_* environment variables.
func (p *Profile) FromEnv() {
	p.Mode = getEnvOrDefault("KUMOTAN_MODE", p.Mode)
	p.Addr = getEnvOrDefault("KUMOTAN_ADDR", p.Addr)
	p.Port = getIntEnv("KUMOTAN_PORT", p.Port)
	p.DoubleTapWindowMs = getIntEnv("KUMOTAN_DOUBLE_TAP_WINDOW_MS", p.DoubleTapWindowMs)
	if v := os.Getenv("KUMOTAN_MORPH_ENABLED"); v != "" {
		p.MorphEnabled = v == "true"
	}
	p.MorphPolicyPath = getEnvOrDefault("KUMOTAN_MORPH_POLICY", p.MorphPolicyPath)
	p.TokenCacheSize = getIntEnv("KUMOTAN_TOKEN_CACHE_SIZE", p.TokenCacheSize)
	p.MaxConcurrentTokenize = int64(getIntEnv("KUMOTAN_MAX_CONCURRENT_TOKENIZE", int(p.MaxConcurrentTokenize)))
	p.RateLimitRPS = float64(getIntEnv("KUMOTAN_RATE_LIMIT_RPS", int(p.RateLimitRPS)))
	p.RateLimitBurst = getIntEnv("KUMOTAN_RATE_LIMIT_BURST", p.RateLimitBurst)
}

// Validate normalizes the profile and fills defaults.
func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}
	if p.Port < 0 || p.Port > 65535 {
		return errors.Errorf("invalid port %d", p.Port)
	}
	if p.Port == 0 {
		p.Port = 8230
	}
	if p.DoubleTapWindowMs <= 0 {
		p.DoubleTapWindowMs = 300
	}
	if p.TokenCacheSize <= 0 {
		p.TokenCacheSize = 1024
	}
	if p.MaxConcurrentTokenize <= 0 {
		p.MaxConcurrentTokenize = 8
	}
	if p.RateLimitRPS <= 0 {
		p.RateLimitRPS = 10
	}
	if p.RateLimitBurst <= 0 {
		p.RateLimitBurst = 20
	}
	return nil
}
