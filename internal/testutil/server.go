package testutil

import (
	"testing"

	"github.com/deppfellow/frontdesk/internal/config"
	"github.com/deppfellow/frontdesk/internal/server"
	"github.com/rs/zerolog"
)

// NewTestConfig returns a config for the "test" env with rate limiting
// disabled and default observability settings.
func NewTestConfig() *config.Config {
	obs := config.DefaultObservabilityConfig()
	obs.Environment = "test"
	obs.HealthChecks.Checks = []string{"database"}

	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        5,
			WriteTimeout:       5,
			IdleTimeout:        5,
			CORSAllowedOrigins: []string{"*"},
		},
		RateLimit:     &config.RateLimitConfig{Enabled: false, Requests: 1, Window: 1},
		Observability: obs,
	}
}

// NewTestServer builds a server container over an in-memory store. Redis
// and New Relic are disabled.
func NewTestServer(t *testing.T) *server.Server {
	t.Helper()

	logger := zerolog.Nop()
	return &server.Server{
		Config: NewTestConfig(),
		Logger: &logger,
		DB:     NewTestDatabase(t),
	}
}
