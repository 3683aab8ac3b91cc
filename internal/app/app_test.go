package app

import (
	"testing"

	"ulearner_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownHooksAreScopedPerApp(t *testing.T) {
	first := &App{}
	second := &App{}

	first.RegisterShutdown(func() {})

	assert.Len(t, first.shutdownHooks, 1)
	assert.Empty(t, second.shutdownHooks)
}

func TestApplyConfigWritesThroughSharedPointer(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "old-secret"
	cfg.Certificate.NumberPrefix = "UL-"
	cfg.ForceMigrate = true

	a := &App{Config: cfg}

	// Something downstream holds the pointer, the way services and the auth
	// middleware do.
	held := cfg

	var notified *config.Config
	a.RegisterConfigCallback(func(updated *config.Config) {
		notified = updated
	})

	updated := &config.Config{}
	updated.JWT.Secret = "new-secret"
	updated.Certificate.NumberPrefix = "CERT-"
	a.ApplyConfig(updated)

	assert.Equal(t, "new-secret", held.JWT.Secret)
	assert.Equal(t, "CERT-", held.Certificate.NumberPrefix)
	require.NotNil(t, notified)
	assert.Equal(t, "new-secret", notified.JWT.Secret)

	// Command line flags are runtime state, not file state, and survive a
	// reload.
	assert.True(t, held.ForceMigrate)
}
