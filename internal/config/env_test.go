package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_ReadsPrefixedVariables(t *testing.T) {
	t.Setenv("ASHYPASS_STORAGE_DB_PATH", "/tmp/vault.db")
	t.Setenv("ASHYPASS_SESSION_IDLE_TIMEOUT", "45s")
	t.Setenv("ASHYPASS_SECURITY_KDF_ITERATIONS", "150000")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "/tmp/vault.db", cfg.Storage.DB.Path)
	assert.Equal(t, 45*time.Second, cfg.Session.IdleTimeout)
	assert.Equal(t, 150000, cfg.Security.KDFIterations)
}

func TestParseEnv_LeavesUnsetFieldsZero(t *testing.T) {
	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Zero(t, cfg.Session.IdleTimeout)
	assert.Zero(t, cfg.Security.ArgonTime)
}

func TestParseEnv_InvalidValue(t *testing.T) {
	t.Setenv("ASHYPASS_SESSION_IDLE_TIMEOUT", "not-a-duration")

	cfg := &StructuredConfig{}
	assert.Error(t, parseEnv(cfg))
}
