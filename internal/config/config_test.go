package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPort(t *testing.T) {
	t.Setenv("APP_PORT", "")
	assert.Equal(t, ":8080", Port())

	t.Setenv("APP_PORT", "9000")
	assert.Equal(t, ":9000", Port())

	t.Setenv("APP_PORT", "127.0.0.1:9000")
	assert.Equal(t, "127.0.0.1:9000", Port())
}

func TestBasePath(t *testing.T) {
	t.Setenv("APP_BASE_PATH", "/mines/")
	assert.Equal(t, "/mines", BasePath())
}

func TestDevelopment(t *testing.T) {
	for value, want := range map[string]bool{
		"1": true, "true": true, "yes": true,
		"0": false, "false": false, "": false,
	} {
		t.Setenv("DEVELOPMENT", value)
		assert.Equal(t, want, Development(), value)
	}
}

func TestSessionTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "")
	ttl, err := SessionTTL()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, ttl)

	t.Setenv("SESSION_TTL", "90m")
	ttl, err = SessionTTL()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, ttl)

	t.Setenv("SESSION_TTL", "-1h")
	_, err = SessionTTL()
	assert.Error(t, err)

	t.Setenv("SESSION_TTL", "soon")
	_, err = SessionTTL()
	assert.Error(t, err)
}

func TestNewJWTRequiresSecretInProduction(t *testing.T) {
	t.Setenv("DEVELOPMENT", "0")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("SESSION_SECRET_FILE", "")

	_, err := NewJWT(time.Hour)
	assert.Error(t, err)

	t.Setenv("DEVELOPMENT", "1")
	_, err = NewJWT(time.Hour)
	assert.NoError(t, err)
}

func TestNewLogFile(t *testing.T) {
	t.Setenv("LOG_FILE", "")
	logFile, err := NewLogFile()
	require.NoError(t, err)
	assert.Nil(t, logFile)

	t.Setenv("LOG_FILE", "/tmp/minesweeper.log")
	t.Setenv("LOG_FILE_MAX_BACKUPS", "7")
	logFile, err = NewLogFile()
	require.NoError(t, err)
	require.NotNil(t, logFile)
	assert.Equal(t, 7, logFile.MaxBackups)
	assert.Equal(t, 100, logFile.MaxSizeMB)

	t.Setenv("LOG_FILE_MAX_AGE_DAYS", "many")
	_, err = NewLogFile()
	assert.Error(t, err)
}
