package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	conf, err := Load("testdata/config.yml")

	require.NoError(t, err)
	assert.Equal(t, "test", conf.API.Environment)
	assert.Equal(t, "TopSecretAPIKey", conf.API.AdminAPIKey)
	assert.Equal(t, "cafes_test", conf.Postgres.DB)
	assert.Equal(t, 587, conf.SMTP.Port)
	assert.Equal(t, "admin@freewificafes.example", conf.SMTP.AdminMailbox)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("API_PORT", "9999")
	t.Setenv("SMTP_HOST", "relay.example.com")

	conf, err := Load("testdata/config.yml")

	require.NoError(t, err)
	assert.Equal(t, "9999", conf.API.Port)
	assert.Equal(t, "relay.example.com", conf.SMTP.Host)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/nope.yml")

	assert.Error(t, err)
}
