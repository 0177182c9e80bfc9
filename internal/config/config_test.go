package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		DatabaseURL:  "postgres://localhost:5432/duty_roster",
		GmailUserID:  "user@example.com",
		GmailSender:  "sender@example.com",
		GeminiAPIKey: "test-key",
		GeminiModel:  "gemini-2.0-flash",
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost:5432/duty_roster",
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingDatabaseURL(t *testing.T) {
	cfg := &Config{
		GmailUserID: "user@example.com",
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidGmailUserID(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost:5432/duty_roster",
		GmailUserID: "not-an-email",
	}

	err := Validate(cfg)
	assert.Error(t, err)
}

func TestLoadFromPath_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "duty_roster_config.yaml")

	content := `databaseURL: postgres://localhost:5432/duty_roster
gmailUserID: user@example.com
gmailSender: sender@example.com
geminiAPIKey: test-key
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/duty_roster", cfg.DatabaseURL)
	assert.Equal(t, "user@example.com", cfg.GmailUserID)
	assert.Equal(t, "sender@example.com", cfg.GmailSender)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	assert.Empty(t, cfg.GeminiModel)
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "duty_roster_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("databaseURL: [unbalanced"), 0644))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadOAuthClientFromPath_Valid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "duty_roster_oauth.json")

	content := `{
		"installed": {
			"client_id": "client123",
			"project_id": "project456",
			"auth_uri": "https://accounts.google.com/o/oauth2/auth",
			"token_uri": "https://oauth2.googleapis.com/token",
			"auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
			"client_secret": "secret789",
			"redirect_uris": ["http://localhost"]
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadOAuthClientFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "client123", cfg.Installed.ClientID)
	assert.Equal(t, "secret789", cfg.Installed.ClientSecret)
	assert.Len(t, cfg.Installed.RedirectURIs, 1)
}

func TestLoadOAuthClientFromPath_MissingClientID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "duty_roster_oauth.json")

	content := `{
		"installed": {
			"project_id": "project456",
			"auth_uri": "https://accounts.google.com/o/oauth2/auth",
			"token_uri": "https://oauth2.googleapis.com/token",
			"auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
			"client_secret": "secret789",
			"redirect_uris": ["http://localhost"]
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadOAuthClientFromPath(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "oauth client validation failed")
}
