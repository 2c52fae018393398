package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("CONTACTUS_BROWSER_HEADLESS", "false")
	t.Setenv("CONTACTUS_BROWSER_ENGINE", "FireFox")
	t.Setenv("CONTACTUS_BROWSER_EXPECT_TIMEOUT", "10s")
	t.Setenv("CONTACTUS_LOG_LEVEL", "debug")
	t.Setenv("CONTACTUS_TARGET_CONTACT_URL", "http://localhost:8080/contact.html")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, EngineFirefox, cfg.Browser.Engine)
	assert.Equal(t, 10*time.Second, cfg.Browser.ExpectTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "http://localhost:8080/contact.html", cfg.Target.ContactURL)
	assert.Equal(t, defaultIndexURL, cfg.Target.IndexURL)
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "suite.toml")
	content := `
[browser]
engine = "webkit"
slow_mo = "250ms"
navigation_timeout = "1m"

[logging]
format = "json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	m, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, m.Load())
	cfg := m.Get()

	assert.Equal(t, path, m.ConfigFileUsed())
	assert.Equal(t, EngineWebKit, cfg.Browser.Engine)
	assert.Equal(t, 250*time.Millisecond, cfg.Browser.SlowMo)
	assert.Equal(t, time.Minute, cfg.Browser.NavigationTimeout)
	assert.Equal(t, defaultExpectTimeout, cfg.Browser.ExpectTimeout)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_ValidationCollectsEveryProblem(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, appName), 0o755))
	path := filepath.Join(dir, appName, "config.toml")
	content := `
[target]
contact_url = "ftp://example.com/contact"
index_url = ""

[browser]
engine = "netscape"
expect_timeout = "0s"

[logging]
level = "loud"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := Load("")
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "target.contact_url must use http or https")
	assert.Contains(t, msg, "target.index_url must not be empty")
	assert.Contains(t, msg, "browser.engine must be one of")
	assert.Contains(t, msg, "browser.expect_timeout must be positive")
	assert.Contains(t, msg, "logging.level must be one of")
}

func TestNormalizeConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Browser.Engine = "  "
	cfg.Logging.Format = "XML"
	cfg.Logging.Level = " WARN "
	cfg.Target.ContactURL = " https://example.com/c.html "

	normalizeConfig(cfg)

	assert.Equal(t, EngineChromium, cfg.Browser.Engine)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "https://example.com/c.html", cfg.Target.ContactURL)
}

func TestWriteDefault_RoundTrips(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "contactus", "config.toml")

	require.NoError(t, WriteDefault(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	err = WriteDefault(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	require.NoError(t, WriteDefault(path, true))
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "contactus Configuration", doc["title"])
	assert.Contains(t, string(data), `"navigation_timeout"`)
	assert.Contains(t, string(data), `"chromium"`)
}

func TestGenerateSchemaFile(t *testing.T) {
	dir := t.TempDir()

	path, err := GenerateSchemaFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.schema.json"), path)
	assert.FileExists(t, path)
}
