package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func mapLookup(m map[string]string) lookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, defaultAuthURL, c.AuthURL)
	assert.Equal(t, defaultAdminURL, c.AdminURL)
	assert.Empty(t, c.GenerateURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, 2*time.Minute, c.GenerateTimeout)
	assert.Equal(t, int64(20), c.GenerationCost)
	assert.Equal(t, "generated-site.html", c.ExportFileName)
	assert.Equal(t, 24*time.Hour, c.PublishLinkTTL)
	require.NoError(t, c.Validate())
}

func TestParseEnv(t *testing.T) {
	c := defaults()
	err := parseEnv(&c, mapLookup(map[string]string{
		EnvGenerateURL:     "https://gen.example/",
		EnvRequestTimeout:  "5s",
		EnvGenerationCost:  "30",
		EnvS3Bucket:        "sites",
		EnvLogLevel:        "debug",
		EnvAuthURL:         "",
		EnvGenerateTimeout: "",
	}))
	require.NoError(t, err)

	want := defaults()
	want.GenerateURL = "https://gen.example/"
	want.RequestTimeout = 5 * time.Second
	want.GenerationCost = 30
	want.S3Bucket = "sites"
	want.LogLevel = "debug"

	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEnv_BadValues(t *testing.T) {
	c := defaults()
	require.Error(t, parseEnv(&c, mapLookup(map[string]string{EnvRequestTimeout: "soon"})))

	c = defaults()
	require.Error(t, parseEnv(&c, mapLookup(map[string]string{EnvGenerationCost: "twenty"})))
}

func TestEnvLookup_ProcessEnvWinsOverDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SITEGEN_S3_BUCKET=from-file\nSITEGEN_LOG_LEVEL=info\n"), 0o600))
	t.Setenv(EnvS3Bucket, "from-env")

	lookup, err := envLookup(path)
	require.NoError(t, err)

	v, ok := lookup(EnvS3Bucket)
	require.True(t, ok)
	assert.Equal(t, "from-env", v)

	v, ok = lookup(EnvLogLevel)
	require.True(t, ok)
	assert.Equal(t, "info", v)

	_, ok = lookup("SITEGEN_UNSET_FOR_TEST")
	assert.False(t, ok)
}

func TestEnvLookup_MissingFile(t *testing.T) {
	lookup, err := envLookup(filepath.Join(t.TempDir(), "nope.env"))
	require.NoError(t, err)
	_, ok := lookup("SITEGEN_UNSET_FOR_TEST")
	assert.False(t, ok)
}

func TestParseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"generate_url":     "https://gen.example/",
		"request_timeout":  "3s",
		"generate_timeout": int64(90 * time.Second),
		"export_dir":       "~/sites",
		"s3_bucket":        "sites",
	})

	c := defaults()
	require.NoError(t, parseJson(&c, path))

	want := defaults()
	want.GenerateURL = "https://gen.example/"
	want.RequestTimeout = 3 * time.Second
	want.GenerateTimeout = 90 * time.Second
	want.ExportDir = "~/sites"
	want.S3Bucket = "sites"

	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJson_NoPathAndErrors(t *testing.T) {
	c := defaults()
	require.NoError(t, parseJson(&c, ""))
	assert.Equal(t, defaults(), c)

	require.Error(t, parseJson(&c, filepath.Join(t.TempDir(), "missing.json")))

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	require.Error(t, parseJson(&c, bad))
}

func TestParseFlags_IgnoresForeignArgs(t *testing.T) {
	c := defaults()
	err := parseFlags(&c, []string{"generate", "-g", "https://gen.example/", "--verbose", "-t=4s", "-cost", "25", "landing"})
	require.NoError(t, err)

	assert.Equal(t, "https://gen.example/", c.GenerateURL)
	assert.Equal(t, 4*time.Second, c.RequestTimeout)
	assert.Equal(t, int64(25), c.GenerationCost)
}

func TestLoadConfig_Precedence(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(".env", []byte("SITEGEN_LOG_LEVEL=info\nSITEGEN_S3_BUCKET=env-bucket\n"), 0o600))
	t.Setenv(EnvPreviewAddr, "127.0.0.1:7000")

	path := writeTempJSON(t, map[string]any{
		"s3_bucket":    "json-bucket",
		"preview_addr": "127.0.0.1:8000",
		"log_level":    "error",
	})

	cfg, err := LoadConfig([]string{"-c", path, "-l", "debug"})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel, "flags beat json")
	assert.Equal(t, "json-bucket", cfg.S3Bucket, "json beats .env")
	assert.Equal(t, "127.0.0.1:8000", cfg.PreviewAddr, "json beats env")
	assert.Equal(t, defaultAuthURL, cfg.AuthURL)
}

func TestLoadConfig_InvalidIsRejected(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadConfig([]string{"-a", "ftp://auth.example"})
	require.Error(t, err)

	_, err = LoadConfig([]string{"-cost", "0"})
	require.Error(t, err)

	_, err = LoadConfig([]string{"-t", "later"})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := defaults()
	c.GenerateURL = "not a url"
	c.RequestTimeout = 0
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate url")
	assert.Contains(t, err.Error(), "timeouts")
}

func TestFlagNames_IncludesConfigSelector(t *testing.T) {
	names := FlagNames()
	assert.Contains(t, names, "c")
	assert.Contains(t, names, "config")
	assert.Contains(t, names, "gt")
	assert.Len(t, names, len(flagNames)+2)
}
