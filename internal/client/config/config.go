package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/sitegen/internal/common"
	"github.com/dmitrijs2005/sitegen/internal/flagx"
)

const (
	defaultAuthURL  = "https://functions.poehali.dev/39c3bcf3-ff05-43e6-9752-8d71cb3f2726"
	defaultAdminURL = "https://functions.poehali.dev/aa011f22-c7a0-4b11-b36e-e89178ddec31"
)

// Config holds runtime settings for the sitegen client.
//
// GenerateURL has no default; until it is set the generate command reports
// that the service is not configured. Publishing is enabled only when
// S3Bucket is set.
type Config struct {
	AuthURL     string
	AdminURL    string
	GenerateURL string

	RequestTimeout  time.Duration
	GenerateTimeout time.Duration

	SessionDBPath  string
	GenerationCost int64

	ExportDir      string
	ExportFileName string
	PreviewAddr    string

	S3BaseEndpoint string
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	PublishLinkTTL time.Duration

	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.AuthURL = defaultAuthURL
	c.AdminURL = defaultAdminURL
	c.GenerateURL = ""
	c.RequestTimeout = 15 * time.Second
	c.GenerateTimeout = 2 * time.Minute
	c.SessionDBPath = "~/.sitegen/session.db"
	c.GenerationCost = common.DefaultGenerationCost
	c.ExportDir = "."
	c.ExportFileName = common.DefaultArtifactFileName
	c.PreviewAddr = "127.0.0.1:0"
	c.S3Region = "us-east-1"
	c.PublishLinkTTL = 24 * time.Hour
	c.LogLevel = "warn"
}

// Validate reports settings the client cannot run with.
func (c *Config) Validate() error {
	var errs []error
	for name, raw := range map[string]string{
		"auth url":     c.AuthURL,
		"admin url":    c.AdminURL,
		"generate url": c.GenerateURL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s %q is not an http(s) URL", name, raw))
		}
	}
	if c.RequestTimeout <= 0 || c.GenerateTimeout <= 0 {
		errs = append(errs, errors.New("timeouts must be positive"))
	}
	if c.GenerationCost <= 0 {
		errs = append(errs, fmt.Errorf("generation cost must be positive, got %d", c.GenerationCost))
	}
	if c.SessionDBPath == "" {
		errs = append(errs, errors.New("session db path is empty"))
	}
	return errors.Join(errs...)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and a .env file), a JSON file and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	lookup, err := envLookup(dotEnvFile)
	if err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseEnv(cfg, lookup); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseJson(cfg, flagx.ConfigPath(args)); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
