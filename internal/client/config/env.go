package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const dotEnvFile = ".env"

// Environment variable names.
const (
	EnvAuthURL         = "SITEGEN_AUTH_URL"
	EnvAdminURL        = "SITEGEN_ADMIN_URL"
	EnvGenerateURL     = "SITEGEN_GENERATE_URL"
	EnvRequestTimeout  = "SITEGEN_REQUEST_TIMEOUT"
	EnvGenerateTimeout = "SITEGEN_GENERATE_TIMEOUT"
	EnvSessionDB       = "SITEGEN_SESSION_DB"
	EnvGenerationCost  = "SITEGEN_GENERATION_COST"
	EnvExportDir       = "SITEGEN_EXPORT_DIR"
	EnvExportFile      = "SITEGEN_EXPORT_FILE"
	EnvPreviewAddr     = "SITEGEN_PREVIEW_ADDR"
	EnvS3Endpoint      = "SITEGEN_S3_ENDPOINT"
	EnvS3Region        = "SITEGEN_S3_REGION"
	EnvS3Bucket        = "SITEGEN_S3_BUCKET"
	EnvS3AccessKey     = "SITEGEN_S3_ACCESS_KEY"
	EnvS3SecretKey     = "SITEGEN_S3_SECRET_KEY"
	EnvPublishTTL      = "SITEGEN_PUBLISH_TTL"
	EnvLogLevel        = "SITEGEN_LOG_LEVEL"
)

type lookupFunc func(key string) (string, bool)

// envLookup resolves keys from the process environment first and then from
// the dotenv file at path. A missing file is not an error. The process
// environment itself is left untouched.
func envLookup(path string) (lookupFunc, error) {
	file, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		file = map[string]string{}
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}, nil
}

// parseEnv overlays cfg with every variable lookup knows about.
func parseEnv(cfg *Config, lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	str(EnvAuthURL, &cfg.AuthURL)
	str(EnvAdminURL, &cfg.AdminURL)
	str(EnvGenerateURL, &cfg.GenerateURL)
	str(EnvSessionDB, &cfg.SessionDBPath)
	str(EnvExportDir, &cfg.ExportDir)
	str(EnvExportFile, &cfg.ExportFileName)
	str(EnvPreviewAddr, &cfg.PreviewAddr)
	str(EnvS3Endpoint, &cfg.S3BaseEndpoint)
	str(EnvS3Region, &cfg.S3Region)
	str(EnvS3Bucket, &cfg.S3Bucket)
	str(EnvS3AccessKey, &cfg.S3AccessKey)
	str(EnvS3SecretKey, &cfg.S3SecretKey)
	str(EnvLogLevel, &cfg.LogLevel)

	if err := errors.Join(
		dur(EnvRequestTimeout, &cfg.RequestTimeout),
		dur(EnvGenerateTimeout, &cfg.GenerateTimeout),
		dur(EnvPublishTTL, &cfg.PublishLinkTTL),
	); err != nil {
		return err
	}

	if v, ok := lookup(EnvGenerationCost); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvGenerationCost, err)
		}
		cfg.GenerationCost = n
	}
	return nil
}
