package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/sitegen/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "15s" or as integer nanoseconds. Absent or zero fields leave
// the Config value untouched.
type JsonConfig struct {
	AuthURL         string         `json:"auth_url"`
	AdminURL        string         `json:"admin_url"`
	GenerateURL     string         `json:"generate_url"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
	GenerateTimeout timex.Duration `json:"generate_timeout"`
	SessionDBPath   string         `json:"session_db_path"`
	GenerationCost  int64          `json:"generation_cost"`
	ExportDir       string         `json:"export_dir"`
	ExportFileName  string         `json:"export_file_name"`
	PreviewAddr     string         `json:"preview_addr"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint"`
	S3Region        string         `json:"s3_region"`
	S3Bucket        string         `json:"s3_bucket"`
	S3AccessKey     string         `json:"s3_access_key"`
	S3SecretKey     string         `json:"s3_secret_key"`
	PublishLinkTTL  timex.Duration `json:"publish_link_ttl"`
	LogLevel        string         `json:"log_level"`
}

// parseJson overlays cfg with values from the JSON file at path. An empty
// path means no file was requested.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	setString(&cfg.AuthURL, jc.AuthURL)
	setString(&cfg.AdminURL, jc.AdminURL)
	setString(&cfg.GenerateURL, jc.GenerateURL)
	setString(&cfg.SessionDBPath, jc.SessionDBPath)
	setString(&cfg.ExportDir, jc.ExportDir)
	setString(&cfg.ExportFileName, jc.ExportFileName)
	setString(&cfg.PreviewAddr, jc.PreviewAddr)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.LogLevel, jc.LogLevel)

	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.GenerateTimeout.Duration > 0 {
		cfg.GenerateTimeout = jc.GenerateTimeout.Duration
	}
	if jc.PublishLinkTTL.Duration > 0 {
		cfg.PublishLinkTTL = jc.PublishLinkTTL.Duration
	}
	if jc.GenerationCost != 0 {
		cfg.GenerationCost = jc.GenerationCost
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
