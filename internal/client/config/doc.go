// Package config loads runtime configuration for the sitegen client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables SITEGEN_*, falling back to a .env file in the
//     working directory. Real environment variables win over .env entries.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// Durations are timex.Duration, so values can be either strings like "15s"
// or integer nanoseconds:
//
//	{
//	  "auth_url": "https://auth.example/",
//	  "admin_url": "https://admin.example/",
//	  "generate_url": "https://generate.example/",
//	  "request_timeout": "15s",
//	  "generate_timeout": "2m",
//	  "session_db_path": "~/.sitegen/session.db",
//	  "generation_cost": 20,
//	  "export_dir": "~/sites",
//	  "preview_addr": "127.0.0.1:8090",
//	  "s3_base_endpoint": "http://127.0.0.1:9000",
//	  "s3_bucket": "sites",
//	  "publish_link_ttl": "24h",
//	  "log_level": "info"
//	}
package config
