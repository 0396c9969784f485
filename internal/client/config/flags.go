package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/sitegen/internal/flagx"
)

// flagNames are the flags owned by the config layer; everything else on the
// command line belongs to the command tree.
var flagNames = []string{"a", "m", "g", "t", "gt", "d", "cost", "e", "p", "b", "l"}

// FlagNames lists every flag LoadConfig consumes, the JSON file selector
// included, so callers can keep them away from other parsers.
func FlagNames() []string {
	return append([]string{"c", "config"}, flagNames...)
}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     auth endpoint URL
//	-m string     admin endpoint URL
//	-g string     generation endpoint URL
//	-t duration   request timeout
//	-gt duration  generation request timeout
//	-d string     session database path
//	-cost int     energy cost of one generation
//	-e string     export directory
//	-p string     preview listen address
//	-b string     S3 bucket for publishing
//	-l string     log level (debug, info, warn, error)
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.AuthURL, "a", cfg.AuthURL, "auth endpoint URL")
	fs.StringVar(&cfg.AdminURL, "m", cfg.AdminURL, "admin endpoint URL")
	fs.StringVar(&cfg.GenerateURL, "g", cfg.GenerateURL, "generation endpoint URL")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.DurationVar(&cfg.GenerateTimeout, "gt", cfg.GenerateTimeout, "generation request timeout")
	fs.StringVar(&cfg.SessionDBPath, "d", cfg.SessionDBPath, "session database path")
	fs.Int64Var(&cfg.GenerationCost, "cost", cfg.GenerationCost, "energy cost of one generation")
	fs.StringVar(&cfg.ExportDir, "e", cfg.ExportDir, "export directory")
	fs.StringVar(&cfg.PreviewAddr, "p", cfg.PreviewAddr, "preview listen address")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket for publishing")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	return fs.Parse(flagx.FilterArgs(args, flagNames))
}
