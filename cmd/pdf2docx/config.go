// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/pdf2docx/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "pdf2docx/0.1"
	defaultOutputDir = "."
)

// envKeyReplacer maps nested keys to env names, e.g. conversion.backend
// becomes PDF2DOCX_CONVERSION_BACKEND.
var envKeyReplacer = strings.NewReplacer(".", "_")

func setDefaults() {
	viper.SetDefault("conversion.backend", string(types.BackendNative))
	viper.SetDefault("conversion.output_dir", defaultOutputDir)
	viper.SetDefault("conversion.overwrite", false)
	viper.SetDefault("conversion.line_threshold", 0.0)
	viper.SetDefault("conversion.compression_level", 0)
	viper.SetDefault("http.timeout", defaultTimeout)
	viper.SetDefault("http.user_agent", defaultUserAgent)
	viper.SetDefault("http.max_retries", 0)
	viper.SetDefault("http.max_bytes", int64(0))
	viper.SetDefault("journal.path", "")
}

// loadConfig reads the merged flag, env, and file settings.
func loadConfig(v *viper.Viper) types.Config {
	cfg := types.Config{
		Conversion: types.ConversionConfig{
			Backend:          types.Backend(v.GetString("conversion.backend")),
			OutputDir:        v.GetString("conversion.output_dir"),
			Overwrite:        v.GetBool("conversion.overwrite"),
			LineThreshold:    v.GetFloat64("conversion.line_threshold"),
			CompressionLevel: v.GetInt("conversion.compression_level"),
		},
		HTTP: types.HTTPConfig{
			Timeout:    v.GetDuration("http.timeout"),
			UserAgent:  v.GetString("http.user_agent"),
			MaxRetries: v.GetInt("http.max_retries"),
			MaxBytes:   v.GetInt64("http.max_bytes"),
		},
		Journal: types.JournalConfig{
			Path: v.GetString("journal.path"),
		},
	}
	if cfg.Journal.Path == "" {
		cfg.Journal.Path = defaultJournalPath()
	}
	return cfg
}

// defaultJournalPath returns ~/.local/state/pdf2docx/journal.db, or a path
// in the working directory when the home directory is unknown.
func defaultJournalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".pdf2docx", "journal.db")
	}
	return filepath.Join(home, ".local", "state", "pdf2docx", "journal.db")
}
