// file: internal/config/config.go
// version: 1.1.0
// guid: 2f3a4b5c-6d7e-8f9a-0b1c-2d3e4f5a6b7c

package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// DataDir is where downloaded database files live.
	DataDir string
	// HTTPTimeout bounds every single request to a remote catalogue.
	HTTPTimeout time.Duration
	// PageSize is the default number of records per fetch.
	PageSize int
	// RDFFormat selects the export serialization, "turtle" or
	// "ntriples".
	RDFFormat string
	// Endpoints overrides catalogue endpoint URLs, keyed by catalogue
	// name. Mainly useful for testing against local mirrors.
	Endpoints map[string]string
}

var AppConfig Config

// DefaultDataDir returns the per-user data directory.
func DefaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "edpop-explorer")
}

// InitConfig initializes the application configuration
func InitConfig() {
	viper.SetDefault("data_dir", DefaultDataDir())
	viper.SetDefault("http_timeout_seconds", 30)
	viper.SetDefault("page_size", 10)
	viper.SetDefault("rdf_format", "turtle")

	AppConfig = Config{
		DataDir:     viper.GetString("data_dir"),
		HTTPTimeout: time.Duration(viper.GetInt("http_timeout_seconds")) * time.Second,
		PageSize:    viper.GetInt("page_size"),
		RDFFormat:   viper.GetString("rdf_format"),
		Endpoints:   viper.GetStringMapString("endpoints"),
	}

	if AppConfig.PageSize < 1 {
		AppConfig.PageSize = 10
	}
	if AppConfig.RDFFormat != "ntriples" {
		AppConfig.RDFFormat = "turtle"
	}
}

// Endpoint returns the configured override for a catalogue, or the
// given default.
func Endpoint(name, fallback string) string {
	if url, ok := AppConfig.Endpoints[name]; ok && url != "" {
		return url
	}
	return fallback
}
