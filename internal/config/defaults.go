package config

import (
	"os"
	"path/filepath"

	"github.com/quantmind-br/assetmanifest/internal/manifest"
	"github.com/quantmind-br/assetmanifest/internal/static"
	"github.com/quantmind-br/assetmanifest/internal/strategy"
)

// Default values
const (
	// Manifest defaults
	DefaultManifestFile = manifest.DefaultManifestFile
	DefaultCache        = false
	DefaultLoader       = strategy.DefaultName

	// Static defaults
	DefaultStaticURL = static.DefaultURL
	DefaultHashed    = false

	// Server defaults
	DefaultServerAddr = "127.0.0.1:8000"
	DefaultTemplates  = "templates"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"

	// EnvPrefix prefixes every environment variable (ASSETMANIFEST_MANIFEST_CACHE, ...)
	EnvPrefix = "ASSETMANIFEST"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".assetmanifest"
	}
	return filepath.Join(home, ".assetmanifest")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Manifest: ManifestConfig{
			OutputDir:    "",
			ManifestFile: DefaultManifestFile,
			Cache:        DefaultCache,
			Loader:       DefaultLoader,
		},
		Static: StaticConfig{
			URL:    DefaultStaticURL,
			Dirs:   []string{},
			Hashed: DefaultHashed,
		},
		Server: ServerConfig{
			Addr:      DefaultServerAddr,
			Templates: DefaultTemplates,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
