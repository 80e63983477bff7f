package config

import (
	"fmt"
	"strings"

	"github.com/quantmind-br/assetmanifest/internal/manifest"
	"github.com/quantmind-br/assetmanifest/internal/strategy"
	"github.com/quantmind-br/assetmanifest/internal/utils"
)

// Config represents the application configuration
type Config struct {
	Manifest ManifestConfig `mapstructure:"manifest" yaml:"manifest"`
	Static   StaticConfig   `mapstructure:"static" yaml:"static"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// ManifestConfig contains manifest lookup settings
type ManifestConfig struct {
	// OutputDir is the bundler output directory; when empty the manifest
	// is searched for in the static directories
	OutputDir    string `mapstructure:"output_dir" yaml:"output_dir"`
	ManifestFile string `mapstructure:"manifest_file" yaml:"manifest_file"`
	Cache        bool   `mapstructure:"cache" yaml:"cache"`
	// Loader names a registered strategy
	Loader string `mapstructure:"loader" yaml:"loader"`
}

// StaticConfig describes how static files are located and addressed
type StaticConfig struct {
	URL    string   `mapstructure:"url" yaml:"url"`
	Dirs   []string `mapstructure:"dirs" yaml:"dirs"`
	Hashed bool     `mapstructure:"hashed" yaml:"hashed"`
}

// ServerConfig contains preview server settings
type ServerConfig struct {
	Addr      string `mapstructure:"addr" yaml:"addr"`
	Templates string `mapstructure:"templates" yaml:"templates"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration and normalises the static URL
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Manifest.ManifestFile) == "" {
		return fmt.Errorf("%w: manifest.manifest_file cannot be empty", manifest.ErrConfiguration)
	}
	if c.Manifest.Loader == "" {
		c.Manifest.Loader = strategy.DefaultName
	}
	if _, err := strategy.Lookup(c.Manifest.Loader); err != nil {
		return fmt.Errorf("manifest.loader: %w", err)
	}
	if c.Static.Hashed && len(c.Static.Dirs) == 0 {
		return fmt.Errorf("%w: static.hashed needs at least one static directory", manifest.ErrConfiguration)
	}
	if c.Static.URL == "" {
		c.Static.URL = DefaultStaticURL
	}
	if !strings.HasSuffix(c.Static.URL, "/") {
		c.Static.URL += "/"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	return nil
}

// Strategy returns the configured loader strategy
func (c *Config) Strategy() (strategy.Strategy, error) {
	return strategy.Lookup(c.Manifest.Loader)
}

// LoaderOptions maps the configuration onto manifest loader options
func (c *Config) LoaderOptions(logger *utils.Logger) manifest.Options {
	return manifest.Options{
		OutputDir:    c.Manifest.OutputDir,
		ManifestFile: c.Manifest.ManifestFile,
		StaticDirs:   c.Static.Dirs,
		Cache:        c.Manifest.Cache,
		Logger:       logger,
	}
}
