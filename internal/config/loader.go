package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by WriteDefault when the file is already there
var ErrConfigExists = errors.New("config file already exists")

// LoadFrom loads configuration from file, environment, and defaults into v,
// which may already carry CLI flag bindings. A non-empty cfgFile replaces
// the config search path.
func LoadFrom(v *viper.Viper, cfgFile string) (*Config, error) {
	return load(v, cfgFile)
}

func load(v *viper.Viper, cfgFile string) (*Config, error) {
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Environment variables (ASSETMANIFEST_*)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	v.SetDefault("manifest.output_dir", "")
	v.SetDefault("manifest.manifest_file", DefaultManifestFile)
	v.SetDefault("manifest.cache", DefaultCache)
	v.SetDefault("manifest.loader", DefaultLoader)

	v.SetDefault("static.url", DefaultStaticURL)
	v.SetDefault("static.dirs", []string{})
	v.SetDefault("static.hashed", DefaultHashed)

	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.templates", DefaultTemplates)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	return os.MkdirAll(ConfigDir(), 0755)
}

// WriteDefault writes the default configuration to path, or to
// ConfigFilePath when path is empty, and returns the path written. An
// existing file is only replaced when force is set.
func WriteDefault(path string, force bool) (string, error) {
	if path == "" {
		if err := EnsureConfigDir(); err != nil {
			return "", fmt.Errorf("failed to create config directory: %w", err)
		}
		path = ConfigFilePath()
	}

	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
