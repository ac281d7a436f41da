// Package config resolves the application settings from defaults, a YAML
// config file and GAMELOG_ environment variables, in increasing precedence.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	DataDir  string `mapstructure:"data_dir"`
	PageSize int    `mapstructure:"page_size"`
}

// Load reads the configuration. cfgFile overrides the default search path;
// an absent config file is not an error.
func Load(cfgFile string) (Config, error) {
	v := viper.New()
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("page_size", 10)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "gamelog"))
		}
	}

	v.SetEnvPrefix("GAMELOG")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = 10
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	return cfg, nil
}

// DefaultDataDir returns the platform-appropriate location for the JSON
// documents.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "gamelog-data"
	}
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "gamelog")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "gamelog")
	default:
		return filepath.Join(home, ".local", "share", "gamelog")
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
