// Package config loads the application configuration into one explicit
// struct that is threaded into every component.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/packsmith/minecraft-pack-manager/internal/constants"
)

// Config holds all runtime configuration. Values come from an optional
// .env-style file and from environment variables; flags may override
// individual fields afterwards.
type Config struct {
	DatabasePath       string `mapstructure:"DATABASE_PATH"`
	CacheDir           string `mapstructure:"CACHE_DIR"`
	ArtifactsDir       string `mapstructure:"ARTIFACTS_DIR"`
	DefaultGameVersion string `mapstructure:"DEFAULT_GAME_VERSION"`
	UseCachedResponses bool   `mapstructure:"USE_CACHED_RESPONSES"`

	// Base URL overrides, used by tests and by operators behind mirrors.
	ModrinthBaseURL   string `mapstructure:"MODRINTH_BASE_URL"`
	CurseforgeBaseURL string `mapstructure:"CURSEFORGE_BASE_URL"`
}

// Load reads configuration from `dir`. A missing config file is fine, the
// environment alone is enough; an unreadable or malformed file is not.
func Load(dir string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.AutomaticEnv()
	for _, key := range []string{
		"DATABASE_PATH",
		"CACHE_DIR",
		"ARTIFACTS_DIR",
		"DEFAULT_GAME_VERSION",
		"USE_CACHED_RESPONSES",
		"MODRINTH_BASE_URL",
		"CURSEFORGE_BASE_URL",
	} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	applyDefaults(&config, dir)
	return config, nil
}

func applyDefaults(config *Config, dir string) {
	if config.DatabasePath == "" {
		config.DatabasePath = filepath.Join(dir, constants.DefaultDatabaseFile)
	}
	if config.CacheDir == "" {
		config.CacheDir = filepath.Join(dir, "cache")
	}
	if config.ArtifactsDir == "" {
		config.ArtifactsDir = filepath.Join(dir, "artifacts")
	}
}
