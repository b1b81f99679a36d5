package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Load reads environment variables (optionally from envFile), loads the
// layered YAML files from EGG_CONFIG_DIR and applies env overrides.
func Load(envFile string) (Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return Settings{}, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// a missing .env is fine when the environment is set directly
		_ = godotenv.Load()
	}

	loader := NewLoader(getenvWithDefault("EGG_CONFIG_DIR", "config"))
	raw, err := loader.LoadMerged(os.Getenv("EGG_PROFILE"))
	if err != nil {
		return Settings{}, err
	}
	return Normalize(applyEnv(raw))
}

// applyEnv lets deployment env vars win over the YAML files.
func applyEnv(cfg RawConfig) RawConfig {
	if v := os.Getenv("EGG_HTTP_ADDR"); v != "" {
		cfg.Server.HTTPAddr = v
	}
	if v := os.Getenv("EGG_GRPC_ADDR"); v != "" {
		cfg.Server.GRPCAddr = v
	}
	if v := os.Getenv("EGG_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	path, url := os.Getenv("EGG_CATALOG_PATH"), os.Getenv("EGG_CATALOG_URL")
	if path != "" || url != "" {
		cfg.Catalog.Path, cfg.Catalog.URL = path, url
	}
	return cfg
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
