package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds service configuration. Values come from the environment,
// optionally overridden by a YAML file named in ELEVATOR_CONFIG.
type Config struct {
	HTTPAddr       string `yaml:"http_addr"`
	DatabaseDriver string `yaml:"database_driver"`
	DatabaseURL    string `yaml:"database_url"`
	JWTSecret      string `yaml:"jwt_secret"`
}

// Load resolves configuration from env and the optional YAML file.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:       getenvDefault("HTTP_ADDR", ":8080"),
		DatabaseDriver: getenvDefault("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      getenvDefault("AUTH_JWT_SECRET", os.Getenv("JWT_SECRET")),
	}

	if path := os.Getenv("ELEVATOR_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.DatabaseDriver != "sqlite" && cfg.DatabaseDriver != "pgx" {
		return cfg, errors.New("config: database_driver must be sqlite or pgx")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseDriver != "sqlite" {
			return cfg, errors.New("config: DATABASE_URL is required for pgx")
		}
		// Same default file the service always used.
		cfg.DatabaseURL = "file:elevators.db"
	}
	if cfg.JWTSecret == "" {
		return cfg, errors.New("config: AUTH_JWT_SECRET is required")
	}
	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
