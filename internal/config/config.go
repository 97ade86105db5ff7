package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultDBPath     = "./dev.db"
	defaultPort       = "8080"
	defaultEnv        = "dev"
	defaultConfigFile = "./microsite.toml"
	defaultTheme      = "NOVA"
)

// Config holds application configuration sourced from an optional TOML file
// and environment variables.
type Config struct {
	AdminEmail    string `toml:"admin_email"`
	AdminPassword string `toml:"admin_password"`
	SessionSecret string `toml:"session_secret"`
	DBPath        string `toml:"db_path"`
	Port          string `toml:"port"`
	Env           string `toml:"env"`
	DefaultTheme  string `toml:"default_theme"`
}

// IsDev reports whether the server runs in local development mode.
func (c Config) IsDev() bool {
	return c.Env == "" || c.Env == "dev" || c.Env == "development"
}

// Load reads the config file (if any), the .env file (if any) and environment
// variables, and returns a populated Config. Environment values win.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_ = loadDotEnv(".env")

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = defaultConfigFile
	}
	cfg, err := loadFile(path)
	if err != nil {
		log.Printf("warning: ignoring config file %s: %v", path, err)
		cfg = Config{}
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if cfg.AdminEmail == "" {
		log.Print("warning: ADMIN_EMAIL is not set")
	}
	if cfg.AdminPassword == "" {
		log.Print("warning: ADMIN_PASSWORD is not set")
	}
	if cfg.SessionSecret == "" {
		log.Print("warning: SESSION_SECRET is not set")
	}

	return cfg
}

// loadFile decodes a TOML config file. A missing file yields an empty Config.
func loadFile(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config file: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	for _, binding := range []struct {
		key    string
		target *string
	}{
		{"ADMIN_EMAIL", &cfg.AdminEmail},
		{"ADMIN_PASSWORD", &cfg.AdminPassword},
		{"SESSION_SECRET", &cfg.SessionSecret},
		{"DB_PATH", &cfg.DBPath},
		{"PORT", &cfg.Port},
		{"APP_ENV", &cfg.Env},
		{"DEFAULT_THEME", &cfg.DefaultTheme},
	} {
		if v := os.Getenv(binding.key); v != "" {
			*binding.target = v
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DefaultTheme == "" {
		cfg.DefaultTheme = defaultTheme
	}
}
