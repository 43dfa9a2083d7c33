// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported database types
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
	DatabaseMemory   = "memory"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AuthSecret   string
	BaseURL      string
	LogLevel     string
	ConfigFile   string
	IssueToken   string
}

// fileConfig is the YAML shape of the optional config file
type fileConfig struct {
	Port         int    `yaml:"port"`
	DatabaseURL  string `yaml:"database_url"`
	DatabaseType string `yaml:"database_type"`
	AuthSecret   string `yaml:"auth_secret"`
	BaseURL      string `yaml:"base_url"`
	LogLevel     string `yaml:"log_level"`
}

// loadFile reads the YAML config file. An empty path yields a zero config.
func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return fc, nil
}

// firstSet returns the first non-empty value
func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ParseFlags validates flags and fills in env, config file and default fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("toast-api", flag.ContinueOnError)

	// Network config (can be CLI args, env or config file)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or memory)")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "Public base URL used in share links")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.ConfigFile, "config", "", "Path to a YAML config file")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AuthSecret, "auth-secret", "", "Bearer token signing secret (prefer env)")

	// Dev helper
	fs.StringVar(&cfg.IssueToken, "issue-token", "", "Print a signed token for uid:email[:name] and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.ConfigFile = firstSet(cfg.ConfigFile, os.Getenv("CONFIG_FILE"))
	file, err := loadFile(cfg.ConfigFile)
	if err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else if file.Port != 0 {
			cfg.Port = file.Port
		} else {
			cfg.Port = 3000 // default
		}
	}

	cfg.DatabaseType = firstSet(cfg.DatabaseType, os.Getenv("DATABASE_TYPE"), file.DatabaseType, DatabaseSQLite)
	switch cfg.DatabaseType {
	case DatabaseSQLite, DatabasePostgres, DatabaseMemory:
	default:
		return Config{}, errors.New("DATABASE_TYPE must be one of: sqlite, postgres, memory")
	}

	cfg.DatabaseURL = firstSet(cfg.DatabaseURL, os.Getenv("DATABASE_URL"), file.DatabaseURL)
	if cfg.DatabaseURL == "" {
		switch cfg.DatabaseType {
		case DatabaseSQLite:
			cfg.DatabaseURL = "file:toast.db"
		case DatabasePostgres:
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	}

	cfg.BaseURL = firstSet(cfg.BaseURL, os.Getenv("BASE_URL"), file.BaseURL, "http://localhost:"+strconv.Itoa(cfg.Port))
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	cfg.LogLevel = firstSet(cfg.LogLevel, os.Getenv("LOG_LEVEL"), file.LogLevel, "info")

	// Secrets - MUST be provided
	cfg.AuthSecret = firstSet(cfg.AuthSecret, os.Getenv("AUTH_SECRET"), file.AuthSecret)
	if cfg.AuthSecret == "" {
		return Config{}, errors.New("AUTH_SECRET required")
	}

	return cfg, nil
}
