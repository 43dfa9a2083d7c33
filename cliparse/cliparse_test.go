// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("AUTH_SECRET", "test-secret")
	t.Setenv("BASE_URL", "https://toast.example/")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabasePostgres {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.BaseURL != "https://toast.example" {
		t.Errorf("trailing slash should be trimmed, got %s", cfg.BaseURL)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("AUTH_SECRET", "")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-auth-secret", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.AuthSecret != "s1" {
		t.Errorf("expected auth secret from flag, got %q", cfg.AuthSecret)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("BASE_URL", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("AUTH_SECRET", "secret")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabaseSQLite {
		t.Errorf("expected sqlite default, got %s", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != "file:toast.db" {
		t.Errorf("expected default sqlite url, got %s", cfg.DatabaseURL)
	}
	if cfg.BaseURL != "http://localhost:3000" {
		t.Errorf("expected default base url, got %s", cfg.BaseURL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected info log level, got %s", cfg.LogLevel)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "toast.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFlags_ConfigFile(t *testing.T) {
	for _, k := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "BASE_URL", "LOG_LEVEL", "AUTH_SECRET", "CONFIG_FILE"} {
		t.Setenv(k, "")
	}

	path := writeConfig(t, `
port: 4100
database_type: postgres
database_url: postgres://file/toast
auth_secret: from-file
base_url: https://events.example/
log_level: debug
`)

	t.Run("file fills everything", func(t *testing.T) {
		cfg, err := ParseFlags([]string{"-config", path})
		if err != nil {
			t.Fatal(err)
		}

		if cfg.Port != 4100 || cfg.DatabaseType != DatabasePostgres || cfg.DatabaseURL != "postgres://file/toast" {
			t.Errorf("unexpected config from file: %+v", cfg)
		}
		if cfg.AuthSecret != "from-file" || cfg.LogLevel != "debug" {
			t.Errorf("unexpected config from file: %+v", cfg)
		}
		if cfg.BaseURL != "https://events.example" {
			t.Errorf("expected trimmed base url, got %s", cfg.BaseURL)
		}
	})

	t.Run("env and flags win over file", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", path)
		t.Setenv("LOG_LEVEL", "warn")

		cfg, err := ParseFlags([]string{"-p", "5000", "-t", "memory"})
		if err != nil {
			t.Fatal(err)
		}

		if cfg.Port != 5000 || cfg.DatabaseType != DatabaseMemory || cfg.LogLevel != "warn" {
			t.Errorf("precedence wrong: %+v", cfg)
		}
		if cfg.AuthSecret != "from-file" {
			t.Errorf("secret should still come from file, got %q", cfg.AuthSecret)
		}
	})
}

func TestParseFlags_Errors(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	malformed := writeConfig(t, "port: [not a number")

	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{
			name: "missing auth secret",
			env:  map[string]string{"AUTH_SECRET": "", "DATABASE_TYPE": "memory"},
		},
		{
			name: "postgres without url",
			env:  map[string]string{"AUTH_SECRET": "s", "DATABASE_TYPE": "postgres", "DATABASE_URL": ""},
		},
		{
			name: "unknown database type",
			env:  map[string]string{"AUTH_SECRET": "s"},
			args: []string{"-t", "mysql"},
		},
		{
			name: "invalid port env",
			env:  map[string]string{"AUTH_SECRET": "s", "PORT": "abc"},
		},
		{
			name: "missing config file",
			env:  map[string]string{"AUTH_SECRET": "s"},
			args: []string{"-config", "/nonexistent/toast.yaml"},
		},
		{
			name: "malformed config file",
			env:  map[string]string{"AUTH_SECRET": "s"},
			args: []string{"-config", malformed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
