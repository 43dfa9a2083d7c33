// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3000)
  - DatabaseType: sqlite (default), postgres or memory
  - DatabaseURL: Connection string (required for postgres, sqlite defaults to file:toast.db)
  - AuthSecret: Secret for bearer token HMAC (required)
  - BaseURL: Public URL used to build share links
  - LogLevel: debug, info, warn or error
  - ConfigFile: optional YAML file with the same settings
  - IssueToken: uid:email[:name], prints a signed token and exits

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	--base-url     Public base URL
	--log-level    Log level
	--auth-secret  Token signing secret
	--config       YAML config file
	--issue-token  Print a token and exit

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	BASE_URL      → --base-url
	LOG_LEVEL     → --log-level
	AUTH_SECRET   → --auth-secret
	CONFIG_FILE   → --config

# Config File

The YAML file (gopkg.in/yaml.v3) uses snake_case keys:

	port: 3000
	database_type: postgres
	database_url: postgres://...
	auth_secret: ...
	base_url: https://toast.example
	log_level: info

CLI flags take precedence over environment variables, which take precedence
over the config file. main loads a .env file
with github.com/joho/godotenv before calling ParseFlags, so the variables can
also live there.
*/
package cliparse
