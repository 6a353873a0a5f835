// Package config loads runtime configuration for the credkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config (see parseJson).
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   database DSN: SQLite file path or postgres:// URL
//	-l string   log level (debug, info, warn, error)
//	-n int      minimum password length
//	-digit      require at least one digit (use -digit=false to disable)
//	-upper      require at least one uppercase letter
//	-lower      require at least one lowercase letter
//	-special    require at least one special character
//	-am int     Argon2 memory cost in KiB
//	-at int     Argon2 time cost (passes)
//	-ap int     Argon2 parallelism (lanes)
//
// # JSON schema
//
//	{
//	  "database_dsn": "users.db",
//	  "log_level": "warn",
//	  "min_password_length": 8,
//	  "require_digit": true,
//	  "require_uppercase": false,
//	  "require_lowercase": false,
//	  "require_special": false,
//	  "argon2_memory": 19456,
//	  "argon2_time": 2,
//	  "argon2_parallelism": 1
//	}
//
// Fields absent from the JSON file keep their previous values. Call
// (*Config).Validate before using a loaded Config.
package config
