package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/credkeeper/internal/flagx"
)

// JsonConfig is the DTO used for JSON unmarshalling. Pointer fields tell an
// absent key apart from an explicit zero or false.
type JsonConfig struct {
	DatabaseDSN       *string `json:"database_dsn"`
	LogLevel          *string `json:"log_level"`
	MinPasswordLength *int    `json:"min_password_length"`
	RequireDigit      *bool   `json:"require_digit"`
	RequireUppercase  *bool   `json:"require_uppercase"`
	RequireLowercase  *bool   `json:"require_lowercase"`
	RequireSpecial    *bool   `json:"require_special"`
	Argon2Memory      *uint32 `json:"argon2_memory"`
	Argon2Time        *uint32 `json:"argon2_time"`
	Argon2Parallelism *uint8  `json:"argon2_parallelism"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
// It does nothing when no file is given and panics on read or decode errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.applyTo(cfg)
}

func (jc *JsonConfig) applyTo(cfg *Config) {
	set(&cfg.DatabaseDSN, jc.DatabaseDSN)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.MinPasswordLength, jc.MinPasswordLength)
	set(&cfg.RequireDigit, jc.RequireDigit)
	set(&cfg.RequireUppercase, jc.RequireUppercase)
	set(&cfg.RequireLowercase, jc.RequireLowercase)
	set(&cfg.RequireSpecial, jc.RequireSpecial)
	set(&cfg.Argon2Memory, jc.Argon2Memory)
	set(&cfg.Argon2Time, jc.Argon2Time)
	set(&cfg.Argon2Parallelism, jc.Argon2Parallelism)
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
