package config

import (
	"fmt"

	"github.com/dmitrijs2005/credkeeper/internal/cryptox"
	"github.com/dmitrijs2005/credkeeper/internal/validation"
	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings for the credkeeper CLI.
type Config struct {
	DatabaseDSN       string `validate:"required"`
	LogLevel          string `validate:"oneof=debug info warn error"`
	MinPasswordLength int    `validate:"gte=1,lte=1024"`
	RequireDigit      bool
	RequireUppercase  bool
	RequireLowercase  bool
	RequireSpecial    bool
	Argon2Memory      uint32 `validate:"gte=8192,lte=1048576"`
	Argon2Time        uint32 `validate:"gte=1,lte=64"`
	Argon2Parallelism uint8  `validate:"gte=1,lte=64"`
}

// LoadDefaults populates c with the default policy and hashing costs.
func (c *Config) LoadDefaults() {
	policy := validation.DefaultPolicy()
	params := cryptox.DefaultArgon2Params()

	c.DatabaseDSN = "users.db"
	c.LogLevel = "warn"
	c.MinPasswordLength = policy.MinLength
	c.RequireDigit = policy.RequireDigit
	c.RequireUppercase = policy.RequireUppercase
	c.RequireLowercase = policy.RequireLowercase
	c.RequireSpecial = policy.RequireSpecial
	c.Argon2Memory = params.Memory
	c.Argon2Time = params.Time
	c.Argon2Parallelism = params.Parallelism
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field ranges.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// PasswordPolicy returns the validation policy described by c.
func (c *Config) PasswordPolicy() validation.Policy {
	return validation.Policy{
		MinLength:        c.MinPasswordLength,
		RequireDigit:     c.RequireDigit,
		RequireUppercase: c.RequireUppercase,
		RequireLowercase: c.RequireLowercase,
		RequireSpecial:   c.RequireSpecial,
	}
}

// Argon2Params returns the hashing parameters described by c. Salt and key
// lengths are not configurable.
func (c *Config) Argon2Params() cryptox.Argon2Params {
	p := cryptox.DefaultArgon2Params()
	p.Memory = c.Argon2Memory
	p.Time = c.Argon2Time
	p.Parallelism = c.Argon2Parallelism
	return p
}
