package config

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "dsn and level", args: []string{"cmd", "-d", "/tmp/u.db", "-l", "debug"},
			expected: &Config{DatabaseDSN: "/tmp/u.db", LogLevel: "debug"}},
		{name: "policy flags", args: []string{"cmd", "-n", "12", "-upper", "-special", "-digit=false"},
			expected: &Config{MinPasswordLength: 12, RequireUppercase: true, RequireSpecial: true}},
		{name: "argon2 costs", args: []string{"cmd", "-am", "65536", "-at", "3", "-ap", "4"},
			expected: &Config{Argon2Memory: 65536, Argon2Time: 3, Argon2Parallelism: 4}},
		{name: "unknown flags ignored", args: []string{"cmd", "-x", "1", "-c", "cfg.json", "-d", "pg.db"},
			expected: &Config{DatabaseDSN: "pg.db"}},
		{name: "bad min length", args: []string{"cmd", "-n", "abc"}, expectPanic: true},
		{name: "lanes overflow uint8", args: []string{"cmd", "-ap", "257"}, expectPanic: true},
		{name: "memory overflows uint32", args: []string{"cmd", "-am", "4294975488"}, expectPanic: true},
		{name: "passes overflow uint32", args: []string{"cmd", "-at", "4294967297"}, expectPanic: true},
		{name: "negative memory", args: []string{"cmd", "-am", "-5"}, expectPanic: true},
		{name: "largest lanes value", args: []string{"cmd", "-ap", "255"},
			expected: &Config{Argon2Parallelism: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(tt.expected, config))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

func TestParseFlags_KeepsPreviousValues(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"cmd", "-n", "10"}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, 10, c.MinPasswordLength)
	assert.Equal(t, "users.db", c.DatabaseDSN)
	assert.True(t, c.RequireDigit)
	assert.Equal(t, uint32(19456), c.Argon2Memory)
}
