package config

import (
	"flag"
	"os"
	"strconv"

	"github.com/dmitrijs2005/credkeeper/internal/flagx"
)

// parseFlags populates cfg from the command-line flags listed in the package
// documentation. Unknown arguments are filtered out with flagx.FilterArgs;
// malformed values panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-d", "-l", "-n", "-am", "-at", "-ap"},
		"-digit", "-upper", "-lower", "-special")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN (SQLite path or postgres:// URL)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.IntVar(&cfg.MinPasswordLength, "n", cfg.MinPasswordLength, "minimum password length")
	fs.BoolVar(&cfg.RequireDigit, "digit", cfg.RequireDigit, "require a digit in passwords")
	fs.BoolVar(&cfg.RequireUppercase, "upper", cfg.RequireUppercase, "require an uppercase letter in passwords")
	fs.BoolVar(&cfg.RequireLowercase, "lower", cfg.RequireLowercase, "require a lowercase letter in passwords")
	fs.BoolVar(&cfg.RequireSpecial, "special", cfg.RequireSpecial, "require a special character in passwords")

	uintVar(fs, &cfg.Argon2Memory, 32, "am", "argon2 memory cost (KiB)")
	uintVar(fs, &cfg.Argon2Time, 32, "at", "argon2 time cost")
	uintVar(fs, &cfg.Argon2Parallelism, 8, "ap", "argon2 parallelism")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}

// uintVar defines a flag parsed at the given bit width, so values that do
// not fit dst fail instead of wrapping.
func uintVar[T uint8 | uint32](fs *flag.FlagSet, dst *T, bits int, name, usage string) {
	fs.Func(name, usage, func(s string) error {
		n, err := strconv.ParseUint(s, 10, bits)
		if err != nil {
			return err
		}
		*dst = T(n)
		return nil
	})
}
