// Package cli provides the interactive credkeeper command-line tool.
//
// It wires configuration, the credential database, the password policy, the
// Argon2id hasher and AuthService, then runs a small REPL:
//
//   - register / login / logout
//   - users (list registered accounts) and stats
//   - help, exit | quit
//
// Passwords are read without echo and wiped after each command.
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
