package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/credkeeper/internal/config"
	"github.com/dmitrijs2005/credkeeper/internal/cryptox"
	"github.com/dmitrijs2005/credkeeper/internal/filex"
	"github.com/dmitrijs2005/credkeeper/internal/logging"
	"github.com/dmitrijs2005/credkeeper/internal/models"
	"github.com/dmitrijs2005/credkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/credkeeper/internal/services"
	"github.com/dmitrijs2005/credkeeper/internal/validation"
)

// AuthService is the subset of services.AuthService used by the CLI.
type AuthService interface {
	Register(ctx context.Context, userName string, password []byte) error
	Login(ctx context.Context, userName string, password []byte) services.AuthResult
	ListUsers(ctx context.Context) ([]models.UserInfo, error)
	Stats(ctx context.Context) (*services.Stats, error)
}

type App struct {
	db          *sql.DB
	authService AuthService
	logger      logging.Logger
	userName    string
	reader      *bufio.Reader
	out         io.Writer
}

// NewApp validates c, opens the database named by c.DatabaseDSN (creating
// the directory of a SQLite file and running migrations) and builds the
// services. The returned App owns the database
// handle; Run closes it.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.NewTextLogger(os.Stderr, c.LogLevel)
	if err != nil {
		return nil, err
	}

	hasher, err := cryptox.NewArgon2Hasher(c.Argon2Params())
	if err != nil {
		return nil, err
	}

	if !repomanager.IsPostgresDSN(c.DatabaseDSN) && !strings.HasPrefix(c.DatabaseDSN, "file:") {
		if err := filex.EnsureParentDir(c.DatabaseDSN); err != nil {
			return nil, fmt.Errorf("error preparing database directory: %w", err)
		}
	}

	db, m, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	v := validation.NewValidator(c.PasswordPolicy())
	as := services.NewAuthService(db, m, v, hasher, logger)

	return &App{
		db:          db,
		authService: as,
		logger:      logger,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run starts the REPL on stdin and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if a.db != nil {
			if err := a.db.Close(); err != nil {
				a.logger.Warn(ctx, "error closing database", "error", err)
			}
		}
	}()

	printlnFn("Welcome to credkeeper (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}
