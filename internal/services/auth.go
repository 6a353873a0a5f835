// Package services contains the credential business logic. AuthService ties
// together password policy, hashing and the users repository to register
// accounts and check logins.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/credkeeper/internal/common"
	"github.com/dmitrijs2005/credkeeper/internal/dbx"
	"github.com/dmitrijs2005/credkeeper/internal/logging"
	"github.com/dmitrijs2005/credkeeper/internal/models"
	"github.com/dmitrijs2005/credkeeper/internal/repositories/repomanager"
)

var (
	ErrHashingFailed = fmt.Errorf("%w: password hashing failed", common.ErrorInternal)
	ErrStorageFailed = fmt.Errorf("%w: credential storage failed", common.ErrorInternal)
)

// PasswordValidator checks a candidate username and password against policy.
type PasswordValidator interface {
	Validate(userName string, password []byte) error
}

// PasswordHasher derives and verifies encoded password hashes.
type PasswordHasher interface {
	Hash(password []byte) (string, error)
	Verify(password []byte, encoded string) (bool, error)
}

// AuthResult is the outcome of a login attempt. Failures carry no cause.
type AuthResult int

const (
	AuthFailure AuthResult = iota
	AuthSuccess
)

func (r AuthResult) String() string {
	if r == AuthSuccess {
		return "success"
	}
	return "failure"
}

// Stats summarizes the stored accounts.
type Stats struct {
	TotalUsers int
	// LatestUser is the most recently registered username, empty when there
	// are no users.
	LatestUser string
}

// AuthService registers users and authenticates them.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validator   PasswordValidator
	hasher      PasswordHasher
	logger      logging.Logger

	dummyMu   sync.Mutex
	dummyHash string
}

// NewAuthService constructs an AuthService over db using the given
// collaborators.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, v PasswordValidator, h PasswordHasher, logger logging.Logger) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		validator:   v,
		hasher:      h,
		logger:      logger,
	}
}

// Register validates the credentials, hashes the password and stores a new
// user. It returns a validation error (wrapping common.ErrorValidation),
// common.ErrorAlreadyExists, ErrHashingFailed or ErrStorageFailed.
//
// The caller owns password and is responsible for wiping it.
func (s *AuthService) Register(ctx context.Context, userName string, password []byte) error {
	if err := s.validator.Validate(userName, password); err != nil {
		return err
	}

	repo := s.repomanager.Users(s.db)
	_, err := repo.GetUserByLogin(ctx, userName)
	switch {
	case err == nil:
		return common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Error(ctx, "user lookup failed", "op", "register", "error", err)
		return ErrStorageFailed
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "op", "register", "error", err)
		return ErrHashingFailed
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := s.repomanager.Users(tx).Create(ctx, &models.User{UserName: userName, PasswordHash: hash})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "user insert failed", "op", "register", "error", err)
		return ErrStorageFailed
	}

	s.logger.Info(ctx, "user registered", "user", userName)
	return nil
}

// Login reports whether password matches the stored credential of userName.
// Unknown users, wrong passwords and internal errors all yield AuthFailure;
// internal errors are logged.
func (s *AuthService) Login(ctx context.Context, userName string, password []byte) AuthResult {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.burnVerify(ctx, password)
			return AuthFailure
		}
		s.logger.Error(ctx, "user lookup failed", "op", "login", "error", err)
		return AuthFailure
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.logger.Error(ctx, "stored credential could not be verified", "op", "login", "user", userName, "error", err)
		return AuthFailure
	}
	if !ok {
		s.logger.Debug(ctx, "password mismatch", "user", userName)
		return AuthFailure
	}
	return AuthSuccess
}

// burnVerify runs a verification against a throwaway hash so that unknown
// usernames cost about as much as wrong passwords.
func (s *AuthService) burnVerify(ctx context.Context, password []byte) {
	dummy, err := s.dummy()
	if err != nil {
		s.logger.Warn(ctx, "dummy hash unavailable", "error", err)
		return
	}
	_, _ = s.hasher.Verify(password, dummy)
}

// dummy returns the throwaway hash, building it on first use. A failed build
// is retried on the next call.
func (s *AuthService) dummy() (string, error) {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()

	if s.dummyHash != "" {
		return s.dummyHash, nil
	}

	seed := common.GenerateRandByteArray(16)
	defer common.WipeByteArray(seed)

	h, err := s.hasher.Hash(seed)
	if err != nil {
		return "", err
	}
	s.dummyHash = h
	return h, nil
}

// ListUsers returns all usernames with their registration time, ordered by
// username.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.UserInfo, error) {
	list, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		s.logger.Error(ctx, "user listing failed", "error", err)
		return nil, ErrStorageFailed
	}
	return list, nil
}

// Stats returns the number of users and the most recently registered one.
func (s *AuthService) Stats(ctx context.Context) (*Stats, error) {
	list, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	st := &Stats{TotalUsers: len(list)}
	var latest time.Time
	for _, u := range list {
		if st.LatestUser == "" || u.CreatedAt.After(latest) {
			st.LatestUser = u.UserName
			latest = u.CreatedAt
		}
	}
	return st, nil
}
