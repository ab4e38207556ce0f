// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and session token issuance.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/repomanager"
)

// Hasher is the context-aware hashing front end, normally an *auth.HashPool.
type Hasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, digest string) (bool, error)
}

type TokenIssuer interface {
	Issue(in auth.ClaimsInput) (string, error)
}

// Session is the result of a successful register or login.
type Session struct {
	User  *models.User
	Token string
}

// Identity is what a token says about its bearer.
type Identity struct {
	ID       string  `json:"userid"`
	Username string  `json:"username"`
	Email    *string `json:"email"`
}

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint tokens
// - Me: describe the caller
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      Hasher
	tokens      TokenIssuer
	logger      logging.Logger

	// dummyDigest is verified against when the user does not exist.
	dummyDigest string
}

// NewUserService builds the service and hashes the digest used for unknown
// users up front, so no request context can leave it unset.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher Hasher, tokens TokenIssuer, logger logging.Logger) (*UserService, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	dummy, err := hasher.Hash(context.Background(), "notekeeper-unknown-user")
	if err != nil {
		return nil, fmt.Errorf("error hashing dummy digest: %w", err)
	}

	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger,
		dummyDigest: dummy,
	}, nil
}

// Register creates a user and signs them in. The username is checked before
// any hashing work is spent on it.
func (s *UserService) Register(ctx context.Context, username, password string, email *string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}
	if email != nil && strings.TrimSpace(*email) == "" {
		email = nil
	}

	repo := s.repomanager.Users(s.db)

	exists, err := repo.Exists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error checking user: %w", err)
	}
	if exists {
		return nil, common.ErrorAlreadyExists
	}

	digest, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	u, err := repo.Create(ctx, &models.User{UserName: username, PasswordDigest: digest, Email: email})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return s.session(u)
}

// Login checks the password of userName and returns a fresh session. Unknown
// users, wrong passwords and unreadable digests all yield
// common.ErrorUnauthorized after the same amount of hashing work.
func (s *UserService) Login(ctx context.Context, userName, password string) (*Session, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByLogin(ctx, strings.TrimSpace(userName))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_, _ = s.hasher.Verify(ctx, password, s.dummyDigest)
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	ok, err := s.hasher.Verify(ctx, password, user.PasswordDigest)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warn(ctx, "stored digest unreadable", "user_id", user.ID, "error", err)
		return nil, common.ErrorUnauthorized
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	return s.session(user)
}

func (s *UserService) Me(claims *auth.Claims) Identity {
	return Identity{ID: claims.UserID, Username: claims.Username, Email: claims.Email}
}

func (s *UserService) session(u *models.User) (*Session, error) {
	token, err := s.tokens.Issue(auth.ClaimsInput{SubjectID: u.ID, Username: u.UserName, Email: u.Email})
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}
	return &Session{User: u, Token: token}, nil
}
