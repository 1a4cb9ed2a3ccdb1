// Package services contains server-side business logic. This file implements
// UserService, which handles registration and login.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/cryptox"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
)

// RegisterInput is the registration form. Password is plaintext and is only
// held until it has been hashed.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UserService provides the authentication flow:
//   - Register: hash the password and store the account
//   - Login: verify credentials and issue an access token
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      cryptox.PasswordHasher
	tokens      auth.TokenIssuer
	tokenTTL    time.Duration

	// verified against for unknown emails so both failure paths cost the same
	dummyHash string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, h cryptox.PasswordHasher, t auth.TokenIssuer, tokenTTL time.Duration) (*UserService, error) {
	dummy, err := h.Hash("todokeeper-timing-equalizer")
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}

	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      h,
		tokens:      t,
		tokenTTL:    tokenTTL,
		dummyHash:   dummy,
	}, nil
}

// Register creates an account. It returns common.ErrorValidation for an
// incomplete form, common.ErrorAlreadyExists for a taken email,
// common.ErrHashing or common.ErrPersistence otherwise. No token is issued.
func (s *UserService) Register(ctx context.Context, in RegisterInput) error {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return fmt.Errorf("%w: name, email and password are required", common.ErrorValidation)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if !errors.Is(err, common.ErrHashing) {
			err = fmt.Errorf("%w: %v", common.ErrHashing, err)
		}
		return err
	}

	user := &models.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.repomanager.Users(s.db).Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("%w: creating user: %w", common.ErrPersistence, err)
	}
	return nil
}

// Login checks the credentials and returns a signed access token for the
// account. Unknown email and wrong password both yield
// common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("%w: reading user: %w", common.ErrPersistence, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(user.Email, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return token, nil
}
