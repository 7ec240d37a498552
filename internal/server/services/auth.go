// Package services contains server-side business logic. AuthService handles
// the membership account use cases: sign-up, sign-in, password change and
// cancellation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gymfitness/membership/internal/common"
	"github.com/gymfitness/membership/internal/dbx"
	"github.com/gymfitness/membership/internal/logging"
	"github.com/gymfitness/membership/internal/server/auth"
	"github.com/gymfitness/membership/internal/server/models"
	"github.com/gymfitness/membership/internal/server/repositories/repomanager"
)

// PasswordHasher is the one-way credential hasher.
type PasswordHasher interface {
	Hash(password string) ([]byte, error)
	Verify(password string, hash []byte) (bool, error)
}

// TokenIssuer signs and validates session tokens.
type TokenIssuer interface {
	Issue(claims auth.Claims) (string, error)
	Parse(token string) (*auth.Claims, error)
}

// SignUpInput carries the registration form. Level is optional; see
// models.ResolveLevelName for how it is interpreted.
type SignUpInput struct {
	FirstName  string
	Surname    string
	Email      string
	Password   string
	BankNo     string
	ClearingNo string
	Level      string
}

// SignInResult is the session token plus the identity summary it encodes.
type SignInResult struct {
	Token     string
	UserID    string
	FirstName string
	Surname   string
	Email     string
	Levels    []string
}

// AuthService holds no mutable state; every call goes to the store.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenIssuer
	logger      logging.Logger
	newID       func() string
}

// NewAuthService constructs an AuthService over the given collaborators.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, tokens TokenIssuer, logger logging.Logger) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger.With("module", "auth_service"),
		newID:       uuid.NewString,
	}
}

// SignUp registers a member with exactly one level and a billing record.
// The email check runs before any write; a concurrent registration that
// slips past it is caught by the unique index and reported the same way.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*models.User, error) {
	exists, err := s.repomanager.Users(s.db).ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, common.ErrEmailAlreadyInUse
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           s.newID(),
		FirstName:    in.FirstName,
		Surname:      in.Surname,
		Email:        in.Email,
		PasswordHash: hash,
	}
	levelName := models.ResolveLevelName(in.Level)

	err = dbx.WithTx(ctx, s.db, dbx.ReadCommitted, func(ctx context.Context, tx dbx.DBTX) error {
		level, err := s.repomanager.Levels(tx).FindByName(ctx, levelName)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return fmt.Errorf("%w: %s", common.ErrLevelNotConfigured, levelName)
			}
			return fmt.Errorf("error finding level: %w", err)
		}
		user.Level = *level

		if _, err := s.repomanager.Users(tx).Create(ctx, user); err != nil {
			if errors.Is(err, common.ErrorConflict) {
				return common.ErrEmailAlreadyInUse
			}
			return fmt.Errorf("error creating user: %w", err)
		}

		billing := &models.Billing{UserID: user.ID, BankNo: in.BankNo, ClearingNo: in.ClearingNo}
		if err := s.repomanager.Billings(tx).Create(ctx, billing); err != nil {
			return fmt.Errorf("error creating billing: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorMisconfiguration) {
			s.logger.Error(ctx, "level catalog is incomplete", "level", levelName, "error", err)
		}
		return nil, err
	}

	s.logger.Info(ctx, "member registered", "user_id", user.ID, "level", levelName)
	return user, nil
}

// SignIn checks the cancelled flag before touching the password so that a
// cancelled account never reveals whether the password was right.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	user, err := s.findUser(ctx, s.db, email)
	if err != nil {
		return nil, err
	}

	if user.Cancelled {
		s.logger.Info(ctx, "sign-in refused for cancelled account", "user_id", user.ID)
		return nil, common.ErrAccountCancelled
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	levels := user.LevelNames()
	token, err := s.tokens.Issue(auth.Claims{
		UserID:    user.ID,
		FirstName: user.FirstName,
		Surname:   user.Surname,
		Email:     user.Email,
		Levels:    levels,
	})
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	s.logger.Info(ctx, "member signed in", "user_id", user.ID)
	return &SignInResult{
		Token:     token,
		UserID:    user.ID,
		FirstName: user.FirstName,
		Surname:   user.Surname,
		Email:     user.Email,
		Levels:    levels,
	}, nil
}

// ChangePassword overwrites the stored hash. It does not ask for the current
// password or a session: any caller knowing a registered email can use it.
func (s *AuthService) ChangePassword(ctx context.Context, email, newPassword string) error {
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	var userID string
	err = dbx.WithTx(ctx, s.db, dbx.ReadCommitted, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.findUser(ctx, tx, email)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
		userID = user.ID
		return s.update(ctx, tx, user)
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "password changed", "user_id", userID)
	return nil
}

// Cancel marks the membership cancelled. Cancelling twice is not an error
// and there is no way back.
func (s *AuthService) Cancel(ctx context.Context, email string) error {
	var userID string
	err := dbx.WithTx(ctx, s.db, dbx.ReadCommitted, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.findUser(ctx, tx, email)
		if err != nil {
			return err
		}
		user.Cancelled = true
		userID = user.ID
		return s.update(ctx, tx, user)
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "membership cancelled", "user_id", userID)
	return nil
}

// Authenticate validates a session token and returns its claims.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		s.logger.Debug(ctx, "token rejected", "error", err)
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// --- helpers below ---

func (s *AuthService) findUser(ctx context.Context, db dbx.DBTX, email string) (*models.User, error) {
	user, err := s.repomanager.Users(db).GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	return user, nil
}

func (s *AuthService) update(ctx context.Context, tx dbx.DBTX, user *models.User) error {
	if err := s.repomanager.Users(tx).Update(ctx, user); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrUserNotFound
		}
		return fmt.Errorf("error updating user: %w", err)
	}
	return nil
}
