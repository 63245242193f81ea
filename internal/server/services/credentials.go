package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rpgkeeper/internal/common"
	"github.com/dmitrijs2005/rpgkeeper/internal/dbx"
	"github.com/dmitrijs2005/rpgkeeper/internal/logging"
	"github.com/dmitrijs2005/rpgkeeper/internal/server/auth"
	"github.com/dmitrijs2005/rpgkeeper/internal/server/models"
	"github.com/dmitrijs2005/rpgkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/rpgkeeper/internal/server/repositories/users"
)

// TokenIssuer signs the token handed out on a successful login.
type TokenIssuer interface {
	Issue(userID int64, userName string) (string, error)
}

// CredentialManager provides the account operations:
// - Register: create a user with a salted password hash
// - Login: verify a password and issue a token
// - ResetPassword: replace the password after checking the old one
type CredentialManager struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      TokenIssuer
	logger      logging.Logger
}

// NewCredentialManager wires a CredentialManager. A nil logger discards output.
func NewCredentialManager(db *sql.DB, m repomanager.RepositoryManager, tokens TokenIssuer, logger logging.Logger) *CredentialManager {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &CredentialManager{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		logger:      logger.With("module", "credentials"),
	}
}

// UserExists reports whether a user with this name exists, ignoring case.
func (s *CredentialManager) UserExists(ctx context.Context, username string) (bool, error) {
	return s.userExists(ctx, s.repomanager.Users(s.db), username)
}

func (s *CredentialManager) userExists(ctx context.Context, repo users.Repository, username string) (bool, error) {
	exists, err := repo.Exists(ctx, username)
	if err != nil {
		return false, fmt.Errorf("error checking user: %w", err)
	}
	return exists, nil
}

// Register creates a user and returns its id. An existing username, in any
// case, yields a Duplicate failure and creates nothing.
func (s *CredentialManager) Register(ctx context.Context, username, password string) (*ServiceResult[int64], error) {
	var result *ServiceResult[int64]

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		exists, err := s.userExists(ctx, repo, username)
		if err != nil {
			return err
		}
		if exists {
			result = fail[int64](OutcomeDuplicate, MsgUserAlreadyExists)
			return nil
		}

		ph, err := auth.HashPassword(password)
		if err != nil {
			return err
		}

		u, err := repo.Create(ctx, &models.User{
			UserName:     username,
			PasswordHash: ph.Hash,
			PasswordSalt: ph.Salt,
		})
		if err != nil {
			// a concurrent registration won the unique index; the failed
			// statement aborted the transaction, so roll it back
			if errors.Is(err, common.ErrorAlreadyExists) {
				return err
			}
			return fmt.Errorf("error creating user: %w", err)
		}

		result = ok(u.ID)
		return nil
	})
	if errors.Is(err, common.ErrorAlreadyExists) {
		result, err = fail[int64](OutcomeDuplicate, MsgUserAlreadyExists), nil
	}
	if err != nil {
		return nil, err
	}

	if result.Success {
		s.logger.Info(ctx, "user registered", "user_id", result.Data)
	} else {
		s.logger.Warn(ctx, "registration rejected", "reason", result.Outcome.String())
	}
	return result, nil
}

// Login checks the password and returns a freshly issued token.
func (s *CredentialManager) Login(ctx context.Context, username, password string) (*ServiceResult[string], error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "login rejected", "reason", OutcomeNotFound.String())
			return fail[string](OutcomeNotFound, MsgUserNotFound), nil
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash, user.PasswordSalt) {
		s.logger.Warn(ctx, "login rejected", "reason", OutcomeInvalidPassword.String(), "user_id", user.ID)
		return fail[string](OutcomeInvalidPassword, MsgIncorrectPassword), nil
	}

	token, err := s.tokens.Issue(user.ID, user.UserName)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return ok(token), nil
}

// ResetPassword replaces the stored hash and salt after verifying the old
// password. Hash and salt are written by a single UPDATE.
func (s *CredentialManager) ResetPassword(ctx context.Context, username, oldPassword, newPassword string) (*ServiceResult[int64], error) {
	var result *ServiceResult[int64]

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetUserByLogin(ctx, username)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				result = fail[int64](OutcomeNotFound, MsgResetUserNotFound)
				return nil
			}
			return fmt.Errorf("error searching user: %w", err)
		}

		if !auth.VerifyPassword(oldPassword, user.PasswordHash, user.PasswordSalt) {
			result = fail[int64](OutcomeInvalidPassword, MsgOldPasswordIncorrect)
			return nil
		}

		ph, err := auth.HashPassword(newPassword)
		if err != nil {
			return err
		}

		if err := repo.UpdatePassword(ctx, user.ID, ph.Hash, ph.Salt); err != nil {
			return fmt.Errorf("error updating password: %w", err)
		}

		result = ok(user.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Success {
		s.logger.Info(ctx, "password reset", "user_id", result.Data)
	} else {
		s.logger.Warn(ctx, "password reset rejected", "reason", result.Outcome.String())
	}
	return result, nil
}
