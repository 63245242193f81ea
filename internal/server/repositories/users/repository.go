// Package users holds the persistence contract for user accounts and its
// PostgreSQL implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/rpgkeeper/internal/server/models"
)

// Repository matches usernames case-insensitively everywhere.
type Repository interface {
	// Create inserts user and fills in ID and CreatedAt. A username clash
	// yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByLogin returns common.ErrorNotFound when no user matches.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)

	Exists(ctx context.Context, login string) (bool, error)

	// UpdatePassword replaces hash and salt together. Unknown id yields
	// common.ErrorNotFound.
	UpdatePassword(ctx context.Context, userID int64, hash, salt []byte) error
}
