// Package session stores the CLI's saved logins in a local SQLite database.
package session

import (
	"context"

	"github.com/dmitrijs2005/rpgkeeper/internal/client/models"
)

// Repository keeps at most one session per server address.
type Repository interface {
	// Save inserts or replaces the session for s.Server.
	Save(ctx context.Context, s *models.Session) error

	// Load returns common.ErrorNotFound when nothing is saved for server.
	Load(ctx context.Context, server string) (*models.Session, error)

	Delete(ctx context.Context, server string) error
}
