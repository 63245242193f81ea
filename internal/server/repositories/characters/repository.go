// Package characters holds the persistence contract for character records
// and its PostgreSQL implementation.
package characters

import (
	"context"

	"github.com/dmitrijs2005/rpgkeeper/internal/server/models"
)

// Repository operations that target a single id return common.ErrorNotFound
// when the row does not exist.
type Repository interface {
	Create(ctx context.Context, c *models.Character) (*models.Character, error)
	List(ctx context.Context) ([]*models.Character, error)
	GetByID(ctx context.Context, id int64) (*models.Character, error)
	Update(ctx context.Context, c *models.Character) error
	Delete(ctx context.Context, id int64) error
	SetPortraitKey(ctx context.Context, id int64, key string) error
}
