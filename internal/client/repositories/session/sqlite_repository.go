package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rpgkeeper/internal/client/models"
	"github.com/dmitrijs2005/rpgkeeper/internal/common"
	"github.com/dmitrijs2005/rpgkeeper/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, s *models.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (server, username, token, saved_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(server) DO UPDATE SET
			username = excluded.username,
			token = excluded.token,
			saved_at = excluded.saved_at
	`, s.Server, s.UserName, s.Token, s.SavedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save session for %s: %w", s.Server, err)
	}
	return nil
}

func (r *SQLiteRepository) Load(ctx context.Context, server string) (*models.Session, error) {
	s := &models.Session{Server: server}
	err := r.db.QueryRowContext(ctx,
		`SELECT username, token, saved_at FROM sessions WHERE server = ?`, server,
	).Scan(&s.UserName, &s.Token, &s.SavedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session for %s: %w", server, err)
	}
	return s, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, server string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE server = ?`, server)
	if err != nil {
		return fmt.Errorf("failed to delete session for %s: %w", server, err)
	}
	return nil
}
