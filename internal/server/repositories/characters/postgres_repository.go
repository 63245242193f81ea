package characters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rpgkeeper/internal/common"
	"github.com/dmitrijs2005/rpgkeeper/internal/dbx"
	"github.com/dmitrijs2005/rpgkeeper/internal/server/models"
)

const columns = `id, name, hit_points, strength, defense, intelligence, class, user_id, portrait_key`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCharacter(s rowScanner) (*models.Character, error) {
	c := &models.Character{}
	var userID sql.NullInt64
	err := s.Scan(&c.ID, &c.Name, &c.HitPoints, &c.Strength, &c.Defense, &c.Intelligence, &c.Class, &userID, &c.PortraitKey)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		id := userID.Int64
		c.UserID = &id
	}
	return c, nil
}

func nullableUserID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Character) (*models.Character, error) {

	query :=
		`INSERT INTO characters (name, hit_points, strength, defense, intelligence, class, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		c.Name, c.HitPoints, c.Strength, c.Defense, c.Intelligence, c.Class, nullableUserID(c.UserID)).Scan(&c.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Character, error) {
	query := `SELECT ` + columns + ` FROM characters ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Character, 0)
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Character, error) {
	query := `SELECT ` + columns + ` FROM characters WHERE id = $1`

	c, err := scanCharacter(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) Update(ctx context.Context, c *models.Character) error {
	query :=
		`UPDATE characters
		 SET name = $2, hit_points = $3, strength = $4, defense = $5, intelligence = $6, class = $7
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.HitPoints, c.Strength, c.Defense, c.Intelligence, c.Class)
	return affectedOne(res, err)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM characters WHERE id = $1`, id)
	return affectedOne(res, err)
}

func (r *PostgresRepository) SetPortraitKey(ctx context.Context, id int64, key string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE characters SET portrait_key = $2 WHERE id = $1`, id, key)
	return affectedOne(res, err)
}

// affectedOne turns "no rows touched" into common.ErrorNotFound.
func affectedOne(res sql.Result, err error) error {
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
