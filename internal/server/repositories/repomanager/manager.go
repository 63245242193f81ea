package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/rpgkeeper/internal/dbx"
	"github.com/dmitrijs2005/rpgkeeper/internal/server/repositories/characters"
	"github.com/dmitrijs2005/rpgkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a *sql.DB or a *sql.Tx, so
// services can run the same repository code inside dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Characters(db dbx.DBTX) characters.Repository
}
