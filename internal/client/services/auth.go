// Package services contains the application services behind the rpgkeeper
// CLI. AuthService handles accounts and the saved session; CharacterService
// turns server envelopes into values and typed errors.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/rpgkeeper/internal/client/client"
	"github.com/dmitrijs2005/rpgkeeper/internal/client/models"
	"github.com/dmitrijs2005/rpgkeeper/internal/client/repositories/session"
	"github.com/dmitrijs2005/rpgkeeper/internal/common"
)

// AuthService defines authentication operations for the CLI.
//
// Login stores the issued token in the local session database so the next
// start of the CLI can reuse it through RestoreSession. Logout forgets it.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) (*models.Session, error)
	ResetPassword(ctx context.Context, username string, oldPassword, newPassword []byte) error
	RestoreSession(ctx context.Context, token string) (*models.Session, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
	server string
}

var timeNow = time.Now

// NewAuthService binds the service to an API client and the local session
// database. server keys the saved session.
func NewAuthService(c client.Client, db *sql.DB, server string) AuthService {
	return &authService{client: c, db: db, server: server}
}

func (a *authService) sessions() session.Repository {
	return session.NewSQLiteRepository(a.db)
}

func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	res, err := a.client.Register(ctx, username, string(password))
	if err != nil {
		return err
	}
	if !res.Success {
		return newRemoteError(res.Outcome, res.Message)
	}
	return nil
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (*models.Session, error) {
	res, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	if !res.Success {
		return nil, newRemoteError(res.Outcome, res.Message)
	}

	s := &models.Session{Server: a.server, UserName: username, Token: res.Data, SavedAt: timeNow()}
	if err := a.sessions().Save(ctx, s); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return s, nil
}

func (a *authService) ResetPassword(ctx context.Context, username string, oldPassword, newPassword []byte) error {
	res, err := a.client.ResetPassword(ctx, username, string(oldPassword), string(newPassword))
	if err != nil {
		return err
	}
	if !res.Success {
		return newRemoteError(res.Outcome, res.Message)
	}
	return nil
}

// RestoreSession activates a previously issued token. An explicit token
// (from -t or the environment) wins over the saved one. It returns
// client.ErrNotLoggedIn when there is nothing to restore.
func (a *authService) RestoreSession(ctx context.Context, token string) (*models.Session, error) {
	if token != "" {
		a.client.SetAccessToken(token)
		return &models.Session{Server: a.server, Token: token}, nil
	}

	s, err := a.sessions().Load(ctx, a.server)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, client.ErrNotLoggedIn
	}
	if err != nil {
		return nil, err
	}
	a.client.SetAccessToken(s.Token)
	return s, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.SetAccessToken("")
	return a.sessions().Delete(ctx, a.server)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
