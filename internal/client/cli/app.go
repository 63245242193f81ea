package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/rpgkeeper/internal/client/client"
	"github.com/dmitrijs2005/rpgkeeper/internal/client/config"
	"github.com/dmitrijs2005/rpgkeeper/internal/client/services"
	"github.com/dmitrijs2005/rpgkeeper/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config           *config.Config
	authService      services.AuthService
	characterService services.CharacterService
	logger           logging.Logger
	db               io.Closer

	userName string
	loggedIn bool

	mu   sync.Mutex
	mode Mode

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the session database and the server connection.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, "info")

	db, err := client.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}

	apiClient, err := client.NewRPGKeeperClient(c.ServerEndpointAddr)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &App{
		config:           c,
		authService:      services.NewAuthService(apiClient, db, c.ServerEndpointAddr),
		characterService: services.NewCharacterService(apiClient),
		logger:           logger,
		db:               db,
		reader:           bufio.NewReader(os.Stdin),
		out:              os.Stdout,
	}, nil
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "connection mode changed", "mode", string(mode))
	}
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if m := a.currentMode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// requestCtx bounds a single server call.
func (a *App) requestCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

// restoreSession picks up the token from the config or the session database.
func (a *App) restoreSession(ctx context.Context) {
	s, err := a.authService.RestoreSession(ctx, a.config.Token)
	if err != nil {
		if !errors.Is(err, client.ErrNotLoggedIn) {
			a.logger.Warn(ctx, "could not restore session", "error", err)
		}
		return
	}
	a.userName = s.UserName
	a.loggedIn = true
}

// Run restores the session, starts the status watcher and blocks in the REPL
// until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)
	if a.db != nil {
		defer a.db.Close()
	}

	fmt.Fprintln(a.out, "Welcome to rpgkeeper CLI (type 'help' for commands)")
	a.restoreSession(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.authService.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
