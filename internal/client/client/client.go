package client

import (
	"context"

	"github.com/dmitrijs2005/rpgkeeper/internal/rpcapi"
)

// Client is the CLI's view of the rpgkeeper server. Envelope failures
// (Success == false) are returned as values; only transport problems are
// errors.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	SetAccessToken(token string)

	Register(ctx context.Context, username, password string) (*rpcapi.Envelope[int64], error)
	Login(ctx context.Context, username, password string) (*rpcapi.Envelope[string], error)
	ResetPassword(ctx context.Context, username, oldPassword, newPassword string) (*rpcapi.Envelope[int64], error)

	AddCharacter(ctx context.Context, in rpcapi.CharacterInput) (*rpcapi.Envelope[[]rpcapi.Character], error)
	ListCharacters(ctx context.Context) (*rpcapi.Envelope[[]rpcapi.Character], error)
	GetCharacter(ctx context.Context, id int64) (*rpcapi.Envelope[rpcapi.Character], error)
	UpdateCharacter(ctx context.Context, id int64, in rpcapi.CharacterInput) (*rpcapi.Envelope[rpcapi.Character], error)
	DeleteCharacter(ctx context.Context, id int64) (*rpcapi.Envelope[[]rpcapi.Character], error)
	PortraitUploadURL(ctx context.Context, id int64) (*rpcapi.Envelope[rpcapi.PortraitURL], error)
	PortraitDownloadURL(ctx context.Context, id int64) (*rpcapi.Envelope[rpcapi.PortraitURL], error)
}
