package services

import (
	"context"

	"github.com/dmitrijs2005/rpgkeeper/internal/client/client"
	"github.com/dmitrijs2005/rpgkeeper/internal/rpcapi"
)

// CharacterService exposes the character operations to the CLI. Every
// failed envelope comes back as a *RemoteError.
type CharacterService interface {
	List(ctx context.Context) ([]rpcapi.Character, error)
	Get(ctx context.Context, id int64) (*rpcapi.Character, error)
	Add(ctx context.Context, in rpcapi.CharacterInput) ([]rpcapi.Character, error)
	Update(ctx context.Context, id int64, in rpcapi.CharacterInput) (*rpcapi.Character, error)
	Delete(ctx context.Context, id int64) ([]rpcapi.Character, error)
	PortraitUploadURL(ctx context.Context, id int64) (*rpcapi.PortraitURL, error)
	PortraitDownloadURL(ctx context.Context, id int64) (*rpcapi.PortraitURL, error)
}

type characterService struct {
	client client.Client
}

func NewCharacterService(c client.Client) CharacterService {
	return &characterService{client: c}
}

// unwrap returns the envelope payload or a transport/remote error.
func unwrap[T any](env *rpcapi.Envelope[T], err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if !env.Success {
		return zero, newRemoteError(env.Outcome, env.Message)
	}
	return env.Data, nil
}

func unwrapPtr[T any](env *rpcapi.Envelope[T], err error) (*T, error) {
	v, err := unwrap(env, err)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *characterService) List(ctx context.Context) ([]rpcapi.Character, error) {
	env, err := s.client.ListCharacters(ctx)
	return unwrap(env, err)
}

func (s *characterService) Get(ctx context.Context, id int64) (*rpcapi.Character, error) {
	env, err := s.client.GetCharacter(ctx, id)
	return unwrapPtr(env, err)
}

func (s *characterService) Add(ctx context.Context, in rpcapi.CharacterInput) ([]rpcapi.Character, error) {
	env, err := s.client.AddCharacter(ctx, in)
	return unwrap(env, err)
}

func (s *characterService) Update(ctx context.Context, id int64, in rpcapi.CharacterInput) (*rpcapi.Character, error) {
	env, err := s.client.UpdateCharacter(ctx, id, in)
	return unwrapPtr(env, err)
}

func (s *characterService) Delete(ctx context.Context, id int64) ([]rpcapi.Character, error) {
	env, err := s.client.DeleteCharacter(ctx, id)
	return unwrap(env, err)
}

func (s *characterService) PortraitUploadURL(ctx context.Context, id int64) (*rpcapi.PortraitURL, error) {
	env, err := s.client.PortraitUploadURL(ctx, id)
	return unwrapPtr(env, err)
}

func (s *characterService) PortraitDownloadURL(ctx context.Context, id int64) (*rpcapi.PortraitURL, error) {
	env, err := s.client.PortraitDownloadURL(ctx, id)
	return unwrapPtr(env, err)
}
