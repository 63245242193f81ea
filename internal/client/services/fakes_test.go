package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/rpgkeeper/internal/client/client"
	"github.com/dmitrijs2005/rpgkeeper/internal/rpcapi"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeClient implements client.Client with canned envelopes.
type fakeClient struct {
	token  string
	closed bool

	pingErr error

	registerRes *rpcapi.Envelope[int64]
	loginRes    *rpcapi.Envelope[string]
	resetRes    *rpcapi.Envelope[int64]
	err         error

	chars     []rpcapi.Character
	charRes   *rpcapi.Envelope[rpcapi.Character]
	listRes   *rpcapi.Envelope[[]rpcapi.Character]
	urlRes    *rpcapi.Envelope[rpcapi.PortraitURL]
	lastID    int64
	lastInput rpcapi.CharacterInput
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Close() error                { f.closed = true; return nil }
func (f *fakeClient) Ping(context.Context) error  { return f.pingErr }
func (f *fakeClient) SetAccessToken(token string) { f.token = token }

func (f *fakeClient) Register(context.Context, string, string) (*rpcapi.Envelope[int64], error) {
	return f.registerRes, f.err
}

func (f *fakeClient) Login(context.Context, string, string) (*rpcapi.Envelope[string], error) {
	if f.err == nil && f.loginRes.Success {
		f.token = f.loginRes.Data
	}
	return f.loginRes, f.err
}

func (f *fakeClient) ResetPassword(context.Context, string, string, string) (*rpcapi.Envelope[int64], error) {
	return f.resetRes, f.err
}

func (f *fakeClient) AddCharacter(_ context.Context, in rpcapi.CharacterInput) (*rpcapi.Envelope[[]rpcapi.Character], error) {
	f.lastInput = in
	return f.listRes, f.err
}

func (f *fakeClient) ListCharacters(context.Context) (*rpcapi.Envelope[[]rpcapi.Character], error) {
	return f.listRes, f.err
}

func (f *fakeClient) GetCharacter(_ context.Context, id int64) (*rpcapi.Envelope[rpcapi.Character], error) {
	f.lastID = id
	return f.charRes, f.err
}

func (f *fakeClient) UpdateCharacter(_ context.Context, id int64, in rpcapi.CharacterInput) (*rpcapi.Envelope[rpcapi.Character], error) {
	f.lastID, f.lastInput = id, in
	return f.charRes, f.err
}

func (f *fakeClient) DeleteCharacter(_ context.Context, id int64) (*rpcapi.Envelope[[]rpcapi.Character], error) {
	f.lastID = id
	return f.listRes, f.err
}

func (f *fakeClient) PortraitUploadURL(_ context.Context, id int64) (*rpcapi.Envelope[rpcapi.PortraitURL], error) {
	f.lastID = id
	return f.urlRes, f.err
}

func (f *fakeClient) PortraitDownloadURL(_ context.Context, id int64) (*rpcapi.Envelope[rpcapi.PortraitURL], error) {
	f.lastID = id
	return f.urlRes, f.err
}
