package client

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/dmitrijs2005/rpgkeeper/internal/common"
	"github.com/dmitrijs2005/rpgkeeper/internal/rpcapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestWithAccessToken_ReplacesExisting(t *testing.T) {
	ctx := metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, "old", "x-other", "1")
	ctx = withAccessToken(ctx, "new")

	md, ok := metadata.FromOutgoingContext(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"new"}, md.Get(common.AccessTokenHeaderName))
	assert.Equal(t, []string{"1"}, md.Get("x-other"))
}

func TestMapError(t *testing.T) {
	c := &GRPCClient{}

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"expired", status.Error(codes.Unauthenticated, "token expired"), common.ErrTokenExpired},
		{"invalid", status.Error(codes.Unauthenticated, "invalid token"), ErrUnauthorized},
		{"denied", status.Error(codes.PermissionDenied, "no"), ErrUnauthorized},
		{"unavailable", status.Error(codes.Unavailable, "down"), ErrUnavailable},
		{"deadline", status.Error(codes.DeadlineExceeded, "slow"), ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.mapError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	other := status.Error(codes.Internal, "internal error")
	got := c.mapError(other)
	require.Error(t, got)
	assert.ErrorIs(t, got, other)
	assert.NotErrorIs(t, got, ErrUnavailable)
}

// recordingServer answers every call and remembers the access token it saw.
type recordingServer struct {
	tokens []string
	chars  []rpcapi.Character
}

func (s *recordingServer) record(ctx context.Context) {
	md, _ := metadata.FromIncomingContext(ctx)
	v := md.Get(common.AccessTokenHeaderName)
	if len(v) == 0 {
		s.tokens = append(s.tokens, "")
		return
	}
	s.tokens = append(s.tokens, v[0])
}

func (s *recordingServer) Ping(ctx context.Context, _ *rpcapi.PingRequest) (*rpcapi.PingResponse, error) {
	s.record(ctx)
	return &rpcapi.PingResponse{Status: "OK"}, nil
}

func (s *recordingServer) Register(ctx context.Context, in *rpcapi.RegisterRequest) (*rpcapi.Envelope[int64], error) {
	s.record(ctx)
	if in.Username == "taken" {
		return &rpcapi.Envelope[int64]{Message: "User Already Exists!", Outcome: "duplicate"}, nil
	}
	return &rpcapi.Envelope[int64]{Data: 1, Success: true, Outcome: "ok"}, nil
}

func (s *recordingServer) Login(ctx context.Context, in *rpcapi.LoginRequest) (*rpcapi.Envelope[string], error) {
	s.record(ctx)
	if in.Password != "pw" {
		return &rpcapi.Envelope[string]{Message: "Incorrect Password!", Outcome: "invalid_password"}, nil
	}
	return &rpcapi.Envelope[string]{Data: "tok-" + in.Username, Success: true, Outcome: "ok"}, nil
}

func (s *recordingServer) ResetPassword(ctx context.Context, _ *rpcapi.ResetPasswordRequest) (*rpcapi.Envelope[int64], error) {
	s.record(ctx)
	return &rpcapi.Envelope[int64]{Data: 1, Success: true, Outcome: "ok"}, nil
}

func (s *recordingServer) AddCharacter(ctx context.Context, in *rpcapi.CharacterInput) (*rpcapi.Envelope[[]rpcapi.Character], error) {
	s.record(ctx)
	s.chars = append(s.chars, rpcapi.Character{ID: int64(len(s.chars) + 1), Name: in.Name, Class: in.Class})
	return &rpcapi.Envelope[[]rpcapi.Character]{Data: s.chars, Success: true, Outcome: "ok"}, nil
}

func (s *recordingServer) GetAllCharacters(ctx context.Context, _ *rpcapi.Empty) (*rpcapi.Envelope[[]rpcapi.Character], error) {
	s.record(ctx)
	return &rpcapi.Envelope[[]rpcapi.Character]{Data: s.chars, Success: true, Outcome: "ok"}, nil
}

func (s *recordingServer) GetCharacter(ctx context.Context, in *rpcapi.CharacterIDRequest) (*rpcapi.Envelope[rpcapi.Character], error) {
	s.record(ctx)
	for _, c := range s.chars {
		if c.ID == in.ID {
			return &rpcapi.Envelope[rpcapi.Character]{Data: c, Success: true, Outcome: "ok"}, nil
		}
	}
	return &rpcapi.Envelope[rpcapi.Character]{Message: "not found", Outcome: "not_found"}, nil
}

func (s *recordingServer) UpdateCharacter(ctx context.Context, in *rpcapi.UpdateCharacterRequest) (*rpcapi.Envelope[rpcapi.Character], error) {
	s.record(ctx)
	return &rpcapi.Envelope[rpcapi.Character]{Data: rpcapi.Character{ID: in.ID, Name: in.Name}, Success: true, Outcome: "ok"}, nil
}

func (s *recordingServer) DeleteCharacter(ctx context.Context, _ *rpcapi.CharacterIDRequest) (*rpcapi.Envelope[[]rpcapi.Character], error) {
	s.record(ctx)
	return nil, status.Error(codes.Unauthenticated, "token expired")
}

func (s *recordingServer) GetPortraitUploadURL(ctx context.Context, in *rpcapi.CharacterIDRequest) (*rpcapi.Envelope[rpcapi.PortraitURL], error) {
	s.record(ctx)
	return &rpcapi.Envelope[rpcapi.PortraitURL]{Data: rpcapi.PortraitURL{Key: "k", URL: "https://put"}, Success: true, Outcome: "ok"}, nil
}

func (s *recordingServer) GetPortraitDownloadURL(ctx context.Context, in *rpcapi.CharacterIDRequest) (*rpcapi.Envelope[rpcapi.PortraitURL], error) {
	s.record(ctx)
	return nil, status.Error(codes.Internal, "internal error")
}

func startRecordingServer(t *testing.T) (*recordingServer, string) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := &recordingServer{}
	gs := grpc.NewServer()
	rpcapi.RegisterRPGKeeperServiceServer(gs, srv)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	return srv, lis.Addr().String()
}

func TestGRPCClient_EndToEnd(t *testing.T) {
	srv, addr := startRecordingServer(t)
	c, err := NewRPGKeeperClient(addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	reg, err := c.Register(ctx, "taken", "pw")
	require.NoError(t, err)
	assert.False(t, reg.Success)
	assert.Equal(t, "duplicate", reg.Outcome)

	bad, err := c.Login(ctx, "alice", "nope")
	require.NoError(t, err)
	assert.False(t, bad.Success)
	assert.Empty(t, c.token())

	login, err := c.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	require.True(t, login.Success)
	assert.Equal(t, "tok-alice", c.token())

	added, err := c.AddCharacter(ctx, rpcapi.CharacterInput{Name: "Frodo", Class: "Rogue"})
	require.NoError(t, err)
	require.Len(t, added.Data, 1)
	assert.Equal(t, "Rogue", added.Data[0].Class)

	list, err := c.ListCharacters(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Data, 1)

	one, err := c.GetCharacter(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Frodo", one.Data.Name)

	upd, err := c.UpdateCharacter(ctx, 1, rpcapi.CharacterInput{Name: "Sam"})
	require.NoError(t, err)
	assert.Equal(t, "Sam", upd.Data.Name)

	up, err := c.PortraitUploadURL(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://put", up.Data.URL)

	_, err = c.DeleteCharacter(ctx, 1)
	assert.ErrorIs(t, err, common.ErrTokenExpired)

	_, err = c.PortraitDownloadURL(ctx, 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)

	_, err = c.ResetPassword(ctx, "alice", "pw", "new")
	require.NoError(t, err)

	// ping, register and the two logins ran before a token existed
	require.Len(t, srv.tokens, 12)
	assert.Equal(t, []string{"", "", "", ""}, srv.tokens[:4])
	for _, tok := range srv.tokens[4:] {
		assert.Equal(t, "tok-alice", tok)
	}

	c.SetAccessToken("")
	_, err = c.ListCharacters(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", srv.tokens[len(srv.tokens)-1])
}

func TestGRPCClient_Unavailable(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())

	c, err := NewRPGKeeperClient(addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	err = c.Ping(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable), "got %v", err)
}
