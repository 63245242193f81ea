package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/rpgkeeper/internal/common"
	"github.com/dmitrijs2005/rpgkeeper/internal/rpcapi"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// rpgKeeperAPI is the method set of rpcapi.Client, narrowed for tests.
type rpgKeeperAPI interface {
	Ping(ctx context.Context, in *rpcapi.PingRequest, opts ...grpc.CallOption) (*rpcapi.PingResponse, error)
	Register(ctx context.Context, in *rpcapi.RegisterRequest, opts ...grpc.CallOption) (*rpcapi.Envelope[int64], error)
	Login(ctx context.Context, in *rpcapi.LoginRequest, opts ...grpc.CallOption) (*rpcapi.Envelope[string], error)
	ResetPassword(ctx context.Context, in *rpcapi.ResetPasswordRequest, opts ...grpc.CallOption) (*rpcapi.Envelope[int64], error)
	AddCharacter(ctx context.Context, in *rpcapi.CharacterInput, opts ...grpc.CallOption) (*rpcapi.Envelope[[]rpcapi.Character], error)
	GetAllCharacters(ctx context.Context, in *rpcapi.Empty, opts ...grpc.CallOption) (*rpcapi.Envelope[[]rpcapi.Character], error)
	GetCharacter(ctx context.Context, in *rpcapi.CharacterIDRequest, opts ...grpc.CallOption) (*rpcapi.Envelope[rpcapi.Character], error)
	UpdateCharacter(ctx context.Context, in *rpcapi.UpdateCharacterRequest, opts ...grpc.CallOption) (*rpcapi.Envelope[rpcapi.Character], error)
	DeleteCharacter(ctx context.Context, in *rpcapi.CharacterIDRequest, opts ...grpc.CallOption) (*rpcapi.Envelope[[]rpcapi.Character], error)
	GetPortraitUploadURL(ctx context.Context, in *rpcapi.CharacterIDRequest, opts ...grpc.CallOption) (*rpcapi.Envelope[rpcapi.PortraitURL], error)
	GetPortraitDownloadURL(ctx context.Context, in *rpcapi.CharacterIDRequest, opts ...grpc.CallOption) (*rpcapi.Envelope[rpcapi.PortraitURL], error)
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpgKeeperAPI

	mu          sync.RWMutex
	accessToken string
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// SetAccessToken sets the token sent with every following call. An empty
// token sends none.
func (s *GRPCClient) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewRPGKeeperClient creates a client for endpointURL. The connection is
// established lazily on the first call.
func NewRPGKeeperClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.initGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) initGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(rpcapi.CodecName)),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpcapi.NewClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		if st.Message() == common.ErrTokenExpired.Error() {
			return common.ErrTokenExpired
		}
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &rpcapi.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, username, password string) (*rpcapi.Envelope[int64], error) {
	resp, err := s.client.Register(ctx, &rpcapi.RegisterRequest{Username: username, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

// Login returns the server's answer and, on success, keeps the token for
// later calls.
func (s *GRPCClient) Login(ctx context.Context, username, password string) (*rpcapi.Envelope[string], error) {
	resp, err := s.client.Login(ctx, &rpcapi.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.Success {
		s.SetAccessToken(resp.Data)
	}
	return resp, nil
}

func (s *GRPCClient) ResetPassword(ctx context.Context, username, oldPassword, newPassword string) (*rpcapi.Envelope[int64], error) {
	resp, err := s.client.ResetPassword(ctx, &rpcapi.ResetPasswordRequest{
		Username:    username,
		OldPassword: oldPassword,
		NewPassword: newPassword,
	})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) AddCharacter(ctx context.Context, in rpcapi.CharacterInput) (*rpcapi.Envelope[[]rpcapi.Character], error) {
	resp, err := s.client.AddCharacter(ctx, &in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) ListCharacters(ctx context.Context) (*rpcapi.Envelope[[]rpcapi.Character], error) {
	resp, err := s.client.GetAllCharacters(ctx, &rpcapi.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) GetCharacter(ctx context.Context, id int64) (*rpcapi.Envelope[rpcapi.Character], error) {
	resp, err := s.client.GetCharacter(ctx, &rpcapi.CharacterIDRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) UpdateCharacter(ctx context.Context, id int64, in rpcapi.CharacterInput) (*rpcapi.Envelope[rpcapi.Character], error) {
	resp, err := s.client.UpdateCharacter(ctx, &rpcapi.UpdateCharacterRequest{ID: id, CharacterInput: in})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) DeleteCharacter(ctx context.Context, id int64) (*rpcapi.Envelope[[]rpcapi.Character], error) {
	resp, err := s.client.DeleteCharacter(ctx, &rpcapi.CharacterIDRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) PortraitUploadURL(ctx context.Context, id int64) (*rpcapi.Envelope[rpcapi.PortraitURL], error) {
	resp, err := s.client.GetPortraitUploadURL(ctx, &rpcapi.CharacterIDRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) PortraitDownloadURL(ctx context.Context, id int64) (*rpcapi.Envelope[rpcapi.PortraitURL], error) {
	resp, err := s.client.GetPortraitDownloadURL(ctx, &rpcapi.CharacterIDRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}
