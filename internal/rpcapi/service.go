// Package rpcapi describes the rpgkeeper gRPC service: message types, a JSON
// codec, the service descriptor used by the server and a typed client.
package rpcapi

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "rpgkeeper.RPGKeeperService"

// Full method names, as seen by interceptors.
const (
	MethodPing                   = "/" + ServiceName + "/Ping"
	MethodRegister               = "/" + ServiceName + "/Register"
	MethodLogin                  = "/" + ServiceName + "/Login"
	MethodResetPassword          = "/" + ServiceName + "/ResetPassword"
	MethodAddCharacter           = "/" + ServiceName + "/AddCharacter"
	MethodGetAllCharacters       = "/" + ServiceName + "/GetAllCharacters"
	MethodGetCharacter           = "/" + ServiceName + "/GetCharacter"
	MethodUpdateCharacter        = "/" + ServiceName + "/UpdateCharacter"
	MethodDeleteCharacter        = "/" + ServiceName + "/DeleteCharacter"
	MethodGetPortraitUploadURL   = "/" + ServiceName + "/GetPortraitUploadURL"
	MethodGetPortraitDownloadURL = "/" + ServiceName + "/GetPortraitDownloadURL"
)

// RPGKeeperServiceServer is implemented by the server.
type RPGKeeperServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Register(context.Context, *RegisterRequest) (*Envelope[int64], error)
	Login(context.Context, *LoginRequest) (*Envelope[string], error)
	ResetPassword(context.Context, *ResetPasswordRequest) (*Envelope[int64], error)
	AddCharacter(context.Context, *CharacterInput) (*Envelope[[]Character], error)
	GetAllCharacters(context.Context, *Empty) (*Envelope[[]Character], error)
	GetCharacter(context.Context, *CharacterIDRequest) (*Envelope[Character], error)
	UpdateCharacter(context.Context, *UpdateCharacterRequest) (*Envelope[Character], error)
	DeleteCharacter(context.Context, *CharacterIDRequest) (*Envelope[[]Character], error)
	GetPortraitUploadURL(context.Context, *CharacterIDRequest) (*Envelope[PortraitURL], error)
	GetPortraitDownloadURL(context.Context, *CharacterIDRequest) (*Envelope[PortraitURL], error)
}

// unary adapts a typed method to the grpc.MethodDesc handler signature.
func unary[Req, Resp any](fullMethod string, call func(RPGKeeperServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(RPGKeeperServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(RPGKeeperServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RPGKeeperServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unary(MethodPing, RPGKeeperServiceServer.Ping)},
		{MethodName: "Register", Handler: unary(MethodRegister, RPGKeeperServiceServer.Register)},
		{MethodName: "Login", Handler: unary(MethodLogin, RPGKeeperServiceServer.Login)},
		{MethodName: "ResetPassword", Handler: unary(MethodResetPassword, RPGKeeperServiceServer.ResetPassword)},
		{MethodName: "AddCharacter", Handler: unary(MethodAddCharacter, RPGKeeperServiceServer.AddCharacter)},
		{MethodName: "GetAllCharacters", Handler: unary(MethodGetAllCharacters, RPGKeeperServiceServer.GetAllCharacters)},
		{MethodName: "GetCharacter", Handler: unary(MethodGetCharacter, RPGKeeperServiceServer.GetCharacter)},
		{MethodName: "UpdateCharacter", Handler: unary(MethodUpdateCharacter, RPGKeeperServiceServer.UpdateCharacter)},
		{MethodName: "DeleteCharacter", Handler: unary(MethodDeleteCharacter, RPGKeeperServiceServer.DeleteCharacter)},
		{MethodName: "GetPortraitUploadURL", Handler: unary(MethodGetPortraitUploadURL, RPGKeeperServiceServer.GetPortraitUploadURL)},
		{MethodName: "GetPortraitDownloadURL", Handler: unary(MethodGetPortraitDownloadURL, RPGKeeperServiceServer.GetPortraitDownloadURL)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rpgkeeper",
}

func RegisterRPGKeeperServiceServer(s grpc.ServiceRegistrar, srv RPGKeeperServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls the service over any connection, always with the JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *Client) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*Envelope[int64], error) {
	return invoke[Envelope[int64]](ctx, c.cc, MethodRegister, in, opts)
}

func (c *Client) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*Envelope[string], error) {
	return invoke[Envelope[string]](ctx, c.cc, MethodLogin, in, opts)
}

func (c *Client) ResetPassword(ctx context.Context, in *ResetPasswordRequest, opts ...grpc.CallOption) (*Envelope[int64], error) {
	return invoke[Envelope[int64]](ctx, c.cc, MethodResetPassword, in, opts)
}

func (c *Client) AddCharacter(ctx context.Context, in *CharacterInput, opts ...grpc.CallOption) (*Envelope[[]Character], error) {
	return invoke[Envelope[[]Character]](ctx, c.cc, MethodAddCharacter, in, opts)
}

func (c *Client) GetAllCharacters(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Envelope[[]Character], error) {
	return invoke[Envelope[[]Character]](ctx, c.cc, MethodGetAllCharacters, in, opts)
}

func (c *Client) GetCharacter(ctx context.Context, in *CharacterIDRequest, opts ...grpc.CallOption) (*Envelope[Character], error) {
	return invoke[Envelope[Character]](ctx, c.cc, MethodGetCharacter, in, opts)
}

func (c *Client) UpdateCharacter(ctx context.Context, in *UpdateCharacterRequest, opts ...grpc.CallOption) (*Envelope[Character], error) {
	return invoke[Envelope[Character]](ctx, c.cc, MethodUpdateCharacter, in, opts)
}

func (c *Client) DeleteCharacter(ctx context.Context, in *CharacterIDRequest, opts ...grpc.CallOption) (*Envelope[[]Character], error) {
	return invoke[Envelope[[]Character]](ctx, c.cc, MethodDeleteCharacter, in, opts)
}

func (c *Client) GetPortraitUploadURL(ctx context.Context, in *CharacterIDRequest, opts ...grpc.CallOption) (*Envelope[PortraitURL], error) {
	return invoke[Envelope[PortraitURL]](ctx, c.cc, MethodGetPortraitUploadURL, in, opts)
}

func (c *Client) GetPortraitDownloadURL(ctx context.Context, in *CharacterIDRequest, opts ...grpc.CallOption) (*Envelope[PortraitURL], error) {
	return invoke[Envelope[PortraitURL]](ctx, c.cc, MethodGetPortraitDownloadURL, in, opts)
}
