package grpc

import (
	"context"

	"github.com/dmitrijs2005/rpgkeeper/internal/rpcapi"
	"github.com/dmitrijs2005/rpgkeeper/internal/server/models"
	"github.com/dmitrijs2005/rpgkeeper/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var _ rpcapi.RPGKeeperServiceServer = (*GRPCServer)(nil)

func envelope[T, U any](r *services.ServiceResult[T], conv func(T) U) *rpcapi.Envelope[U] {
	out := &rpcapi.Envelope[U]{
		Success: r.Success,
		Message: r.Message,
		Outcome: r.Outcome.String(),
	}
	if r.Success {
		out.Data = conv(r.Data)
	}
	return out
}

func same[T any](v T) T { return v }

func toCharacter(v services.CharacterView) rpcapi.Character {
	return rpcapi.Character{
		ID:           v.ID,
		Name:         v.Name,
		HitPoints:    v.HitPoints,
		Strength:     v.Strength,
		Defense:      v.Defense,
		Intelligence: v.Intelligence,
		Class:        v.Class.String(),
		UserID:       v.UserID,
		PortraitKey:  v.PortraitKey,
	}
}

func toCharacters(list []services.CharacterView) []rpcapi.Character {
	out := make([]rpcapi.Character, 0, len(list))
	for _, v := range list {
		out = append(out, toCharacter(v))
	}
	return out
}

func toPortraitURL(p services.PortraitURL) rpcapi.PortraitURL {
	return rpcapi.PortraitURL{Key: p.Key, URL: p.URL}
}

// parseClass treats an empty class as Knight. Updates reject it before calling.
func parseClass(s string) (models.RPGClass, error) {
	if s == "" {
		return models.Knight, nil
	}
	c, err := models.ParseRPGClass(s)
	if err != nil {
		return 0, status.Error(codes.InvalidArgument, err.Error())
	}
	return c, nil
}

func (s *GRPCServer) internal(ctx context.Context, method string, err error) error {
	s.logger.Error(ctx, "request failed", "method", method, "error", err)
	return status.Error(codes.Internal, "internal error")
}

func (s *GRPCServer) Ping(ctx context.Context, req *rpcapi.PingRequest) (*rpcapi.PingResponse, error) {
	return &rpcapi.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *rpcapi.RegisterRequest) (*rpcapi.Envelope[int64], error) {
	if req.Username == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "username and password are required")
	}

	s.logger.Info(ctx, "Registration request", "username", req.Username)

	result, err := s.users.Register(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.internal(ctx, "Register", err)
	}

	return envelope(result, same[int64]), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *rpcapi.LoginRequest) (*rpcapi.Envelope[string], error) {
	result, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.internal(ctx, "Login", err)
	}

	return envelope(result, same[string]), nil
}

func (s *GRPCServer) ResetPassword(ctx context.Context, req *rpcapi.ResetPasswordRequest) (*rpcapi.Envelope[int64], error) {
	if req.NewPassword == "" {
		return nil, status.Error(codes.InvalidArgument, "new password is required")
	}

	result, err := s.users.ResetPassword(ctx, req.Username, req.OldPassword, req.NewPassword)
	if err != nil {
		return nil, s.internal(ctx, "ResetPassword", err)
	}

	return envelope(result, same[int64]), nil
}

// AddCharacter creates a character owned by the caller.
func (s *GRPCServer) AddCharacter(ctx context.Context, req *rpcapi.CharacterInput) (*rpcapi.Envelope[[]rpcapi.Character], error) {
	class, err := parseClass(req.Class)
	if err != nil {
		return nil, err
	}

	claims, ok := claimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	userID, err := claims.ID()
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	result, err := s.characters.AddCharacter(ctx, services.AddCharacterRequest{
		Name:         req.Name,
		HitPoints:    req.HitPoints,
		Strength:     req.Strength,
		Defense:      req.Defense,
		Intelligence: req.Intelligence,
		Class:        class,
		UserID:       &userID,
	})
	if err != nil {
		return nil, s.internal(ctx, "AddCharacter", err)
	}

	return envelope(result, toCharacters), nil
}

func (s *GRPCServer) GetAllCharacters(ctx context.Context, req *rpcapi.Empty) (*rpcapi.Envelope[[]rpcapi.Character], error) {
	result, err := s.characters.GetAllCharacters(ctx)
	if err != nil {
		return nil, s.internal(ctx, "GetAllCharacters", err)
	}

	return envelope(result, toCharacters), nil
}

func (s *GRPCServer) GetCharacter(ctx context.Context, req *rpcapi.CharacterIDRequest) (*rpcapi.Envelope[rpcapi.Character], error) {
	result, err := s.characters.GetCharacterByID(ctx, req.ID)
	if err != nil {
		return nil, s.internal(ctx, "GetCharacter", err)
	}

	return envelope(result, toCharacter), nil
}

func (s *GRPCServer) UpdateCharacter(ctx context.Context, req *rpcapi.UpdateCharacterRequest) (*rpcapi.Envelope[rpcapi.Character], error) {
	// an update replaces every field, so the class cannot fall back to Knight
	if req.Class == "" {
		return nil, status.Error(codes.InvalidArgument, "class is required")
	}
	class, err := parseClass(req.Class)
	if err != nil {
		return nil, err
	}

	result, err := s.characters.UpdateCharacter(ctx, services.UpdateCharacterRequest{
		ID:           req.ID,
		Name:         req.Name,
		HitPoints:    req.HitPoints,
		Strength:     req.Strength,
		Defense:      req.Defense,
		Intelligence: req.Intelligence,
		Class:        class,
	})
	if err != nil {
		return nil, s.internal(ctx, "UpdateCharacter", err)
	}

	return envelope(result, toCharacter), nil
}

func (s *GRPCServer) DeleteCharacter(ctx context.Context, req *rpcapi.CharacterIDRequest) (*rpcapi.Envelope[[]rpcapi.Character], error) {
	result, err := s.characters.DeleteCharacter(ctx, req.ID)
	if err != nil {
		return nil, s.internal(ctx, "DeleteCharacter", err)
	}

	return envelope(result, toCharacters), nil
}

func (s *GRPCServer) GetPortraitUploadURL(ctx context.Context, req *rpcapi.CharacterIDRequest) (*rpcapi.Envelope[rpcapi.PortraitURL], error) {
	result, err := s.characters.GetPortraitUploadURL(ctx, req.ID)
	if err != nil {
		return nil, s.internal(ctx, "GetPortraitUploadURL", err)
	}

	return envelope(result, toPortraitURL), nil
}

func (s *GRPCServer) GetPortraitDownloadURL(ctx context.Context, req *rpcapi.CharacterIDRequest) (*rpcapi.Envelope[rpcapi.PortraitURL], error) {
	result, err := s.characters.GetPortraitDownloadURL(ctx, req.ID)
	if err != nil {
		return nil, s.internal(ctx, "GetPortraitDownloadURL", err)
	}

	return envelope(result, toPortraitURL), nil
}
