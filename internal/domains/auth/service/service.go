package service

import (
	"context"
	"strings"

	"dpbooking/config"
	"dpbooking/infras/jwt"
	"dpbooking/infras/otel"
	"dpbooking/internal/domains/auth/model/dto"
	userModel "dpbooking/internal/domains/user/model"
	userRepo "dpbooking/internal/domains/user/repository"
	"dpbooking/shared/constant"
	gDto "dpbooking/shared/dto"
	"dpbooking/shared/failure"
	"dpbooking/shared/password"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	userNameFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldUserName,
				Operator: gDto.FilterOperatorEq,
				Value:    strings.ToLower(req.UserName),
				Table:    userModel.TableName,
			},
		},
	}

	user, err := s.userRepo.Get(ctx, userNameFilter)
	if err != nil || user.ID == constant.Empty {
		log.Warn().Str("user_name", req.UserName).Msg("login attempt with unknown user name")

		return res, failure.Unauthorized("invalid user name or password") // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("user_name", req.UserName).Msg("login attempt with wrong password")

		return res, failure.Unauthorized("invalid user name or password") // nolint:wrapcheck
	}

	if !user.IsActive {
		return res, failure.Forbidden("user account is deactivated") // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.UserName, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, failure.InternalError(err) // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair, user)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}
