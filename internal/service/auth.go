package service

import (
	"context"
	"errors"

	"github.com/iliyamo/recipe-share/internal/config"
	"github.com/iliyamo/recipe-share/internal/model"
	"github.com/iliyamo/recipe-share/internal/repository"
	"github.com/iliyamo/recipe-share/internal/utils"
)

// ErrInvalidCredentials is returned for both an unknown identifier and a
// wrong password, so login responses never reveal whether an account exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthResult bundles the authenticated user with a fresh token pair.
type AuthResult struct {
	User    *model.User
	Access  utils.AccessToken
	Refresh utils.RefreshToken
}

// AuthService implements signup, login and the refresh-token lifecycle. The
// JWT secret and token lifetimes come from the injected config; nothing here
// reads the environment.
type AuthService struct {
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
	Cfg    config.Config
}

func NewAuthService(users *repository.UserRepo, tokens *repository.TokenRepo, cfg config.Config) *AuthService {
	return &AuthService{Users: users, Tokens: tokens, Cfg: cfg}
}

// SignUp creates a USER account and returns tokens immediately. A taken
// username or email surfaces as repository.ErrUserExists.
func (s *AuthService) SignUp(ctx context.Context, username, email, password string) (*AuthResult, error) {
	hash, err := utils.HashPassword(password, s.Cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	id, err := s.Users.Create(ctx, username, email, hash, model.RoleUser)
	if err != nil {
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, u)
}

// LogIn resolves the user by username or email and verifies the password.
// Any mismatch yields ErrInvalidCredentials.
func (s *AuthService) LogIn(ctx context.Context, identifier, password string) (*AuthResult, error) {
	u, err := s.Users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issueTokens(ctx, u)
}

// Refresh validates a raw refresh token by hash, revokes it and issues a new
// pair (rotation). An unknown, expired or revoked token yields
// ErrInvalidCredentials.
func (s *AuthService) Refresh(ctx context.Context, raw string) (*AuthResult, error) {
	hash := utils.HashRefreshRaw(raw)
	userID, err := s.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	_ = s.Tokens.RevokeByHash(ctx, hash)

	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, u)
}

// Logout revokes one session identified by its raw refresh token.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	hash := utils.HashRefreshRaw(raw)
	if _, err := s.Tokens.ValidateRefresh(ctx, hash); err != nil {
		return ErrInvalidCredentials
	}
	return s.Tokens.RevokeByHash(ctx, hash)
}

// issueTokens signs an access token carrying id and role and stores the hash
// of a fresh refresh token.
func (s *AuthService) issueTokens(ctx context.Context, u *model.User) (*AuthResult, error) {
	access, err := utils.NewAccessToken(s.Cfg.JWTSecret, u.ID, u.Role, s.Cfg.AccessTTLMin)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.NewRefreshToken(s.Cfg.RefreshTTLDays)
	if err != nil {
		return nil, err
	}
	if err := s.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Access: access, Refresh: refresh}, nil
}
