package auth

import (
	"context"
	"errors"

	"userboard/internal/domain"
	"userboard/internal/pkg/password"
	"userboard/internal/pkg/token"

	"gorm.io/gorm"
)

type tokenService interface {
	IssueAccess(userID int64, role string) (string, error)
	IssueRefresh(userID int64) (string, error)
	VerifyRefresh(tokenStr string) (*token.RefreshClaims, error)
}

// Service contains the token-lifecycle business logic: registration,
// login, refresh exchange and logout.
type Service struct {
	users  UserStore
	tokens tokenService
}

type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

func NewService(users UserStore, tokens tokenService) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates a self-signup account. The role is always forced to
// user, so self-registration can never grant admin. The new user is not
// logged in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	if req.Username == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return ErrMissingFields
	}
	if req.Password != req.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if len(req.Password) < password.MinLength {
		return ErrPasswordTooShort
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email, 0)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return err
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration may win the race past the advisory
		// check; the unique index rejects it here and the caller sees
		// the same conflict either way.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return err
	}

	return nil
}

// Login verifies credentials, issues both tokens and persists the
// refresh token on the record. The overwrite invalidates any refresh
// token issued by an earlier login on another device.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Check(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccess(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, err
	}

	return &LoginResult{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh exchanges a refresh token for a new access token. The token
// must verify cryptographically AND match the stored value exactly; a
// valid token superseded by a later login is rejected. The refresh
// token itself is not rotated.
func (s *Service) Refresh(ctx context.Context, refreshRaw string) (string, error) {
	claims, err := s.tokens.VerifyRefresh(refreshRaw)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshRaw {
		return "", ErrInvalidRefreshToken
	}

	return s.tokens.IssueAccess(user.ID, string(user.Role))
}

// Logout clears the stored refresh token when the cookie verifies.
// Best-effort: verification failure is not an error, the caller clears
// the cookies regardless so the client always ends logged out.
func (s *Service) Logout(ctx context.Context, refreshRaw string) error {
	claims, err := s.tokens.VerifyRefresh(refreshRaw)
	if err != nil {
		return nil
	}
	return s.users.SetRefreshToken(ctx, claims.UserID, nil)
}

// CurrentUser loads the record behind the verified claims for page
// rendering.
func (s *Service) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}
