package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Service issues and verifies the two token kinds. Access tokens are
// short-lived and carry identity plus role; refresh tokens are
// long-lived, carry only the identity and are signed with a separate
// secret so one class can never forge the other.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

type AccessClaims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwtlib.RegisteredClaims
}

type RefreshClaims struct {
	UserID int64 `json:"user_id"`
	jwtlib.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid token")

func New(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (s *Service) AccessTTL() time.Duration  { return s.accessTTL }
func (s *Service) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *Service) IssueAccess(userID int64, role string) (string, error) {
	claims := AccessClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(s.accessTTL)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.accessSecret)
}

func (s *Service) IssueRefresh(userID int64) (string, error) {
	claims := RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(s.refreshTTL)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.refreshSecret)
}

// VerifyAccess checks signature and expiry against the access secret.
// Any failure comes back as ErrInvalidToken; callers must not see the
// parser internals.
func (s *Service) VerifyAccess(tokenStr string) (*AccessClaims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &AccessClaims{}, s.keyFunc(s.accessSecret))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *Service) VerifyRefresh(tokenStr string) (*RefreshClaims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &RefreshClaims{}, s.keyFunc(s.refreshSecret))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*RefreshClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *Service) keyFunc(secret []byte) jwtlib.Keyfunc {
	return func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	}
}
