package auth

import (
	"context"

	"userboard/internal/domain"
)

// UserStore covers only the credential-store methods the auth flow uses.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string, excludeID int64) (bool, error)
	SetRefreshToken(ctx context.Context, id int64, tok *string) error
}
