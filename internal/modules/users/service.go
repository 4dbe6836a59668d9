package users

import (
	"context"
	"errors"

	"userboard/internal/domain"
	"userboard/internal/pkg/password"

	"gorm.io/gorm"
)

// UserStore is the slice of the credential store the management interface uses.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	Delete(ctx context.Context, id int64) error
}

// Service implements admin-only CRUD over user records, sharing the
// validation and uniqueness rules with registration.
type Service struct {
	users UserStore
}

func NewService(users UserStore) *Service {
	return &Service{users: users}
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Create differs from self-registration in one way: the admin chooses
// the role.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return nil, ErrMissingFields
	}
	role := domain.Role(req.Role)
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if len(req.Password) < password.MinLength {
		return nil, ErrPasswordTooShort
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return user, nil
}

// Update applies only the supplied fields, re-hashing the password only
// when a new one is given. The actor may not touch their own record.
func (s *Service) Update(ctx context.Context, actorID, id int64, req UpdateUserRequest) error {
	if id == actorID {
		return ErrSelfManagement
	}
	if req.Role != "" && !domain.Role(req.Role).Valid() {
		return ErrInvalidRole
	}
	if req.Password != "" && len(req.Password) < password.MinLength {
		return ErrPasswordTooShort
	}

	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if req.Username != "" || req.Email != "" {
		exists, err := s.users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email, id)
		if err != nil {
			return err
		}
		if exists {
			return ErrUserExists
		}
	}

	updates := map[string]any{}
	if req.Username != "" {
		updates["username"] = req.Username
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Role != "" {
		updates["role"] = req.Role
	}
	if req.Password != "" {
		hash, err := password.Hash(req.Password)
		if err != nil {
			return err
		}
		updates["password_hash"] = hash
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.users.Update(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return err
	}

	return nil
}

// Delete is a hard removal; the stored refresh token dies with the row.
func (s *Service) Delete(ctx context.Context, actorID, id int64) error {
	if id == actorID {
		return ErrSelfManagement
	}

	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.users.Delete(ctx, id)
}
