package repository

import (
	"context"

	"userboard/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail matches case-sensitively; registration stores the email
// exactly as submitted and login must use the same form.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

// ExistsByUsernameOrEmail is the advisory pre-check for uniqueness.
// The unique indexes on the table remain the authoritative guard; a
// concurrent write that slips past this check fails on Create/Update
// with gorm.ErrDuplicatedKey.
func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string, excludeID int64) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("username = ? OR email = ?", username, email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update applies only the supplied columns (partial update semantics).
func (r *UserRepository) Update(ctx context.Context, id int64, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(updates).Error
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.User{}, id).Error
}

// SetRefreshToken overwrites the stored refresh token in a single-record
// update. Last writer wins for concurrent logins by the same user; nil
// clears the token (logout / revocation).
func (r *UserRepository) SetRefreshToken(ctx context.Context, id int64, tok *string) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).
		Update("refresh_token", tok).Error
}
