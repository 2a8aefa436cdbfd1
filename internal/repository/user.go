package repository

import (
	"context"
	"errors"
	"time"

	"dinely/internal/models"

	"gorm.io/gorm"
)

// UserFilter narrows and orders user listings. OrderBy accepts a field from
// the allow-list, optionally prefixed with "-" for descending.
type UserFilter struct {
	Username      string // substring match
	UsernameExact string
	Email         string // substring match
	EmailExact    string
	Role          models.Role
	IsActive      *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	OrderBy       string
	Limit         int
	Offset        int
}

var userOrderFields = map[string]string{
	"username":   "username",
	"email":      "email",
	"created_at": "created_at",
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter UserFilter) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByUsername returns (nil, nil) when no user exists, so callers can
// distinguish "not registered" from a storage failure.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Username or email already taken")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Username or email already taken")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Delete hard-deletes the user; the store cascades the user's reviews.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]models.User, error) {
	q := r.db.WithContext(ctx).Model(&models.User{})

	if filter.UsernameExact != "" {
		q = q.Where("username = ?", filter.UsernameExact)
	} else if filter.Username != "" {
		q = q.Where("username LIKE ?", "%"+filter.Username+"%")
	}
	if filter.EmailExact != "" {
		q = q.Where("email = ?", filter.EmailExact)
	} else if filter.Email != "" {
		q = q.Where("email LIKE ?", "%"+filter.Email+"%")
	}
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	if filter.CreatedAfter != nil {
		q = q.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		q = q.Where("created_at <= ?", *filter.CreatedBefore)
	}

	q = applyOrder(q, filter.OrderBy, userOrderFields, "created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var users []models.User
	if err := q.Offset(filter.Offset).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
