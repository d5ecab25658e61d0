// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"homiee/internal/cache"
	"homiee/internal/models"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByEmailCached(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, email string, fields map[string]interface{}) (*models.User, error)
	SaveCommunities(ctx context.Context, email string, communities models.StringList) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
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

// GetByEmailCached serves profile reads through the cache-aside path.
// Like GetByEmail it returns (nil, nil) when the user does not exist.
func (r *userRepository) GetByEmailCached(ctx context.Context, email string) (*models.User, error) {
	user, err := cache.Aside(ctx, cache.UserKey(email), cache.UserTTL, func() (*models.User, error) {
		return r.GetByEmail(ctx, email)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User already exists")
		}
		return models.NewInternalError(err)
	}
	// A lookup may have run before this row existed; drop whatever the
	// cache holds for the address.
	cache.InvalidateUser(ctx, user.Email)
	return nil
}

// UpdateProfile applies the given column updates to the user identified by
// email and returns the updated row.
func (r *userRepository) UpdateProfile(ctx context.Context, email string, fields map[string]interface{}) (*models.User, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Updates(fields)
		if res.Error != nil {
			if isUniqueConstraintError(res.Error) {
				return nil, models.NewConflictError("Username already taken")
			}
			return nil, models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, models.NewNotFoundError("User", email)
		}
		cache.InvalidateUser(ctx, email)
	}

	user, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", email)
	}
	return user, nil
}

// SaveCommunities persists the user's recomputed community membership cache.
func (r *userRepository) SaveCommunities(ctx context.Context, email string, communities models.StringList) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Update("communities", communities)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", email)
	}
	cache.InvalidateUser(ctx, email)
	return nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; SQLite reports "UNIQUE constraint failed".
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
