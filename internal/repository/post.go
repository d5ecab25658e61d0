package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"homiee/internal/models"
)

// PostRepository defines persistence operations for posts and comments.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListAll(ctx context.Context) ([]models.Post, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Post, error)
	Like(ctx context.Context, postID uint, ownerEmail string, delta int) error
	DeleteByOwner(ctx context.Context, postID uint, ownerEmail string) error
	AddComment(ctx context.Context, postID uint, comment *models.Comment) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) ListAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Like adjusts the post's like counter by delta in a single statement.
// The counter never drops below zero. When ownerEmail is non-empty the update
// is scoped to posts owned by that user, otherwise any post may be targeted.
func (r *postRepository) Like(ctx context.Context, postID uint, ownerEmail string, delta int) error {
	q := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", postID)
	if ownerEmail != "" {
		q = q.Where("user_id = (SELECT id FROM users WHERE email = ?)", ownerEmail)
	}

	res := q.Update("likes", gorm.Expr(
		"CASE WHEN likes + ? < 0 THEN 0 ELSE likes + ? END", delta, delta))
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", postID)
	}
	return nil
}

// DeleteByOwner removes the post only when it belongs to the given owner.
// Comments are removed alongside the post.
func (r *postRepository) DeleteByOwner(ctx context.Context, postID uint, ownerEmail string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = (SELECT id FROM users WHERE email = ?)", postID, ownerEmail).
			Delete(&models.Post{})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Post", postID)
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

func (r *postRepository) AddComment(ctx context.Context, postID uint, comment *models.Comment) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return models.NewInternalError(err)
	}
	if count == 0 {
		return models.NewNotFoundError("Post", postID)
	}

	comment.PostID = postID
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
