package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"homiee/internal/cache"
	"homiee/internal/models"
)

// ChatRepository defines persistence operations for community chat threads.
type ChatRepository interface {
	GetThreadByCommunity(ctx context.Context, communityName string) (*models.ChatThread, error)
	EnsureThread(ctx context.Context, communityName string) (*models.ChatThread, error)
	AppendMessage(ctx context.Context, threadID uint, message *models.ChatMessage) error
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository returns a new ChatRepository implementation.
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// GetThreadByCommunity loads a thread with its ordered messages.
// Returns (nil, nil) when no thread exists for the community yet.
func (r *chatRepository) GetThreadByCommunity(ctx context.Context, communityName string) (*models.ChatThread, error) {
	var thread models.ChatThread
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Where("community_name = ?", communityName).
		First(&thread).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &thread, nil
}

// EnsureThread creates the community's thread if it does not exist and returns
// it. Concurrent callers racing on the unique community name all converge on
// the same row.
func (r *chatRepository) EnsureThread(ctx context.Context, communityName string) (*models.ChatThread, error) {
	thread := models.ChatThread{CommunityName: communityName}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "community_name"}},
			DoNothing: true,
		}).
		Create(&thread).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	// On conflict the insert is a no-op and leaves ID unset, so always fetch.
	var persisted models.ChatThread
	if err := r.db.WithContext(ctx).Where("community_name = ?", communityName).First(&persisted).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &persisted, nil
}

func (r *chatRepository) AppendMessage(ctx context.Context, threadID uint, message *models.ChatMessage) error {
	message.ThreadID = threadID

	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}

	var thread models.ChatThread
	if err := r.db.WithContext(ctx).Select("community_name").First(&thread, threadID).Error; err == nil {
		cache.InvalidateThread(ctx, thread.CommunityName)
	}
	return nil
}
