package repository

import (
	"context"

	"gorm.io/gorm"

	"homiee/internal/cache"
	"homiee/internal/models"
)

// CommunityRepository defines persistence operations for the community catalog.
type CommunityRepository interface {
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, communities []models.Community) error
	ListAll(ctx context.Context) ([]models.Community, error)
	ByNames(ctx context.Context, names []string) ([]models.Community, error)
	ByHobbies(ctx context.Context, hobbies []string) ([]models.Community, error)
}

type communityRepository struct {
	db *gorm.DB
}

// NewCommunityRepository returns a new CommunityRepository implementation.
func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &communityRepository{db: db}
}

func (r *communityRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Community{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *communityRepository) CreateBatch(ctx context.Context, communities []models.Community) error {
	if len(communities) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&communities).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCommunityCatalog(ctx)
	return nil
}

func (r *communityRepository) ListAll(ctx context.Context) ([]models.Community, error) {
	return cache.Aside(ctx, cache.CommunityCatalogKey, cache.CommunityCatalogTTL, func() ([]models.Community, error) {
		var communities []models.Community
		if err := r.db.WithContext(ctx).Order("id ASC").Find(&communities).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		return communities, nil
	})
}

// ByNames returns communities whose name matches any of the given values.
// Matching is exact and case sensitive.
func (r *communityRepository) ByNames(ctx context.Context, names []string) ([]models.Community, error) {
	if len(names) == 0 {
		return []models.Community{}, nil
	}
	var communities []models.Community
	if err := r.db.WithContext(ctx).Where("name IN ?", names).Order("id ASC").Find(&communities).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return communities, nil
}

// ByHobbies returns communities whose hobby tags intersect the given set.
// The catalog is small and hobby tags live in a serialized list column, so the
// intersection is computed in memory over the full catalog.
func (r *communityRepository) ByHobbies(ctx context.Context, hobbies []string) ([]models.Community, error) {
	matched := []models.Community{}
	if len(hobbies) == 0 {
		return matched, nil
	}

	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	want := make(map[string]struct{}, len(hobbies))
	for _, h := range hobbies {
		want[h] = struct{}{}
	}

	for _, community := range all {
		for _, tag := range community.Hobbies {
			if _, ok := want[tag]; ok {
				matched = append(matched, community)
				break
			}
		}
	}
	return matched, nil
}
