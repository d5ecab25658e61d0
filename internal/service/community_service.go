package service

import (
	"context"

	"homiee/internal/models"
	"homiee/internal/repository"
)

// CommunityService exposes the community catalog and per-user membership.
type CommunityService struct {
	communityRepo repository.CommunityRepository
	userRepo      repository.UserRepository
}

// NewCommunityService returns a new CommunityService.
func NewCommunityService(communityRepo repository.CommunityRepository, userRepo repository.UserRepository) *CommunityService {
	return &CommunityService{communityRepo: communityRepo, userRepo: userRepo}
}

// ListAll returns the full community catalog.
func (s *CommunityService) ListAll(ctx context.Context) ([]models.Community, error) {
	return s.communityRepo.ListAll(ctx)
}

// ForUser returns the communities whose hobby tags intersect the user's
// hobbies. Unlike login's name match, this matches against each community's
// hobby tag list.
func (s *CommunityService) ForUser(ctx context.Context, email string) ([]models.Community, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", email)
	}
	return s.communityRepo.ByHobbies(ctx, user.Hobbies)
}
