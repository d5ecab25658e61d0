package service

import (
	"context"

	"homiee/internal/models"
	"homiee/internal/storage"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByEmailFn       func(context.Context, string) (*models.User, error)
	getByEmailCachedFn func(context.Context, string) (*models.User, error)
	createFn           func(context.Context, *models.User) error
	updateProfileFn    func(context.Context, string, map[string]interface{}) (*models.User, error)
	saveCommunitiesFn  func(context.Context, string, models.StringList) error
	listFn             func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByEmailCached(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailCachedFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) UpdateProfile(ctx context.Context, email string, fields map[string]interface{}) (*models.User, error) {
	return s.updateProfileFn(ctx, email, fields)
}
func (s *userRepoStub) SaveCommunities(ctx context.Context, email string, communities models.StringList) error {
	return s.saveCommunitiesFn(ctx, email, communities)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByEmailFn:       func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByEmailCachedFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:           func(_ context.Context, _ *models.User) error { return nil },
		updateProfileFn: func(_ context.Context, _ string, _ map[string]interface{}) (*models.User, error) {
			return &models.User{}, nil
		},
		saveCommunitiesFn: func(_ context.Context, _ string, _ models.StringList) error { return nil },
		listFn:            func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, uint) (*models.Post, error)
	listAllFn       func(context.Context) ([]models.Post, error)
	listByUserFn    func(context.Context, uint) ([]models.Post, error)
	likeFn          func(context.Context, uint, string, int) error
	deleteByOwnerFn func(context.Context, uint, string) error
	addCommentFn    func(context.Context, uint, *models.Comment) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) ListAll(ctx context.Context) ([]models.Post, error) {
	return s.listAllFn(ctx)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.Post, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *postRepoStub) Like(ctx context.Context, postID uint, ownerEmail string, delta int) error {
	return s.likeFn(ctx, postID, ownerEmail, delta)
}
func (s *postRepoStub) DeleteByOwner(ctx context.Context, postID uint, ownerEmail string) error {
	return s.deleteByOwnerFn(ctx, postID, ownerEmail)
}
func (s *postRepoStub) AddComment(ctx context.Context, postID uint, comment *models.Comment) error {
	return s.addCommentFn(ctx, postID, comment)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:        func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:       func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		listAllFn:       func(_ context.Context) ([]models.Post, error) { return nil, nil },
		listByUserFn:    func(_ context.Context, _ uint) ([]models.Post, error) { return nil, nil },
		likeFn:          func(_ context.Context, _ uint, _ string, _ int) error { return nil },
		deleteByOwnerFn: func(_ context.Context, _ uint, _ string) error { return nil },
		addCommentFn:    func(_ context.Context, _ uint, _ *models.Comment) error { return nil },
	}
}

// communityRepoStub is a stub for repository.CommunityRepository.
type communityRepoStub struct {
	countFn       func(context.Context) (int64, error)
	createBatchFn func(context.Context, []models.Community) error
	listAllFn     func(context.Context) ([]models.Community, error)
	byNamesFn     func(context.Context, []string) ([]models.Community, error)
	byHobbiesFn   func(context.Context, []string) ([]models.Community, error)
}

func (s *communityRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *communityRepoStub) CreateBatch(ctx context.Context, communities []models.Community) error {
	return s.createBatchFn(ctx, communities)
}
func (s *communityRepoStub) ListAll(ctx context.Context) ([]models.Community, error) {
	return s.listAllFn(ctx)
}
func (s *communityRepoStub) ByNames(ctx context.Context, names []string) ([]models.Community, error) {
	return s.byNamesFn(ctx, names)
}
func (s *communityRepoStub) ByHobbies(ctx context.Context, hobbies []string) ([]models.Community, error) {
	return s.byHobbiesFn(ctx, hobbies)
}

func noopCommunityRepo() *communityRepoStub {
	return &communityRepoStub{
		countFn:       func(_ context.Context) (int64, error) { return 0, nil },
		createBatchFn: func(_ context.Context, _ []models.Community) error { return nil },
		listAllFn:     func(_ context.Context) ([]models.Community, error) { return nil, nil },
		byNamesFn:     func(_ context.Context, _ []string) ([]models.Community, error) { return nil, nil },
		byHobbiesFn:   func(_ context.Context, _ []string) ([]models.Community, error) { return nil, nil },
	}
}

// chatRepoStub is a stub for repository.ChatRepository.
type chatRepoStub struct {
	getThreadFn     func(context.Context, string) (*models.ChatThread, error)
	ensureThreadFn  func(context.Context, string) (*models.ChatThread, error)
	appendMessageFn func(context.Context, uint, *models.ChatMessage) error
}

func (s *chatRepoStub) GetThreadByCommunity(ctx context.Context, communityName string) (*models.ChatThread, error) {
	return s.getThreadFn(ctx, communityName)
}
func (s *chatRepoStub) EnsureThread(ctx context.Context, communityName string) (*models.ChatThread, error) {
	return s.ensureThreadFn(ctx, communityName)
}
func (s *chatRepoStub) AppendMessage(ctx context.Context, threadID uint, message *models.ChatMessage) error {
	return s.appendMessageFn(ctx, threadID, message)
}

func noopChatRepo() *chatRepoStub {
	return &chatRepoStub{
		getThreadFn:    func(_ context.Context, _ string) (*models.ChatThread, error) { return nil, nil },
		ensureThreadFn: func(_ context.Context, name string) (*models.ChatThread, error) {
			return &models.ChatThread{ID: 1, CommunityName: name}, nil
		},
		appendMessageFn: func(_ context.Context, _ uint, _ *models.ChatMessage) error { return nil },
	}
}

// storeStub is a stub for storage.Store recording saves and removals.
type storeStub struct {
	saveFn  func(field, filename, contentType string, data []byte) (*storage.Attachment, error)
	removed []*storage.Attachment
}

func (s *storeStub) Save(field, filename, contentType string, data []byte) (*storage.Attachment, error) {
	if s.saveFn != nil {
		return s.saveFn(field, filename, contentType, data)
	}
	return &storage.Attachment{
		URL:      "/uploads/" + field + "-stub",
		Path:     "/tmp/" + field + "-stub",
		Name:     filename,
		MimeType: contentType,
		Size:     int64(len(data)),
	}, nil
}

func (s *storeStub) Remove(att *storage.Attachment) {
	if att != nil {
		s.removed = append(s.removed, att)
	}
}
