package service

import (
	"context"
	"strings"

	"homiee/internal/models"
	"homiee/internal/observability"
	"homiee/internal/repository"
	"homiee/internal/storage"
	"homiee/internal/validation"
)

// FilePart is an uploaded multipart file buffered in memory.
type FilePart struct {
	Field       string
	Filename    string
	ContentType string
	Content     []byte
}

// ProfileService handles profile updates, posts, likes, and comments.
type ProfileService struct {
	userRepo      repository.UserRepository
	postRepo      repository.PostRepository
	communityRepo repository.CommunityRepository
	store         storage.Store
}

// UpdateProfileInput carries the optional profile fields of an update request.
type UpdateProfileInput struct {
	Description  *string
	Hobbies      []string
	ProfileImage *FilePart
}

// CreatePostInput carries a new post's content and optional attachment.
type CreatePostInput struct {
	Content  string
	Hashtags []string
	Image    *FilePart
}

// NewProfileService returns a new ProfileService.
func NewProfileService(userRepo repository.UserRepository, postRepo repository.PostRepository, communityRepo repository.CommunityRepository, store storage.Store) *ProfileService {
	return &ProfileService{userRepo: userRepo, postRepo: postRepo, communityRepo: communityRepo, store: store}
}

// UpdateProfile applies profile field changes for the user. When a new profile
// image is supplied it is stored first and removed again if the database
// update fails.
func (s *ProfileService) UpdateProfile(ctx context.Context, email string, in UpdateProfileInput) (*models.User, error) {
	fields := map[string]interface{}{}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Hobbies != nil {
		fields["hobbies"] = models.StringList(in.Hobbies)

		// A hobby change re-derives the community membership cache by exact
		// name match, the same rule login applies.
		matched, err := s.communityRepo.ByNames(ctx, in.Hobbies)
		if err != nil {
			return nil, err
		}
		names := make(models.StringList, 0, len(matched))
		for _, community := range matched {
			names = append(names, community.Name)
		}
		fields["communities"] = names
	}

	span, ctx := observability.NewSpan(ctx, "profile.update")
	defer span.End()

	var att *storage.Attachment
	if in.ProfileImage != nil {
		var err error
		att, err = s.store.Save("profileImage", in.ProfileImage.Filename, in.ProfileImage.ContentType, in.ProfileImage.Content)
		if err != nil {
			span.SetError(err)
			return nil, err
		}
		fields["profile_image"] = att.URL
	}

	if len(fields) == 0 {
		user, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, models.NewNotFoundError("User", email)
		}
		return user, nil
	}

	user, err := s.userRepo.UpdateProfile(ctx, email, fields)
	if err != nil {
		s.store.Remove(att)
		span.SetError(err)
		return nil, err
	}
	return user, nil
}

// CreatePost appends a post to the user's timeline. The attachment is stored
// before the post row is written and removed again on any later failure.
func (s *ProfileService) CreatePost(ctx context.Context, email string, in CreatePostInput) (*models.Post, error) {
	if in.Content == "" && in.Image == nil {
		return nil, models.NewValidationError("Post must have content or an image")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", email)
	}

	var att *storage.Attachment
	post := &models.Post{
		UserID:   user.ID,
		Content:  in.Content,
		Hashtags: models.StringList(extractHashtags(in.Content, in.Hashtags)),
	}

	span, ctx := observability.NewSpan(ctx, "profile.create_post")
	defer span.End()

	if in.Image != nil {
		att, err = s.store.Save("postImage", in.Image.Filename, in.Image.ContentType, in.Image.Content)
		if err != nil {
			span.SetError(err)
			return nil, err
		}
		post.Media = att.URL
		post.MediaType = att.MimeType
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		// The stored image has no surviving reference, remove it.
		s.store.Remove(att)
		span.SetError(err)
		return nil, err
	}

	post.User = *user
	return post, nil
}

// extractHashtags merges explicitly supplied tags with tags found in the
// content, normalized and de-duplicated.
func extractHashtags(content string, explicit []string) []string {
	seen := map[string]struct{}{}
	tags := []string{}

	add := func(raw string) {
		tag := validation.NormalizeTag(raw)
		if tag == "" {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	for _, t := range explicit {
		add(t)
	}
	for _, word := range strings.Fields(content) {
		if strings.HasPrefix(word, "#") && len(word) > 1 {
			add(strings.TrimRight(word, ".,!?;:"))
		}
	}
	return tags
}

// Like adjusts the like counter of a post owned by ownerEmail.
// liked=true increments, liked=false decrements; the counter floors at zero.
func (s *ProfileService) Like(ctx context.Context, ownerEmail string, postID uint, liked bool) error {
	return s.like(ctx, ownerEmail, postID, liked)
}

// LikeAny adjusts the like counter of any post, regardless of owner.
func (s *ProfileService) LikeAny(ctx context.Context, postID uint, liked bool) error {
	return s.like(ctx, "", postID, liked)
}

func (s *ProfileService) like(ctx context.Context, ownerEmail string, postID uint, liked bool) error {
	delta := 1
	direction := "like"
	if !liked {
		delta = -1
		direction = "unlike"
	}
	if err := s.postRepo.Like(ctx, postID, ownerEmail, delta); err != nil {
		return err
	}
	observability.RecordLike(direction)
	return nil
}

// AddCommentScoped appends a comment to a post owned by ownerEmail, storing
// the caller-provided sender snapshot as-is.
func (s *ProfileService) AddCommentScoped(ctx context.Context, ownerEmail string, postID uint, sender models.SenderSnapshot, text string) (*models.Comment, error) {
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if owner, err := s.userRepo.GetByEmail(ctx, ownerEmail); err != nil {
		return nil, err
	} else if owner == nil || post.UserID != owner.ID {
		return nil, models.NewNotFoundError("Post", postID)
	}

	comment := &models.Comment{Sender: sender, Text: text}
	if err := s.postRepo.AddComment(ctx, postID, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// AddComment appends a comment to any post, resolving the sender snapshot
// from the commenter's current profile.
func (s *ProfileService) AddComment(ctx context.Context, postID uint, senderEmail, text string) (*models.Comment, error) {
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}

	sender, err := s.userRepo.GetByEmail(ctx, senderEmail)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, models.NewNotFoundError("User", senderEmail)
	}

	comment := &models.Comment{Sender: sender.Snapshot(), Text: text}
	if err := s.postRepo.AddComment(ctx, postID, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeletePost removes a post owned by the given user.
func (s *ProfileService) DeletePost(ctx context.Context, ownerEmail string, postID uint) error {
	return s.postRepo.DeleteByOwner(ctx, postID, ownerEmail)
}

// ListPosts returns the global feed, newest first, each post paired with a
// live snapshot of its author's current profile.
func (s *ProfileService) ListPosts(ctx context.Context) ([]models.FeedPost, error) {
	posts, err := s.postRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	feed := make([]models.FeedPost, 0, len(posts))
	for _, post := range posts {
		feed = append(feed, models.FeedPost{
			Post: post,
			// Feed entries carry a compact author snapshot; the full one is
			// only exposed on single-post reads.
			Author: models.AuthorSnapshot{
				FirstName:    post.User.FirstName,
				LastName:     post.User.LastName,
				ProfileImage: post.User.ProfileImage,
			},
		})
	}
	return feed, nil
}

// ListPostsForUser returns the global feed filtered down to posts whose
// hashtags intersect the user's hobbies. Tags and hobbies are compared
// lowercased with any leading '#' stripped.
func (s *ProfileService) ListPostsForUser(ctx context.Context, email string) ([]models.FeedPost, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", email)
	}

	hobbies := make(map[string]struct{}, len(user.Hobbies))
	for _, h := range user.Hobbies {
		hobbies[strings.ToLower(h)] = struct{}{}
	}

	feed, err := s.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	matched := []models.FeedPost{}
	for _, fp := range feed {
		for _, tag := range fp.Hashtags {
			if _, ok := hobbies[validation.NormalizeTag(tag)]; ok {
				matched = append(matched, fp)
				break
			}
		}
	}
	return matched, nil
}

// ListOwnPosts returns the posts authored by the user, newest first.
func (s *ProfileService) ListOwnPosts(ctx context.Context, email string) ([]models.Post, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", email)
	}
	return s.postRepo.ListByUser(ctx, user.ID)
}

// ListByHashtag returns the feed filtered to posts carrying the tag.
// The tag is matched case-insensitively and a leading '#' is stripped.
func (s *ProfileService) ListByHashtag(ctx context.Context, tag string) ([]models.FeedPost, error) {
	want := validation.NormalizeTag(tag)
	if want == "" {
		return nil, models.NewValidationError("Hashtag is required")
	}

	feed, err := s.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	matched := []models.FeedPost{}
	for _, fp := range feed {
		for _, t := range fp.Hashtags {
			if strings.EqualFold(strings.TrimPrefix(t, "#"), want) {
				matched = append(matched, fp)
				break
			}
		}
	}
	return matched, nil
}

// GetPost loads a single post with its author snapshot and comments.
func (s *ProfileService) GetPost(ctx context.Context, postID uint) (*models.FeedPost, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &models.FeedPost{
		Post: *post,
		Author: models.AuthorSnapshot{
			Email:        post.User.Email,
			FirstName:    post.User.FirstName,
			LastName:     post.User.LastName,
			ProfileImage: post.User.ProfileImage,
			Hobbies:      post.User.Hobbies,
		},
	}, nil
}
