package service

import (
	"context"

	"homiee/internal/models"
	"homiee/internal/observability"
	"homiee/internal/repository"
	"homiee/internal/storage"
)

// ChatService handles per-community chat threads.
type ChatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
	store    storage.Store
}

// NewChatService returns a new ChatService.
func NewChatService(chatRepo repository.ChatRepository, userRepo repository.UserRepository, store storage.Store) *ChatService {
	return &ChatService{chatRepo: chatRepo, userRepo: userRepo, store: store}
}

// GetThread returns the community's thread. A community without any messages
// yet yields an empty thread rather than an error.
func (s *ChatService) GetThread(ctx context.Context, communityName string) (*models.ChatThread, error) {
	if communityName == "" {
		return nil, models.NewValidationError("Community name is required")
	}

	thread, err := s.chatRepo.GetThreadByCommunity(ctx, communityName)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return &models.ChatThread{
			CommunityName: communityName,
			Messages:      []models.ChatMessage{},
		}, nil
	}
	if thread.Messages == nil {
		thread.Messages = []models.ChatMessage{}
	}
	return thread, nil
}

// PostMessage appends a text message to the community's thread, creating the
// thread on first use. Empty text is stored as an empty message.
func (s *ChatService) PostMessage(ctx context.Context, communityName, senderEmail, text string) (*models.ChatMessage, error) {
	sender, thread, err := s.resolve(ctx, communityName, senderEmail)
	if err != nil {
		return nil, err
	}

	message := &models.ChatMessage{
		Sender: sender.Snapshot(),
		Text:   text,
		Type:   models.ChatMessageText,
	}
	if err := s.chatRepo.AppendMessage(ctx, thread.ID, message); err != nil {
		return nil, err
	}

	observability.RecordChatMessage(communityName, models.ChatMessageText)
	return message, nil
}

// PostFile stores the uploaded file and appends a file message carrying its
// URL. The stored file is removed again when the message cannot be persisted.
func (s *ChatService) PostFile(ctx context.Context, communityName, senderEmail string, file FilePart) (*models.ChatMessage, error) {
	sender, thread, err := s.resolve(ctx, communityName, senderEmail)
	if err != nil {
		return nil, err
	}

	span, ctx := observability.NewSpan(ctx, "chat.post_file")
	defer span.End()

	att, err := s.store.Save("file", file.Filename, file.ContentType, file.Content)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	message := &models.ChatMessage{
		Sender:   sender.Snapshot(),
		Text:     att.Name,
		Type:     models.ChatMessageFile,
		FileURL:  att.URL,
		FileType: att.MimeType,
	}
	if err := s.chatRepo.AppendMessage(ctx, thread.ID, message); err != nil {
		s.store.Remove(att)
		span.SetError(err)
		return nil, err
	}

	observability.RecordChatMessage(communityName, models.ChatMessageFile)
	return message, nil
}

// PostAudio stores the uploaded audio clip and appends an audio message.
func (s *ChatService) PostAudio(ctx context.Context, communityName, senderEmail string, audio FilePart) (*models.ChatMessage, error) {
	sender, thread, err := s.resolve(ctx, communityName, senderEmail)
	if err != nil {
		return nil, err
	}

	span, ctx := observability.NewSpan(ctx, "chat.post_audio")
	defer span.End()

	att, err := s.store.Save("audio", audio.Filename, audio.ContentType, audio.Content)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	message := &models.ChatMessage{
		Sender:   sender.Snapshot(),
		Text:     "Audio message",
		Type:     models.ChatMessageAudio,
		AudioURL: att.URL,
		FileType: att.MimeType,
	}
	if err := s.chatRepo.AppendMessage(ctx, thread.ID, message); err != nil {
		s.store.Remove(att)
		span.SetError(err)
		return nil, err
	}

	observability.RecordChatMessage(communityName, models.ChatMessageAudio)
	return message, nil
}

// resolve validates the sender and lazily creates the community's thread.
func (s *ChatService) resolve(ctx context.Context, communityName, senderEmail string) (*models.User, *models.ChatThread, error) {
	if communityName == "" {
		return nil, nil, models.NewValidationError("Community name is required")
	}

	sender, err := s.userRepo.GetByEmail(ctx, senderEmail)
	if err != nil {
		return nil, nil, err
	}
	if sender == nil {
		return nil, nil, models.NewNotFoundError("User", senderEmail)
	}

	thread, err := s.chatRepo.EnsureThread(ctx, communityName)
	if err != nil {
		return nil, nil, err
	}
	return sender, thread, nil
}
