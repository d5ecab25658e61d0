package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homiee/internal/models"
)

func chatTestUsers() *userRepoStub {
	users := noopUserRepo()
	users.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		if email == "ada@example.com" {
			return &models.User{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: email, ProfileImage: "/uploads/a.png"}, nil
		}
		return nil, nil
	}
	return users
}

func TestChatService_GetThread(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("missing thread yields empty message list", func(t *testing.T) {
		t.Parallel()
		svc := NewChatService(noopChatRepo(), chatTestUsers(), &storeStub{})
		thread, err := svc.GetThread(ctx, "Book Club")
		require.NoError(t, err)
		assert.Equal(t, "Book Club", thread.CommunityName)
		assert.NotNil(t, thread.Messages)
		assert.Empty(t, thread.Messages)
	})

	t.Run("existing thread returned with messages", func(t *testing.T) {
		t.Parallel()
		chats := noopChatRepo()
		chats.getThreadFn = func(_ context.Context, name string) (*models.ChatThread, error) {
			return &models.ChatThread{
				ID: 4, CommunityName: name,
				Messages: []models.ChatMessage{{Text: "hello", Type: models.ChatMessageText}},
			}, nil
		}
		svc := NewChatService(chats, chatTestUsers(), &storeStub{})
		thread, err := svc.GetThread(ctx, "Book Club")
		require.NoError(t, err)
		require.Len(t, thread.Messages, 1)
		assert.Equal(t, "hello", thread.Messages[0].Text)
	})

	t.Run("blank community rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewChatService(noopChatRepo(), chatTestUsers(), &storeStub{})
		_, err := svc.GetThread(ctx, "")
		assertAppError(t, err, models.CodeValidation)
	})
}

func TestChatService_PostMessage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("appends text message with sender snapshot", func(t *testing.T) {
		t.Parallel()
		chats := noopChatRepo()
		var appended *models.ChatMessage
		chats.appendMessageFn = func(_ context.Context, threadID uint, m *models.ChatMessage) error {
			assert.Equal(t, uint(1), threadID)
			appended = m
			return nil
		}

		svc := NewChatService(chats, chatTestUsers(), &storeStub{})
		msg, err := svc.PostMessage(ctx, "Book Club", "ada@example.com", "hello all")
		require.NoError(t, err)
		require.NotNil(t, appended)

		assert.Equal(t, models.ChatMessageText, msg.Type)
		assert.Equal(t, "hello all", msg.Text)
		assert.Equal(t, "Ada Lovelace", msg.Sender.Name)
		assert.Equal(t, "/uploads/a.png", msg.Sender.Avatar)
	})

	t.Run("empty text is stored as-is", func(t *testing.T) {
		t.Parallel()
		chats := noopChatRepo()
		var appended *models.ChatMessage
		chats.appendMessageFn = func(_ context.Context, _ uint, m *models.ChatMessage) error {
			appended = m
			return nil
		}

		svc := NewChatService(chats, chatTestUsers(), &storeStub{})
		msg, err := svc.PostMessage(ctx, "Book Club", "ada@example.com", "")
		require.NoError(t, err)
		require.NotNil(t, appended)
		assert.Equal(t, "", msg.Text)
		assert.Equal(t, models.ChatMessageText, msg.Type)
	})

	t.Run("unknown sender", func(t *testing.T) {
		t.Parallel()
		svc := NewChatService(noopChatRepo(), chatTestUsers(), &storeStub{})
		_, err := svc.PostMessage(ctx, "Book Club", "ghost@example.com", "hi")
		assertAppError(t, err, models.CodeNotFound)
	})
}

func TestChatService_PostFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	file := FilePart{Field: "file", Filename: "notes.pdf", ContentType: "application/pdf", Content: []byte("pdf")}

	t.Run("message carries original filename and mime type", func(t *testing.T) {
		t.Parallel()
		svc := NewChatService(noopChatRepo(), chatTestUsers(), &storeStub{})
		msg, err := svc.PostFile(ctx, "Book Club", "ada@example.com", file)
		require.NoError(t, err)

		assert.Equal(t, models.ChatMessageFile, msg.Type)
		assert.Equal(t, "notes.pdf", msg.Text)
		assert.Equal(t, "application/pdf", msg.FileType)
		assert.Equal(t, "/uploads/file-stub", msg.FileURL)
	})

	t.Run("stored file removed when append fails", func(t *testing.T) {
		t.Parallel()
		chats := noopChatRepo()
		chats.appendMessageFn = func(_ context.Context, _ uint, _ *models.ChatMessage) error {
			return models.NewInternalError(assert.AnError)
		}
		store := &storeStub{}
		svc := NewChatService(chats, chatTestUsers(), store)
		_, err := svc.PostFile(ctx, "Book Club", "ada@example.com", file)
		require.Error(t, err)
		require.Len(t, store.removed, 1)
	})
}

func TestChatService_PostAudio(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	audio := FilePart{Field: "audio", Filename: "clip.webm", ContentType: "audio/webm", Content: []byte("snd")}

	svc := NewChatService(noopChatRepo(), chatTestUsers(), &storeStub{})
	msg, err := svc.PostAudio(ctx, "Book Club", "ada@example.com", audio)
	require.NoError(t, err)

	assert.Equal(t, models.ChatMessageAudio, msg.Type)
	assert.Equal(t, "Audio message", msg.Text)
	assert.Equal(t, "/uploads/audio-stub", msg.AudioURL)
	assert.Equal(t, "audio/webm", msg.FileType)
}
