package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homiee/internal/models"
)

func TestChatRepository_GetThreadMissingReturnsNil(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewChatRepository(db)

	thread, err := repo.GetThreadByCommunity(context.Background(), "Book Club")
	require.NoError(t, err)
	assert.Nil(t, thread)
}

func TestChatRepository_EnsureThreadIsIdempotent(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	first, err := repo.EnsureThread(ctx, "Book Club")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := repo.EnsureThread(ctx, "Book Club")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// Community names are case sensitive, a different casing is a new thread.
	other, err := repo.EnsureThread(ctx, "book club")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestChatRepository_AppendMessageOrdering(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	thread, err := repo.EnsureThread(ctx, "Chess Masters")
	require.NoError(t, err)

	sender := models.SenderSnapshot{Email: "ada@example.com", Name: "Ada", Avatar: "/uploads/a.png"}

	require.NoError(t, repo.AppendMessage(ctx, thread.ID, &models.ChatMessage{
		Sender: sender, Text: "first", Type: models.ChatMessageText,
	}))
	require.NoError(t, repo.AppendMessage(ctx, thread.ID, &models.ChatMessage{
		Sender: sender, Text: "report.pdf", Type: models.ChatMessageFile,
		FileURL: "/uploads/file-x.pdf", FileType: "application/pdf",
	}))
	require.NoError(t, repo.AppendMessage(ctx, thread.ID, &models.ChatMessage{
		Sender: sender, Text: "Audio message", Type: models.ChatMessageAudio,
		AudioURL: "/uploads/audio-y.webm", FileType: "audio/webm",
	}))

	loaded, err := repo.GetThreadByCommunity(ctx, "Chess Masters")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Messages, 3)
	assert.Equal(t, "first", loaded.Messages[0].Text)
	assert.Equal(t, models.ChatMessageFile, loaded.Messages[1].Type)
	assert.Equal(t, "/uploads/file-x.pdf", loaded.Messages[1].FileURL)
	assert.Equal(t, "Audio message", loaded.Messages[2].Text)
	assert.Equal(t, "ada@example.com", loaded.Messages[0].Sender.Email)
}
