package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/haven/internal/adapters/storage/memory"
	"github.com/PabloGalante/haven/internal/domain"
)

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	s := memory.NewSessionStore()
	now := time.Now()

	older := &domain.Session{ID: "s1", UserID: "u", CreatedAt: now.Add(-time.Hour)}
	newer := &domain.Session{ID: "s2", UserID: "u", CreatedAt: now}
	other := &domain.Session{ID: "s3", UserID: "someone-else", CreatedAt: now}
	for _, sess := range []*domain.Session{older, newer, other} {
		require.NoError(t, s.CreateSession(ctx, sess))
	}

	assert.ErrorIs(t, s.CreateSession(ctx, older), domain.ErrSessionExists)

	_, err := s.GetSession(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, s.UpdateSession(ctx, &domain.Session{ID: "nope"}), domain.ErrSessionNotFound)

	list, err := s.ListSessionsByUser(ctx, "u", 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.SessionID("s2"), list[0].ID)

	list, err = s.ListSessionsByUser(ctx, "u", 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	got, err := s.GetSession(ctx, "s1")
	require.NoError(t, err)
	got.Title = "mutated"
	again, _ := s.GetSession(ctx, "s1")
	assert.Empty(t, again.Title, "store must hand out copies")
}

func TestMessageStoreLimit(t *testing.T) {
	ctx := context.Background()
	s := memory.NewMessageStore()

	for _, text := range []string{"a", "b", "c"} {
		require.NoError(t, s.AppendMessage(ctx, &domain.Message{SessionID: "s", Text: text}))
	}

	all, err := s.GetMessagesBySession(ctx, "s", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	last, err := s.GetMessagesBySession(ctx, "s", 2)
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, "b", last[0].Text)
	assert.Equal(t, "c", last[1].Text)

	none, err := s.GetMessagesBySession(ctx, "other", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
