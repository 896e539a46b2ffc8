package sqlstore_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/PabloGalante/haven/internal/adapters/storage/sqlstore"
	"github.com/PabloGalante/haven/internal/domain"
)

func openStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "haven.db")
	s, err := sqlstore.Open(context.Background(), sqlstore.SQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	now := time.Unix(0, time.Now().UnixNano())

	sess := &domain.Session{ID: "s1", UserID: "u1", Title: "first", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.CreateSession(ctx, sess))
	assert.ErrorIs(t, s.CreateSession(ctx, sess), domain.ErrSessionExists)

	got, err := s.GetSession(ctx, "s1")
	require.NoError(t, err)
	if diff := cmp.Diff(sess, got); diff != "" {
		t.Errorf("GetSession mismatch (-want +got):\n%s", diff)
	}

	sess.Title = "renamed"
	sess.UpdatedAt = now.Add(time.Minute)
	require.NoError(t, s.UpdateSession(ctx, sess))
	got, err = s.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.True(t, got.UpdatedAt.Equal(sess.UpdatedAt))

	_, err = s.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, s.UpdateSession(ctx, &domain.Session{ID: "missing"}), domain.ErrSessionNotFound)
}

func TestListSessionsByUser(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	base := time.Now()

	for i, id := range []domain.SessionID{"a", "b", "c"} {
		at := base.Add(time.Duration(i) * time.Second)
		require.NoError(t, s.CreateSession(ctx, &domain.Session{ID: id, UserID: "u", CreatedAt: at, UpdatedAt: at}))
	}
	require.NoError(t, s.CreateSession(ctx, &domain.Session{ID: "x", UserID: "other", CreatedAt: base, UpdatedAt: base}))

	list, err := s.ListSessionsByUser(ctx, "u", 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.SessionID("c"), list[0].ID)
	assert.Equal(t, domain.SessionID("b"), list[1].ID)
}

func TestMessagesKeepOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	now := time.Now()

	require.NoError(t, s.CreateSession(ctx, &domain.Session{ID: "s", UserID: "u", CreatedAt: now, UpdatedAt: now}))

	msgs := []*domain.Message{
		{ID: "m1", SessionID: "s", Author: domain.RoleBot, Text: "welcome", Branch: domain.BranchFallback},
		{ID: "m2", SessionID: "s", Author: domain.RoleUser, Text: "I feel sad", Category: domain.CategoryNegative, Score: -0.5},
		{ID: "m3", SessionID: "s", Author: domain.RoleBot, Text: "I hear you.", Branch: domain.BranchNegative},
	}
	for _, m := range msgs {
		m.CreatedAt = now
		require.NoError(t, s.AppendMessage(ctx, m))
	}

	all, err := s.GetMessagesBySession(ctx, "s", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "m1", string(all[0].ID))
	assert.Equal(t, domain.CategoryNegative, all[1].Category)
	assert.Equal(t, -0.5, all[1].Score)
	assert.Equal(t, domain.BranchNegative, all[2].Branch)

	last, err := s.GetMessagesBySession(ctx, "s", 2)
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, "m2", string(last[0].ID))
	assert.Equal(t, "m3", string(last[1].ID))
}
