package conversation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/haven/internal/adapters/sentiment"
	"github.com/PabloGalante/haven/internal/adapters/storage/memory"
	"github.com/PabloGalante/haven/internal/app/conversation"
	"github.com/PabloGalante/haven/internal/app/coping"
	"github.com/PabloGalante/haven/internal/app/crisis"
	"github.com/PabloGalante/haven/internal/app/responder"
	"github.com/PabloGalante/haven/internal/content"
	"github.com/PabloGalante/haven/internal/domain"
)

func newService(t *testing.T) *conversation.Service {
	t.Helper()

	catalog, err := content.Default()
	require.NoError(t, err)

	rng := coping.NewLockedRand(5)
	selector, err := coping.NewSelector(catalog.Coping, rng)
	require.NoError(t, err)

	d, err := responder.New(sentiment.DefaultLexicon(), selector, catalog, rng)
	require.NoError(t, err)

	return conversation.NewService(d, memory.NewSessionStore(), memory.NewMessageStore(), catalog.Session.Welcome)
}

func TestStartSessionAndSendMessage(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	out, err := svc.StartSession(ctx, conversation.StartSessionInput{
		UserID: domain.UserID("test-user"),
		Title:  "Test session",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.Session.ID)
	assert.Equal(t, domain.RoleBot, out.Welcome.Author)

	reply, err := svc.SendMessage(ctx, conversation.SendMessageInput{
		SessionID: out.Session.ID,
		UserID:    out.Session.UserID,
		Text:      "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hi there! How are you feeling today?", reply.BotMessage.Text)
	assert.Equal(t, domain.BranchIntent, reply.BotMessage.Branch)
	assert.Equal(t, "greeting", reply.BotMessage.Intent)
	assert.Equal(t, domain.CategoryNeutral, reply.UserMessage.Category)

	_, msgs, err := svc.GetSessionTimeline(ctx, out.Session.ID, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "hello", msgs[1].Text)
}

func TestSendMessageCrisis(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	out, err := svc.StartSession(ctx, conversation.StartSessionInput{UserID: "u"})
	require.NoError(t, err)

	reply, err := svc.SendMessage(ctx, conversation.SendMessageInput{
		SessionID: out.Session.ID,
		Text:      "I want to kill myself",
	})
	require.NoError(t, err)
	assert.Equal(t, crisis.Resources(), reply.BotMessage.Text)
	assert.Equal(t, domain.BranchCrisis, reply.Decision.Branch)
}

func TestSendMessageErrors(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.SendMessage(ctx, conversation.SendMessageInput{SessionID: "missing", Text: "hi"})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	out, err := svc.StartSession(ctx, conversation.StartSessionInput{UserID: "owner"})
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, conversation.SendMessageInput{SessionID: out.Session.ID, UserID: "intruder", Text: "hi"})
	assert.ErrorIs(t, err, conversation.ErrUserMismatch)

	_, _, err = svc.GetSessionTimeline(ctx, "missing", 0)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestListSessions(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	for _, user := range []string{"alice", "alice", "bob"} {
		_, err := svc.StartSession(ctx, conversation.StartSessionInput{UserID: domain.UserID(user)})
		require.NoError(t, err)
	}

	all, err := svc.ListSessions(ctx, "alice", 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, s := range all {
		assert.Equal(t, domain.UserID("alice"), s.UserID)
	}

	limited, err := svc.ListSessions(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := svc.ListSessions(ctx, "carol", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
