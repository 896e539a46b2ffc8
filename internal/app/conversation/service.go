package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PabloGalante/haven/internal/app/responder"
	"github.com/PabloGalante/haven/internal/domain"
	"github.com/PabloGalante/haven/internal/observability"
)

// ErrUserMismatch is returned when a message names a user that does not
// own the session.
var ErrUserMismatch = errors.New("session belongs to another user")

// Decider produces the reply for one message.
type Decider interface {
	Decide(ctx context.Context, userInput string) responder.Decision
}

// Service records sessions and transcripts around the stateless decider.
type Service struct {
	decider      Decider
	sessionStore domain.SessionStore
	messageStore domain.MessageStore
	welcome      string
	now          func() time.Time
	newID        func() string
}

func NewService(
	decider Decider,
	sessionStore domain.SessionStore,
	messageStore domain.MessageStore,
	welcome string,
) *Service {
	return &Service{
		decider:      decider,
		sessionStore: sessionStore,
		messageStore: messageStore,
		welcome:      welcome,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

type StartSessionInput struct {
	UserID domain.UserID
	Title  string
}

type StartSessionOutput struct {
	Session *domain.Session
	Welcome *domain.Message
}

func (s *Service) StartSession(ctx context.Context, in StartSessionInput) (*StartSessionOutput, error) {
	now := s.now()

	log := observability.LoggerFromContext(ctx).With(zap.String("user_id", string(in.UserID)))
	log.Info("starting new session")

	session := &domain.Session{
		ID:        domain.SessionID(s.newID()),
		UserID:    in.UserID,
		Title:     in.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.sessionStore.CreateSession(ctx, session); err != nil {
		log.Error("failed to create session", zap.Error(err))
		return nil, fmt.Errorf("create session: %w", err)
	}

	welcome := &domain.Message{
		ID:        domain.MessageID(s.newID()),
		SessionID: session.ID,
		Author:    domain.RoleBot,
		Text:      s.welcome,
		CreatedAt: now,
	}

	if err := s.messageStore.AppendMessage(ctx, welcome); err != nil {
		log.Error("failed to append welcome message", zap.Error(err))
		return nil, fmt.Errorf("append welcome: %w", err)
	}

	log.Info("session started", zap.String("session_id", string(session.ID)))

	return &StartSessionOutput{
		Session: session,
		Welcome: welcome,
	}, nil
}

type SendMessageInput struct {
	SessionID domain.SessionID
	UserID    domain.UserID
	Text      string
}

type SendMessageOutput struct {
	UserMessage *domain.Message
	BotMessage  *domain.Message
	Decision    responder.Decision
}

// SendMessage decides the reply to in.Text and appends both sides of the
// turn to the transcript. Earlier turns play no part in the decision.
func (s *Service) SendMessage(ctx context.Context, in SendMessageInput) (*SendMessageOutput, error) {
	session, err := s.sessionStore.GetSession(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}
	if in.UserID != "" && in.UserID != session.UserID {
		return nil, ErrUserMismatch
	}

	log := observability.LoggerFromContext(ctx).With(
		zap.String("session_id", string(session.ID)),
		zap.String("user_id", string(session.UserID)),
	)

	decision := s.decider.Decide(ctx, in.Text)

	userMsg := &domain.Message{
		ID:        domain.MessageID(s.newID()),
		SessionID: session.ID,
		Author:    domain.RoleUser,
		Text:      in.Text,
		Category:  decision.Sentiment.Category,
		Score:     decision.Sentiment.Score,
		CreatedAt: s.now(),
	}
	if err := s.messageStore.AppendMessage(ctx, userMsg); err != nil {
		log.Error("failed to append user message", zap.Error(err))
		return nil, fmt.Errorf("append user message: %w", err)
	}

	botMsg := &domain.Message{
		ID:        domain.MessageID(s.newID()),
		SessionID: session.ID,
		Author:    domain.RoleBot,
		Text:      decision.Text,
		Branch:    decision.Branch,
		Intent:    decision.Intent,
		CreatedAt: s.now(),
	}
	if err := s.messageStore.AppendMessage(ctx, botMsg); err != nil {
		log.Error("failed to append bot message", zap.Error(err))
		return nil, fmt.Errorf("append bot message: %w", err)
	}

	session.UpdatedAt = s.now()
	if err := s.sessionStore.UpdateSession(ctx, session); err != nil {
		log.Error("failed to update session", zap.Error(err))
		return nil, fmt.Errorf("update session: %w", err)
	}

	log.Info("message answered", zap.String("branch", string(decision.Branch)))

	return &SendMessageOutput{
		UserMessage: userMsg,
		BotMessage:  botMsg,
		Decision:    decision,
	}, nil
}

func (s *Service) GetSessionTimeline(
	ctx context.Context,
	sessionID domain.SessionID,
	limit int,
) (*domain.Session, []*domain.Message, error) {

	log := observability.LoggerFromContext(ctx).With(
		zap.String("session_id", string(sessionID)),
		zap.Int("limit", limit),
	)

	session, err := s.sessionStore.GetSession(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			log.Error("failed to get session", zap.Error(err))
		}
		return nil, nil, err
	}

	msgs, err := s.messageStore.GetMessagesBySession(ctx, sessionID, limit)
	if err != nil {
		log.Error("failed to get messages", zap.Error(err))
		return nil, nil, fmt.Errorf("get messages: %w", err)
	}

	log.Info("fetched session timeline", zap.Int("message_count", len(msgs)))

	return session, msgs, nil
}

// ListSessions returns the user's sessions, newest first. A limit <= 0
// returns all of them.
func (s *Service) ListSessions(ctx context.Context, userID domain.UserID, limit int) ([]*domain.Session, error) {
	log := observability.LoggerFromContext(ctx).With(zap.String("user_id", string(userID)))

	sessions, err := s.sessionStore.ListSessionsByUser(ctx, userID, limit)
	if err != nil {
		log.Error("failed to list sessions", zap.Error(err))
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	log.Debug("listed sessions", zap.Int("count", len(sessions)))
	return sessions, nil
}
