package domain

import (
	"context"
	"errors"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
)

// SentimentProvider classifies raw text. Implementations never fail the
// caller: when their primary mechanism is unavailable they degrade to a
// fallback without changing the result shape.
type SentimentProvider interface {
	Classify(ctx context.Context, text string) SentimentResult
}

// SessionStore defines session's persistence
type SessionStore interface {
	CreateSession(ctx context.Context, session *Session) error
	UpdateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, id SessionID) (*Session, error)
	ListSessionsByUser(ctx context.Context, userID UserID, limit int) ([]*Session, error)
}

// MessageStore defines message's persistence
type MessageStore interface {
	AppendMessage(ctx context.Context, msg *Message) error
	// GetMessagesBySession returns the last `limit` messages in chronological
	// order; limit <= 0 returns all of them.
	GetMessagesBySession(ctx context.Context, sessionID SessionID, limit int) ([]*Message, error)
}
