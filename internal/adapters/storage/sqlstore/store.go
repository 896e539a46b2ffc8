// Package sqlstore keeps sessions and transcripts in SQLite or Postgres
// through database/sql. Callers import the driver they need.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PabloGalante/haven/internal/domain"
)

type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// DriverName is the database/sql driver registered for the dialect
// (modernc.org/sqlite and github.com/lib/pq).
func (d Dialect) DriverName() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

var schemas = map[Dialect]string{
	SQLite: `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_user_idx ON sessions (user_id, created_at);
CREATE TABLE IF NOT EXISTS messages (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	session_id TEXT NOT NULL REFERENCES sessions (id),
	author     TEXT NOT NULL,
	text       TEXT NOT NULL,
	category   TEXT NOT NULL DEFAULT '',
	score      REAL NOT NULL DEFAULT 0,
	branch     TEXT NOT NULL DEFAULT '',
	intent     TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS messages_session_idx ON messages (session_id, seq);
`,
	Postgres: `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	created_at BIGINT NOT NULL,
	updated_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_user_idx ON sessions (user_id, created_at);
CREATE TABLE IF NOT EXISTS messages (
	seq        BIGSERIAL PRIMARY KEY,
	id         TEXT NOT NULL UNIQUE,
	session_id TEXT NOT NULL REFERENCES sessions (id),
	author     TEXT NOT NULL,
	text       TEXT NOT NULL,
	category   TEXT NOT NULL DEFAULT '',
	score      DOUBLE PRECISION NOT NULL DEFAULT 0,
	branch     TEXT NOT NULL DEFAULT '',
	intent     TEXT NOT NULL DEFAULT '',
	created_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS messages_session_idx ON messages (session_id, seq);
`,
}

// Store implements domain.SessionStore and domain.MessageStore.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects, pings and migrates.
func Open(ctx context.Context, dialect Dialect, dsn string) (*Store, error) {
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect.DriverName(), err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect.DriverName(), err)
	}

	s := New(db, dialect)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing connection; the caller owns its lifecycle.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemas[s.dialect]); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// rebind turns ? placeholders into $n for Postgres.
func (s *Store) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ─────────────────────────────────────────
// SessionStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO sessions (id, user_id, title, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`),
		string(session.ID), string(session.UserID), session.Title,
		session.CreatedAt.UnixNano(), session.UpdatedAt.UnixNano(),
	)
	if err != nil {
		if _, getErr := s.GetSession(ctx, session.ID); getErr == nil {
			return domain.ErrSessionExists
		}
		return fmt.Errorf("sql CreateSession: %w", err)
	}
	return nil
}

func (s *Store) UpdateSession(ctx context.Context, session *domain.Session) error {
	res, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE sessions SET user_id = ?, title = ?, updated_at = ? WHERE id = ?`),
		string(session.UserID), session.Title, session.UpdatedAt.UnixNano(), string(session.ID),
	)
	if err != nil {
		return fmt.Errorf("sql UpdateSession: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sql UpdateSession: %w", err)
	}
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT id, user_id, title, created_at, updated_at FROM sessions WHERE id = ?`), string(id))

	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("sql GetSession: %w", err)
	}
	return sess, nil
}

func (s *Store) ListSessionsByUser(ctx context.Context, userID domain.UserID, limit int) ([]*domain.Session, error) {
	query := `SELECT id, user_id, title, created_at, updated_at FROM sessions WHERE user_id = ? ORDER BY created_at DESC`
	args := []any{string(userID)}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("sql ListSessionsByUser: %w", err)
	}
	defer rows.Close()

	var out []*domain.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("sql ListSessionsByUser scan: %w", err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(sc scanner) (*domain.Session, error) {
	var (
		id, userID, title string
		created, updated  int64
	)
	if err := sc.Scan(&id, &userID, &title, &created, &updated); err != nil {
		return nil, err
	}
	return &domain.Session{
		ID:        domain.SessionID(id),
		UserID:    domain.UserID(userID),
		Title:     title,
		CreatedAt: time.Unix(0, created),
		UpdatedAt: time.Unix(0, updated),
	}, nil
}

// ─────────────────────────────────────────
// MessageStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendMessage(ctx context.Context, msg *domain.Message) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO messages (id, session_id, author, text, category, score, branch, intent, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		string(msg.ID), string(msg.SessionID), string(msg.Author), msg.Text,
		string(msg.Category), msg.Score, string(msg.Branch), msg.Intent, msg.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("sql AppendMessage: %w", err)
	}
	return nil
}

func (s *Store) GetMessagesBySession(ctx context.Context, sessionID domain.SessionID, limit int) ([]*domain.Message, error) {
	inner := `SELECT seq, id, session_id, author, text, category, score, branch, intent, created_at
		FROM messages WHERE session_id = ? ORDER BY seq DESC`
	args := []any{string(sessionID)}
	if limit > 0 {
		inner += ` LIMIT ?`
		args = append(args, limit)
	}
	query := `SELECT id, session_id, author, text, category, score, branch, intent, created_at FROM (` +
		inner + `) AS recent ORDER BY seq ASC`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("sql GetMessagesBySession: %w", err)
	}
	defer rows.Close()

	var out []*domain.Message
	for rows.Next() {
		var (
			id, sid, author, text, category, branch, intent string
			score                                           float64
			created                                         int64
		)
		if err := rows.Scan(&id, &sid, &author, &text, &category, &score, &branch, &intent, &created); err != nil {
			return nil, fmt.Errorf("sql GetMessagesBySession scan: %w", err)
		}
		out = append(out, &domain.Message{
			ID:        domain.MessageID(id),
			SessionID: domain.SessionID(sid),
			Author:    domain.Role(author),
			Text:      text,
			Category:  domain.Category(category),
			Score:     score,
			Branch:    domain.Branch(branch),
			Intent:    intent,
			CreatedAt: time.Unix(0, created),
		})
	}
	return out, rows.Err()
}
