package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/yourusername/symptom-checker/internal/domain/entity"
	"github.com/yourusername/symptom-checker/internal/domain/repository"
)

type sqliteChatRepository struct {
	db      *sql.DB
	maxSize int
}

// NewSQLiteChatRepository transcripts that survive restarts
func NewSQLiteChatRepository(dbPath string, maxContextSize int) (repository.ChatRepository, func() error, error) {
	if dbPath == "" {
		return nil, nil, errors.New("sqlite chat store: empty db path")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer keeps the trim-after-insert transaction simple
	db.SetMaxOpenConns(1)

	if err := createChatSchema(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	return &sqliteChatRepository{db: db, maxSize: maxContextSize}, db.Close, nil
}

func createChatSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS chat_messages (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	user_id INTEGER NOT NULL,
	sender TEXT NOT NULL,
	text TEXT NOT NULL,
	ts TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chat_messages_user ON chat_messages (user_id, seq);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create chat schema: %w", err)
	}
	return nil
}

// SaveMessage insert and trim the user's transcript in one transaction
func (s *sqliteChatRepository) SaveMessage(ctx context.Context, message entity.ChatMessage) error {
	if !message.Sender.Valid() {
		return fmt.Errorf("invalid sender %q", message.Sender)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO chat_messages (id, user_id, sender, text, ts) VALUES (?, ?, ?, ?, ?)`,
		message.ID, message.UserID, string(message.Sender), message.Text, message.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	if s.maxSize > 0 {
		_, err = tx.ExecContext(ctx, `
DELETE FROM chat_messages
WHERE seq IN (
  SELECT seq FROM chat_messages
  WHERE user_id = ?
  ORDER BY seq DESC
  LIMIT -1 OFFSET ?
)`, message.UserID, s.maxSize)
		if err != nil {
			return fmt.Errorf("trim transcript: %w", err)
		}
	}

	return tx.Commit()
}

// SeedMessage conditional insert, atomic as a single statement
func (s *sqliteChatRepository) SeedMessage(ctx context.Context, message entity.ChatMessage) (bool, error) {
	if !message.Sender.Valid() {
		return false, fmt.Errorf("invalid sender %q", message.Sender)
	}

	res, err := s.db.ExecContext(ctx, `
INSERT INTO chat_messages (id, user_id, sender, text, ts)
SELECT ?, ?, ?, ?, ?
WHERE NOT EXISTS (SELECT 1 FROM chat_messages WHERE user_id = ?)`,
		message.ID, message.UserID, string(message.Sender), message.Text, message.Timestamp.UTC(), message.UserID)
	if err != nil {
		return false, fmt.Errorf("seed message: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("seed message: %w", err)
	}
	return n == 1, nil
}

// GetHistory ...
func (s *sqliteChatRepository) GetHistory(ctx context.Context, userID int64, limit int) ([]entity.ChatMessage, error) {
	query := `SELECT id, user_id, sender, text, ts FROM chat_messages WHERE user_id = ? ORDER BY seq DESC`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	msgs, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	// newest-first from the query, callers want oldest first
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// GetAllMessages ...
func (s *sqliteChatRepository) GetAllMessages(ctx context.Context, limit int) ([]entity.ChatMessage, error) {
	query := `SELECT id, user_id, sender, text, ts FROM chat_messages ORDER BY ts DESC, seq DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return s.query(ctx, query, args...)
}

// ClearHistory ...
func (s *sqliteChatRepository) ClearHistory(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE user_id = ?`, userID)
	return err
}

// ClearAll ...
func (s *sqliteChatRepository) ClearAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chat_messages`)
	return err
}

// GetContext ...
func (s *sqliteChatRepository) GetContext(ctx context.Context, userID int64) (*entity.ChatContext, error) {
	msgs, err := s.GetHistory(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, fmt.Errorf("chat context for user %d: %w", userID, repository.ErrNotFound)
	}
	return &entity.ChatContext{
		UserID:   userID,
		Messages: msgs,
		LastUsed: msgs[len(msgs)-1].Timestamp,
	}, nil
}

func (s *sqliteChatRepository) query(ctx context.Context, query string, args ...any) ([]entity.ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := []entity.ChatMessage{}
	for rows.Next() {
		var msg entity.ChatMessage
		var sender string
		var ts time.Time
		if err := rows.Scan(&msg.ID, &msg.UserID, &sender, &msg.Text, &ts); err != nil {
			return nil, err
		}
		msg.Sender = entity.Sender(sender)
		msg.Timestamp = ts
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}
