package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/yourusername/symptom-checker/internal/domain/entity"
)

func TestSQLiteChatRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "chat.db")
	repo, closeDB, err := NewSQLiteChatRepository(path, 4)
	if err != nil {
		t.Fatalf("NewSQLiteChatRepository: %v", err)
	}
	defer closeDB()

	testChatRepository(t, repo)
	testChatSeed(t, repo)
}

func TestSQLiteChatPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "chat.db")

	repo, closeDB, err := NewSQLiteChatRepository(path, 10)
	if err != nil {
		t.Fatalf("NewSQLiteChatRepository: %v", err)
	}
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	// same timestamp: insertion order must still hold
	_ = repo.SaveMessage(ctx, chatMessage(7, 0, entity.SenderUser, ts))
	_ = repo.SaveMessage(ctx, chatMessage(7, 1, entity.SenderBot, ts))
	if err := closeDB(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, closeAgain, err := NewSQLiteChatRepository(path, 10)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer closeAgain()

	h, err := reopened.GetHistory(ctx, 7, 0)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(h) != 2 || h[0].Sender != entity.SenderUser || h[1].Sender != entity.SenderBot {
		t.Fatalf("unexpected history after reopen: %+v", h)
	}
}

func TestSQLiteChatEmptyPath(t *testing.T) {
	if _, _, err := NewSQLiteChatRepository("", 10); err == nil {
		t.Fatalf("empty path should fail")
	}
}
