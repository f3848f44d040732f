package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yourusername/symptom-checker/internal/domain/entity"
	"github.com/yourusername/symptom-checker/internal/infrastructure/keyword"
	"github.com/yourusername/symptom-checker/internal/infrastructure/seed"
)

func TestChatStartsWithGreeting(t *testing.T) {
	f := newFixture(t)
	history, err := f.chatUC.History(context.Background(), 1)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 || history[0].Sender != entity.SenderBot || history[0].Text != seed.Greeting {
		t.Fatalf("expected the greeting only, got %+v", history)
	}

	// asking again must not add a second greeting
	again, _ := f.chatUC.History(context.Background(), 1)
	if len(again) != 1 {
		t.Fatalf("greeting duplicated: %d messages", len(again))
	}
}

func TestChatSend(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reply, err := f.chatUC.Send(ctx, 1, "  I have a Fever  ")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	want, _ := keyword.Match("fever")
	if reply == nil || reply.Text != want || reply.Sender != entity.SenderBot {
		t.Fatalf("unexpected reply %+v", reply)
	}

	history, _ := f.chatUC.History(ctx, 1)
	if len(history) != 3 {
		t.Fatalf("expected greeting, question and reply, got %d", len(history))
	}
	if history[1].Sender != entity.SenderUser || history[1].Text != "I have a Fever" {
		t.Fatalf("user message not stored trimmed: %+v", history[1])
	}

	fallback, _ := f.chatUC.Send(ctx, 1, "hello")
	if fallback.Text != keyword.DefaultResponses()[0] {
		t.Fatalf("expected first default reply, got %q", fallback.Text)
	}
}

func TestChatSendIgnoresBlank(t *testing.T) {
	f := newFixture(t)
	reply, err := f.chatUC.Send(context.Background(), 1, "   ")
	if err != nil || reply != nil {
		t.Fatalf("blank input should be a no-op, got %+v %v", reply, err)
	}
	if msgs, _ := f.chats.GetHistory(context.Background(), 1, 0); len(msgs) != 0 {
		t.Fatalf("blank input stored %d messages", len(msgs))
	}
}

func TestChatClearKeepsGreeting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _ = f.chatUC.Send(ctx, 1, "cough")
	_, _ = f.chatUC.Send(ctx, 2, "cough")

	if err := f.chatUC.Clear(ctx, 1); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	h, _ := f.chatUC.History(ctx, 1)
	if len(h) != 1 || h[0].Text != seed.Greeting {
		t.Fatalf("clear should leave only the greeting, got %+v", h)
	}
	if other, _ := f.chatUC.History(ctx, 2); len(other) != 3 {
		t.Fatalf("other conversations must be untouched")
	}
}

func TestChatExport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _ = f.chatUC.Send(ctx, 1, "thanks")

	text, err := f.chatUC.Export(ctx, 1)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	entries := strings.Split(text, "\n\n")
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %q", len(entries), text)
	}
	if entries[1] != "[2024-05-10 12:00:00] You: thanks" {
		t.Fatalf("unexpected entry %q", entries[1])
	}
	if !strings.HasPrefix(entries[2], "[2024-05-10 12:00:00] AI Assistant: You're welcome!") {
		t.Fatalf("unexpected entry %q", entries[2])
	}
}

func TestFormatTranscript(t *testing.T) {
	if got := FormatTranscript(nil, time.UTC); got != "" {
		t.Fatalf("empty transcript should be empty, got %q", got)
	}

	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	msgs := []entity.ChatMessage{
		{Sender: entity.SenderUser, Text: "one", Timestamp: ts},
		{Sender: entity.SenderBot, Text: "two", Timestamp: ts},
		{Sender: entity.SenderUser, Text: "three", Timestamp: ts},
	}
	got := FormatTranscript(msgs, time.UTC)
	if n := len(strings.Split(got, "\n\n")); n != len(msgs) {
		t.Fatalf("expected %d entries, got %d", len(msgs), n)
	}

	tz := time.FixedZone("UTC+5", 5*60*60)
	local := FormatTranscript(msgs[:1], tz)
	if local != "[2024-01-02 08:04:05] You: one" {
		t.Fatalf("timestamp not rendered in the given location: %q", local)
	}
}

func TestTranscriptFileName(t *testing.T) {
	got := TranscriptFileName(time.Date(2024, 7, 4, 23, 0, 0, 0, time.UTC))
	if got != "health-chat-2024-07-04.txt" {
		t.Fatalf("unexpected name %q", got)
	}
}

func TestChatExportKeepsLongConversations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const exchanges = 30
	for i := 0; i < exchanges; i++ {
		if _, err := f.chatUC.Send(ctx, 1, "I have a fever"); err != nil {
			t.Fatalf("Send %d: %v", i, err)
		}
		f.clock.Advance(time.Second)
	}

	history, err := f.chatUC.History(ctx, 1)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if want := 1 + 2*exchanges; len(history) != want {
		t.Fatalf("expected %d messages, got %d", want, len(history))
	}
	if history[0].Text != seed.Greeting {
		t.Fatalf("greeting dropped from a long conversation: %q", history[0].Text)
	}

	text, err := f.chatUC.Export(ctx, 1)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if n := len(strings.Split(text, "\n\n")); n != len(history) {
		t.Fatalf("exported %d entries for %d messages", n, len(history))
	}
}

func TestChatGreetingSeededOnceUnderConcurrency(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.chatUC.History(ctx, 5); err != nil {
				t.Errorf("History: %v", err)
			}
		}()
	}
	wg.Wait()

	history, _ := f.chatUC.History(ctx, 5)
	if len(history) != 1 || history[0].Text != seed.Greeting {
		t.Fatalf("expected a single greeting, got %d messages", len(history))
	}
}
