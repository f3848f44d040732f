package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/yourusername/symptom-checker/internal/usecase"
)

// ChatSession terminal conversation with the assistant
type ChatSession struct {
	chat   usecase.ChatUseCase
	userID int64
	in     *bufio.Scanner
	out    io.Writer
}

// NewChatSession ...
func NewChatSession(chat usecase.ChatUseCase, userID int64, in io.Reader, out io.Writer) *ChatSession {
	return &ChatSession{
		chat:   chat,
		userID: userID,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run reads lines until EOF or "exit". A non-empty exportPath receives the
// transcript when the session ends.
func (s *ChatSession) Run(ctx context.Context, exportPath string) error {
	history, err := s.chat.History(ctx, s.userID)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, titleStyle.Render("💬 Health assistant"))
	for _, m := range history {
		fmt.Fprintln(s.out, renderMessage(m.Sender.Label(), m.Text))
	}
	fmt.Fprintln(s.out, hintStyle.Render("Commands: /clear, /export, exit"))

	for {
		fmt.Fprint(s.out, promptStyle.Render("You> "))
		if !s.in.Scan() {
			break
		}
		line := strings.TrimSpace(s.in.Text())

		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit", "q":
			return s.finish(ctx, exportPath)
		case "/clear":
			if err := s.chat.Clear(ctx, s.userID); err != nil {
				return err
			}
			fmt.Fprintln(s.out, hintStyle.Render("Conversation cleared."))
			continue
		case "/export":
			path, err := s.export(ctx, "")
			if err != nil {
				fmt.Fprintln(s.out, errorStyle.Render("❌ "+err.Error()))
				continue
			}
			fmt.Fprintln(s.out, hintStyle.Render("Saved "+path))
			continue
		}

		reply, err := s.chat.Send(ctx, s.userID, line)
		if err != nil {
			return err
		}
		if reply != nil {
			fmt.Fprintln(s.out, renderReply(reply.Text))
		}
	}
	if err := s.in.Err(); err != nil {
		return err
	}
	return s.finish(ctx, exportPath)
}

func (s *ChatSession) finish(ctx context.Context, exportPath string) error {
	if exportPath != "" {
		path, err := s.export(ctx, exportPath)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, hintStyle.Render("Saved "+path))
	}
	fmt.Fprintln(s.out, "👋 Take care!")
	return nil
}

// export writes the transcript; an empty path uses the dated default name
func (s *ChatSession) export(ctx context.Context, path string) (string, error) {
	text, err := s.chat.Export(ctx, s.userID)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = usecase.TranscriptFileName(time.Now())
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("failed to write transcript: %w", err)
	}
	return path, nil
}
