package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/symptom-checker/internal/domain/entity"
)

// TranscriptTimeLayout timestamp format inside exported transcripts
const TranscriptTimeLayout = "2006-01-02 15:04:05"

// FormatTranscript "[<time>] <Sender>: <text>" per message, separated by a
// blank line. No messages gives an empty string.
func FormatTranscript(messages []entity.ChatMessage, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	entries := make([]string, len(messages))
	for i, m := range messages {
		entries[i] = fmt.Sprintf("[%s] %s: %s", m.Timestamp.In(loc).Format(TranscriptTimeLayout), m.Sender.Label(), m.Text)
	}
	return strings.Join(entries, "\n\n")
}

// TranscriptFileName download name for a transcript exported at t
func TranscriptFileName(t time.Time) string {
	return fmt.Sprintf("health-chat-%s.txt", t.Format("2006-01-02"))
}
