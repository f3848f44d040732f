package telegram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yourusername/symptom-checker/internal/domain/entity"
)

const welcomeMessage = `Welcome to the symptom checker! 👋

I can help you:
• browse common symptoms by category (/symptoms, /categories)
• search them by name or description (/search)
• run a quick check on the symptoms you pick (/select, /predict)
• answer general health questions, just write to me

/help lists every command.`

const helpMessage = `🤖 Commands:

🩺 Symptom check:
/symptoms [category] - Symptom catalog
/categories - Browse by category
/search <term> - Find symptoms
/select <id...> - Add symptoms to your selection
/selected - Show your selection
/reset - Clear your selection
/predict - Analyze the selected symptoms

📋 History:
/history [all|recent|high] - Past checks
/stats - Summary of your checks
/report - Download your history (xlsx)

💬 Chat:
/export - Download this conversation
/clear - Start the conversation over

🔐 Admin:
/admin - Log in
/logout - Log out
/catalog - Catalog info
/template - Download the catalog (xlsx)
/clean - Wipe chats and history

Any other message goes to the health assistant.`

const predictionDisclaimer = "⚠️ This prediction is for informational purposes only. Please consult a healthcare professional for proper diagnosis and treatment."

const adminWelcomeMessage = `✅ Welcome to the admin panel!

📤 To replace the symptom catalog send an .xlsx file (max 5MB) with the columns:
- ID (optional, derived from the name)
- Name
- Description
- Category

/template - Current catalog as a ready-made file
/catalog - Catalog info
/clean - Wipe chats and history
/logout - Leave the admin panel`

// formatPrediction result card for one check
func formatPrediction(p entity.Prediction, symptomNames []string) string {
	var sb strings.Builder
	sb.WriteString("🩺 Analysis results\n")
	sb.WriteString(fmt.Sprintf("Symptoms: %s\n\n", strings.Join(symptomNames, ", ")))

	sb.WriteString("Possible conditions:\n")
	for i, d := range p.Diseases {
		sb.WriteString(fmt.Sprintf("%d. %s %s %d%% confidence, %s severity\n", i+1, d.Name, bandIcon(d.ConfidenceBand()), d.ConfidencePercent(), d.Severity))
		if d.Description != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", d.Description))
		}
	}

	if len(p.Remedies) > 0 {
		sb.WriteString("\n💊 Recommended actions:\n")
		for _, r := range p.Remedies {
			sb.WriteString(fmt.Sprintf("• %s [%s, %s priority]: %s\n", r.Title, r.Type, r.Urgency, r.Description))
		}
	}

	if len(p.Precautions) > 0 {
		sb.WriteString("\n🛡 Precautions:\n")
		for _, pc := range p.Precautions {
			sb.WriteString(fmt.Sprintf("• %s\n", pc))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(predictionDisclaimer)
	return sb.String()
}

func bandIcon(band entity.Level) string {
	switch band {
	case entity.LevelHigh:
		return "🟢"
	case entity.LevelMedium:
		return "🟡"
	default:
		return "🔴"
	}
}

// formatHistory newest first, one block per check
func formatHistory(history []entity.Prediction, filter entity.HistoryFilter, names map[string]string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 Health history (%s): %d check(s)\n\n", filter, len(history)))
	for i, p := range history {
		symptoms := make([]string, len(p.Symptoms))
		for j, id := range p.Symptoms {
			symptoms[j] = id
			if name, ok := names[id]; ok {
				symptoms[j] = name
			}
		}
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, p.Date.Format("Jan 2, 2006 15:04")))
		sb.WriteString(fmt.Sprintf("   Symptoms: %s\n", strings.Join(symptoms, ", ")))
		if top, ok := p.TopDisease(); ok {
			sb.WriteString(fmt.Sprintf("   Top result: %s (%d%%)\n", top.Name, top.ConfidencePercent()))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatStats(stats entity.HistoryStats) string {
	if stats.TotalChecks == 0 {
		return "📊 No health checks yet."
	}
	mostCommon := stats.MostCommon
	if mostCommon == "" {
		mostCommon = "N/A"
	}
	return fmt.Sprintf("📊 Your statistics\n\nTotal checks: %d\nMost common: %s\nAverage confidence: %d%%",
		stats.TotalChecks, mostCommon, stats.AverageConfidence)
}

// truncateString cuts at max bytes without splitting a rune
func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
