package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/symptom-checker/internal/domain/entity"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2563EB")).
			MarginBottom(1)

	categoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Italic(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	assistantStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 1).
			Width(80)

	resultStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#10B981")).
			Padding(1, 2).
			Width(80)

	disclaimerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B91C1C")).
			Italic(true).
			Width(80)

	// confidence bands
	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
)

func bandStyle(l entity.Level) lipgloss.Style {
	switch l {
	case entity.LevelHigh:
		return highStyle
	case entity.LevelMedium:
		return mediumStyle
	default:
		return lowStyle
	}
}

// renderSymptoms groups by category; empty input renders the no-results hint
func renderSymptoms(symptoms []entity.Symptom) string {
	if len(symptoms) == 0 {
		return hintStyle.Render("No symptoms found. Try a different search term.")
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%d symptom(s)", len(symptoms))))
	sb.WriteString("\n")
	categories := entity.CategoriesOf(symptoms)
	if len(categories) < len(symptoms) {
		// uncategorised entries from uploaded catalogs
		categories = append(categories, "")
	}
	for _, category := range categories {
		var rows []string
		for _, s := range symptoms {
			if s.Category == category {
				rows = append(rows, fmt.Sprintf("  %s %s - %s", idStyle.Render(fmt.Sprintf("%-18s", s.ID)), s.Name, s.Description))
			}
		}
		if len(rows) == 0 {
			continue
		}
		label := category
		if label == "" {
			label = "Other"
		}
		sb.WriteString(categoryStyle.Render(label))
		sb.WriteString("\n")
		sb.WriteString(strings.Join(rows, "\n"))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// renderPrediction boxed result card
func renderPrediction(p entity.Prediction, names []string) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("🩺 Analysis results"))
	content.WriteString("\n")
	content.WriteString(fmt.Sprintf("Symptoms: %s\n\n", strings.Join(names, ", ")))

	content.WriteString(categoryStyle.Render("Possible conditions"))
	content.WriteString("\n")
	for _, d := range p.Diseases {
		pct := bandStyle(d.ConfidenceBand()).Render(fmt.Sprintf("%3d%%", d.ConfidencePercent()))
		content.WriteString(fmt.Sprintf("  %s %s (%s severity)\n", pct, d.Name, d.Severity))
		if d.Description != "" {
			content.WriteString(fmt.Sprintf("       %s\n", d.Description))
		}
	}

	if len(p.Remedies) > 0 {
		content.WriteString("\n")
		content.WriteString(categoryStyle.Render("Recommended actions"))
		content.WriteString("\n")
		for _, r := range p.Remedies {
			content.WriteString(fmt.Sprintf("  • %s [%s, %s priority]\n    %s\n", r.Title, r.Type, r.Urgency, r.Description))
		}
	}

	if len(p.Precautions) > 0 {
		content.WriteString("\n")
		content.WriteString(categoryStyle.Render("Precautions"))
		content.WriteString("\n")
		for _, pc := range p.Precautions {
			content.WriteString(fmt.Sprintf("  • %s\n", pc))
		}
	}

	return resultStyle.Render(strings.TrimRight(content.String(), "\n")) + "\n" +
		disclaimerStyle.Render("This prediction is for informational purposes only. Please consult a healthcare professional for proper diagnosis and treatment.")
}

func renderReply(text string) string {
	return renderMessage(entity.SenderBot.Label(), text)
}

func renderMessage(label, text string) string {
	if label == entity.SenderUser.Label() {
		return promptStyle.Render(label+": ") + text
	}
	return assistantStyle.Render(label + ": " + text)
}
