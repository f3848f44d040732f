package entity

import (
	"math"
	"strings"
	"time"
)

// Level low/medium/high scale shared by disease severity and remedy urgency
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Valid ...
func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}

// RemedyType kind of suggested remedy
type RemedyType string

const (
	RemedyMedication RemedyType = "medication"
	RemedyLifestyle  RemedyType = "lifestyle"
	RemedyHome       RemedyType = "home-remedy"
)

// Valid ...
func (t RemedyType) Valid() bool {
	switch t {
	case RemedyMedication, RemedyLifestyle, RemedyHome:
		return true
	}
	return false
}

// Disease a condition listed in a prediction
type Disease struct {
	Name        string  `json:"name"`
	Confidence  float64 `json:"confidence"` // 0..1
	Severity    Level   `json:"severity"`
	Description string  `json:"description"`
}

// ConfidencePercent confidence rounded to a whole percentage
func (d Disease) ConfidencePercent() int {
	return int(math.Round(d.Confidence * 100))
}

// ConfidenceBand display band: above 0.8 high, above 0.6 medium, otherwise low
func (d Disease) ConfidenceBand() Level {
	switch {
	case d.Confidence > 0.8:
		return LevelHigh
	case d.Confidence > 0.6:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Remedy suggested action
type Remedy struct {
	Type        RemedyType `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Urgency     Level      `json:"urgency"`
}

// Prediction result of a symptom check
type Prediction struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"user_id"`
	Symptoms    []string  `json:"symptoms"`
	Diseases    []Disease `json:"diseases"`
	Remedies    []Remedy  `json:"remedies"`
	Precautions []string  `json:"precautions"`
	Date        time.Time `json:"date"`
}

// TopDisease first listed disease
func (p Prediction) TopDisease() (Disease, bool) {
	if len(p.Diseases) == 0 {
		return Disease{}, false
	}
	return p.Diseases[0], true
}

// HasHighConfidence any disease above 0.8
func (p Prediction) HasHighConfidence() bool {
	for _, d := range p.Diseases {
		if d.Confidence > 0.8 {
			return true
		}
	}
	return false
}

// HistoryFilter selects which past predictions to show
type HistoryFilter string

const (
	HistoryAll            HistoryFilter = "all"
	HistoryRecent         HistoryFilter = "recent"
	HistoryHighConfidence HistoryFilter = "high-confidence"
)

// RecentWindow how far back HistoryRecent looks
const RecentWindow = 7 * 24 * time.Hour

// ParseHistoryFilter accepts the filter names plus "high"; anything else is HistoryAll.
func ParseHistoryFilter(s string) HistoryFilter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "recent":
		return HistoryRecent
	case "high", "high-confidence":
		return HistoryHighConfidence
	default:
		return HistoryAll
	}
}

// Matches reports whether p belongs in the filtered history as of now.
func (f HistoryFilter) Matches(p Prediction, now time.Time) bool {
	switch f {
	case HistoryRecent:
		return p.Date.After(now.Add(-RecentWindow))
	case HistoryHighConfidence:
		return p.HasHighConfidence()
	default:
		return true
	}
}

// HistoryStats summary shown above the history list
type HistoryStats struct {
	TotalChecks       int    `json:"total_checks"`
	MostCommon        string `json:"most_common"`
	AverageConfidence int    `json:"average_confidence"` // percent, top disease only
}
