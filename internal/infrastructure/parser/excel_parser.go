package parser

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/symptom-checker/internal/domain/entity"
	"github.com/yourusername/symptom-checker/internal/domain/repository"
)

type excelParser struct{}

// NewExcelParser symptom catalog reader for .xlsx files
func NewExcelParser() repository.CatalogParser {
	return &excelParser{}
}

// ParseSymptoms ...
func (e *excelParser) ParseSymptoms(ctx context.Context, filePath string) ([]entity.Symptom, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	return e.parseExcelFile(f, filePath)
}

// ParseSymptomsFromBytes ...
func (e *excelParser) ParseSymptomsFromBytes(ctx context.Context, data []byte, filename string) ([]entity.Symptom, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open excel from bytes: %w", err)
	}
	defer f.Close()

	return e.parseExcelFile(f, filename)
}

// parseExcelFile reads the first sheet. With a header row the columns are
// located by name; without one the layout is name, description, category.
func (e *excelParser) parseExcelFile(f *excelize.File, source string) ([]entity.Symptom, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("excel file is empty")
	}

	columns, hasHeader := e.mapColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
	} else {
		columns = map[string]int{"name": 0, "description": 1, "category": 2}
	}
	nameCol, ok := columns["name"]
	if !ok {
		return nil, fmt.Errorf("header has no name column: %v", rows[0])
	}

	log.WithFields(log.Fields{
		"source":  source,
		"rows":    len(rows),
		"header":  hasHeader,
		"columns": columns,
	}).Debug("parsing symptom catalog")

	var symptoms []entity.Symptom
	seen := make(map[string]bool)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		name := cell(row, nameCol)
		if name == "" {
			log.WithField("row", i+1).Warn("skipping symptom row without a name")
			continue
		}

		s := entity.Symptom{Name: name}
		if idx, ok := columns["id"]; ok {
			s.ID = cell(row, idx)
		}
		if s.ID == "" {
			s.ID = slugify(name)
		}
		if idx, ok := columns["description"]; ok {
			s.Description = cell(row, idx)
		}
		if idx, ok := columns["category"]; ok {
			s.Category = cell(row, idx)
		}

		if seen[s.ID] {
			log.WithFields(log.Fields{"row": i + 1, "id": s.ID}).Warn("skipping duplicate symptom id")
			continue
		}
		seen[s.ID] = true
		symptoms = append(symptoms, s)
	}

	if len(symptoms) == 0 {
		return nil, fmt.Errorf("no symptoms found in %s", source)
	}
	return symptoms, nil
}

// mapColumns header cell name -> column index; ok is false when the row does not look like a header
func (e *excelParser) mapColumns(header []string) (map[string]int, bool) {
	columns := make(map[string]int)
	for i, raw := range header {
		h := strings.ToLower(strings.TrimSpace(raw))
		switch {
		case h == "id" || h == "code" || h == "key":
			setOnce(columns, "id", i)
		case contains(h, "name", "symptom", "title"):
			setOnce(columns, "name", i)
		case contains(h, "description", "desc", "details"):
			setOnce(columns, "description", i)
		case contains(h, "category", "group", "type"):
			setOnce(columns, "category", i)
		}
	}
	_, hasName := columns["name"]
	return columns, hasName
}

func setOnce(m map[string]int, key string, idx int) {
	if _, exists := m[key]; !exists {
		m[key] = idx
	}
}

func contains(str string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(str, kw) {
			return true
		}
	}
	return false
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// slugify "Shortness of Breath" -> "shortness_of_breath"
func slugify(name string) string {
	var sb strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && sb.Len() > 0 {
				sb.WriteByte('_')
			}
			pendingSep = false
			sb.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return sb.String()
}
