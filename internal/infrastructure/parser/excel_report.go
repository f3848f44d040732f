package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/symptom-checker/internal/domain/entity"
	"github.com/yourusername/symptom-checker/internal/domain/repository"
)

const (
	historySheet = "History"
	catalogSheet = "Symptoms"
)

type excelReportWriter struct{}

// NewExcelReportWriter xlsx exports of history and catalog
func NewExcelReportWriter() repository.ReportWriter {
	return &excelReportWriter{}
}

// WriteHistory ...
func (w *excelReportWriter) WriteHistory(ctx context.Context, predictions []entity.Prediction, names map[string]string) ([]byte, error) {
	rows := [][]any{{"Date", "Symptoms", "Top condition", "Confidence %", "Severity", "Conditions"}}
	for _, p := range predictions {
		symptomNames := make([]string, len(p.Symptoms))
		for i, id := range p.Symptoms {
			if n, ok := names[id]; ok {
				symptomNames[i] = n
			} else {
				symptomNames[i] = id
			}
		}

		var top entity.Disease
		if d, ok := p.TopDisease(); ok {
			top = d
		}
		conditions := make([]string, len(p.Diseases))
		for i, d := range p.Diseases {
			conditions[i] = fmt.Sprintf("%s (%d%%)", d.Name, d.ConfidencePercent())
		}

		rows = append(rows, []any{
			p.Date.Format("2006-01-02 15:04"),
			strings.Join(symptomNames, ", "),
			top.Name,
			top.ConfidencePercent(),
			string(top.Severity),
			strings.Join(conditions, "; "),
		})
	}
	return writeSheet(historySheet, rows)
}

// WriteCatalog ...
func (w *excelReportWriter) WriteCatalog(ctx context.Context, symptoms []entity.Symptom) ([]byte, error) {
	rows := [][]any{{"ID", "Name", "Description", "Category"}}
	for _, s := range symptoms {
		rows = append(rows, []any{s.ID, s.Name, s.Description, s.Category})
	}
	return writeSheet(catalogSheet, rows)
}

func writeSheet(sheet string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		r := row
		if err := f.SetSheetRow(sheet, addr, &r); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
