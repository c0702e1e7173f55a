// internal/report/report.go
package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mailburst/mailburst/internal/model"
)

const timestampLayout = "20060102_150405"

// WriteSuccess writes the sent outcomes to an xlsx workbook in dir and
// returns the base filename. Nothing is written when there are no outcomes.
func WriteSuccess(dir, templateLabel string, sent []model.Outcome) (string, error) {
	if len(sent) == 0 {
		return "", nil
	}
	name := fmt.Sprintf("successful_emails_template%s_%s.xlsx",
		templateLabel, time.Now().Format(timestampLayout))
	headers := []string{"Name", "Email", "CC", "BCC", "Template", "Status"}
	err := write(filepath.Join(dir, name), headers, sent, func(o model.Outcome) []interface{} {
		return []interface{}{
			o.Name, o.Email,
			strings.Join(o.CC, ", "), strings.Join(o.BCC, ", "),
			o.Template, string(o.Status),
		}
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// WriteFailure writes failed and skipped outcomes to a single workbook, with
// the reason each one did not go out, and returns the base filename.
func WriteFailure(dir, templateLabel string, failed []model.Outcome) (string, error) {
	if len(failed) == 0 {
		return "", nil
	}
	name := fmt.Sprintf("failed_emails_template%s_%s.xlsx",
		templateLabel, time.Now().Format(timestampLayout))
	headers := []string{"Name", "Email", "Template", "Status", "Reason"}
	err := write(filepath.Join(dir, name), headers, failed, func(o model.Outcome) []interface{} {
		return []interface{}{o.Name, o.Email, o.Template, string(o.Status), o.Reason}
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

func write(path string, headers []string, outcomes []model.Outcome, rowOf func(model.Outcome) []interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	cell, _ := excelize.CoordinatesToCellName(1, 1)
	if err := f.SetSheetRow(sheet, cell, &headers); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}

	for i, o := range outcomes {
		row := rowOf(o)
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write report row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}
