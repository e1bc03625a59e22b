package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"costbook/internal"
)

// ExportRowsToXLSX writes the batch review workbook consumed by estimators.
func ExportRowsToXLSX(rows []internal.BatchRow, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"input_line_no", "source", "raw_line", "parsed_qty", "parsed_unit",
		"match_code", "match_description", "match_unit", "unit_cost",
		"score", "match_type", "extended_cost",
		"runner_up_code", "runner_up_score",
		"suggested_divisions", "matched_keywords",
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, row.InputLineNo)
		set(2, row.Source)
		set(3, row.RawLine)
		set(4, derefFloat(row.ParsedQty))
		set(5, derefString(row.ParsedUnit))
		set(6, derefString(row.MatchCode))
		set(7, derefString(row.MatchDesc))
		set(8, derefString(row.MatchUnit))
		set(9, derefFloat(row.MatchUnitCost))
		set(10, row.Score)
		set(11, row.MatchType)
		set(12, derefFloat(row.ExtendedCost))
		set(13, derefString(row.RunnerUpCode))
		set(14, derefFloat(row.RunnerUpScore))
		set(15, row.SuggestedDivs)
		set(16, row.MatchedKeywords)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func derefFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
