package pipeline

import (
	"fmt"
	"strings"
	"time"

	"costbook/internal"
)

// BatchService translates extracted scope lines and flattens the outcome
// into review rows for export.
type BatchService struct {
	engine *Engine
}

func NewBatchService(engine *Engine) *BatchService {
	return &BatchService{engine: engine}
}

type BatchResult struct {
	Rows    []internal.BatchRow
	Matched int
	TookMs  int64
}

// Run translates every scope line, keeping the best and runner-up match per
// line. Lines with no match above threshold still produce a row so the
// estimator sees what fell through.
func (s *BatchService) Run(lines []internal.ScopeLine) (BatchResult, error) {
	start := time.Now()
	result := BatchResult{Rows: make([]internal.BatchRow, 0, len(lines))}

	for _, line := range lines {
		translated, err := s.engine.Translate(line.Description, 5, 0)
		if err != nil {
			return BatchResult{}, err
		}

		row := internal.BatchRow{
			InputLineNo:   line.LineNo,
			Source:        string(line.Source),
			RawLine:       line.RawLine,
			ParsedQty:     firstNonNil(line.Qty, translated.Quantity),
			ParsedUnit:    firstNonNilStr(line.Unit, translated.Unit),
			SuggestedDivs: strings.Join(translated.SuggestedDivisions, ","),
		}

		if len(translated.Items) > 0 {
			best := translated.Items[0]
			row.MatchCode = internal.StringPtr(best.Code)
			row.MatchDesc = internal.StringPtr(best.Description)
			row.MatchUnit = internal.StringPtr(best.Unit)
			row.MatchUnitCost = internal.FloatPtr(best.UnitCost)
			row.Score = best.Score
			row.MatchType = string(best.MatchType)
			row.MatchedKeywords = strings.Join(best.MatchedKeywords, ",")
			if row.ParsedQty != nil {
				row.ExtendedCost = internal.FloatPtr(*row.ParsedQty * best.UnitCost)
			}
			result.Matched++
		}
		if len(translated.Items) > 1 {
			row.RunnerUpCode = internal.StringPtr(translated.Items[1].Code)
			row.RunnerUpScore = internal.FloatPtr(translated.Items[1].Score)
		}

		result.Rows = append(result.Rows, row)
	}

	result.TookMs = time.Since(start).Milliseconds()
	return result, nil
}

// RunFile is the one-shot path: extract a scope document, translate it, and
// write the review workbook.
func (s *BatchService) RunFile(inputPath, outputPath string) (BatchResult, error) {
	lines, err := ExtractScopeLines(inputPath)
	if err != nil {
		return BatchResult{}, err
	}
	if len(lines) == 0 {
		return BatchResult{}, fmt.Errorf("no scope lines found in %s", inputPath)
	}

	result, err := s.Run(lines)
	if err != nil {
		return BatchResult{}, err
	}
	if err := ExportRowsToXLSX(result.Rows, outputPath); err != nil {
		return BatchResult{}, err
	}
	return result, nil
}

func firstNonNil(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstNonNilStr(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
