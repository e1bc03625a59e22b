package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jhillyerd/enmime"
	pdf "github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"

	"costbook/internal"
	"costbook/internal/util"
)

var ignorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^--+$`),
	regexp.MustCompile(`(?i)^(thanks|thank you|regards|best|sincerely)`),
	regexp.MustCompile(`(?i)^(tel|phone|fax|mobile)[:\s]`),
	regexp.MustCompile(`(?i)^e-?mail[:\s]`),
	regexp.MustCompile(`(?i)^http`),
	regexp.MustCompile(`(?i)^page \d+`),
}

// ExtractScopeLines reads work-description lines from a scope document. The
// format is inferred from the file extension.
func ExtractScopeLines(path string) ([]internal.ScopeLine, error) {
	ext := strings.ToLower(path[strings.LastIndexByte(path, '.')+1:])
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch ext {
	case "txt":
		return parseScopeText(string(blob)), nil
	case "html", "htm":
		return parseScopeHTMLTable(string(blob)), nil
	case "xlsx", "xls":
		return parseScopeXLSX(blob)
	case "pdf":
		return parseScopePDF(blob)
	case "eml":
		lines, _, err := ExtractScopeLinesFromEmail(blob)
		return lines, err
	default:
		return nil, fmt.Errorf("unsupported scope document: %s", path)
	}
}

// ExtractScopeLinesFromEmail parses a stored .eml scope submission: plain
// text lines, HTML tables, and xlsx/pdf attachments.
func ExtractScopeLinesFromEmail(raw []byte) ([]internal.ScopeLine, string, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, "", err
	}

	lines := make([]internal.ScopeLine, 0)
	if env.Text != "" {
		lines = append(lines, parseScopeText(env.Text)...)
	}
	if env.HTML != "" {
		lines = append(lines, parseScopeHTMLTable(env.HTML)...)
	}

	for _, att := range env.Attachments {
		filename := strings.TrimSpace(att.FileName)
		lower := strings.ToLower(filename)

		var extra []internal.ScopeLine
		if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xls") {
			extra, _ = parseScopeXLSX(att.Content)
		}
		if strings.HasSuffix(lower, ".pdf") {
			extra, _ = parseScopePDF(att.Content)
		}
		for i := range extra {
			extra[i].Source = internal.SourceEmail
			if extra[i].Meta == nil {
				extra[i].Meta = map[string]any{}
			}
			extra[i].Meta["attachment"] = filename
		}
		lines = append(lines, extra...)
	}

	lines = dedupeLines(lines)
	for i := range lines {
		lines[i].LineNo = i + 1
	}
	return lines, env.GetHeader("Subject"), nil
}

func parseScopeText(text string) []internal.ScopeLine {
	out := []internal.ScopeLine{}
	lineNo := 0
	for _, line := range splitLines(text) {
		lineNo++
		item := lineToScopeLine(internal.SourceText, lineNo, line)
		if item == nil {
			continue
		}
		if !regexp.MustCompile(`[a-zA-Z]`).MatchString(item.RawLine) {
			continue
		}
		out = append(out, *item)
	}
	return out
}

func parseScopeHTMLTable(html string) []internal.ScopeLine {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	out := []internal.ScopeLine{}
	lineNo := 0
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return
		}

		headers := []string{}
		rows.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, strings.ToLower(strings.TrimSpace(cell.Text())))
		})
		descIdx := findCellIndex(headers, []string{"desc", "scope", "item", "work"})
		qtyIdx := findCellIndex(headers, []string{"qty", "quant", "count"})
		unitIdx := findCellIndex(headers, []string{"unit", "uom"})

		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := []string{}
			row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, normalizeSpaces(cell.Text()))
			})
			if len(cells) == 0 {
				return
			}

			desc := pickCell(cells, descIdx, 0)
			if strings.TrimSpace(desc) == "" {
				return
			}
			rawLine := strings.Join(cells, " | ")
			parsed := util.ParseQty(pickCell(cells, qtyIdx, -1))

			lineNo++
			line := internal.ScopeLine{
				LineNo:      lineNo,
				Source:      internal.SourceHTMLTable,
				RawLine:     rawLine,
				Description: desc,
				Qty:         parsed.Qty,
				Unit:        parsed.Unit,
				Meta:        map[string]any{"row": cells},
			}
			if unit := pickCell(cells, unitIdx, -1); unit != "" {
				line.Unit = internal.StringPtr(unit)
			}
			out = append(out, line)
		})
	})
	return out
}

func parseScopeXLSX(content []byte) ([]internal.ScopeLine, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lineNo := 0
	out := []internal.ScopeLine{}
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}

		descIdx, qtyIdx, unitIdx := -1, -1, -1
		for i, row := range rows {
			cells := make([]string, 0, len(row))
			for _, c := range row {
				cells = append(cells, normalizeSpaces(c))
			}
			if len(cells) == 0 {
				continue
			}
			if i < 3 && descIdx < 0 {
				lowered := make([]string, len(cells))
				for j, c := range cells {
					lowered[j] = strings.ToLower(c)
				}
				descIdx = findCellIndex(lowered, []string{"desc", "scope", "item", "work"})
				qtyIdx = findCellIndex(lowered, []string{"qty", "quant", "count"})
				unitIdx = findCellIndex(lowered, []string{"unit", "uom"})
				if descIdx >= 0 {
					continue
				}
			}
			if descIdx < 0 {
				descIdx, qtyIdx, unitIdx = 0, 1, 2
			}

			desc := pickCell(cells, descIdx, 0)
			if strings.TrimSpace(desc) == "" {
				continue
			}
			qtyCell := pickCell(cells, qtyIdx, -1)
			if qtyCell == "" {
				qtyCell = strings.Join(cells, " ")
			}
			parsed := util.ParseQty(qtyCell)

			lineNo++
			line := internal.ScopeLine{
				LineNo:      lineNo,
				Source:      internal.SourceXLSX,
				RawLine:     strings.Join(cells, " | "),
				Description: desc,
				Qty:         parsed.Qty,
				Unit:        parsed.Unit,
				Meta:        map[string]any{"sheet": sheet, "rowNumber": i + 1},
			}
			if unit := pickCell(cells, unitIdx, -1); unit != "" {
				line.Unit = internal.StringPtr(unit)
			}
			out = append(out, line)
		}
	}
	return out, nil
}

func parseScopePDF(content []byte) ([]internal.ScopeLine, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}

	out := []internal.ScopeLine{}
	lineNo := 0
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		for _, line := range splitLines(text) {
			lineNo++
			item := lineToScopeLine(internal.SourcePDF, lineNo, line)
			if item == nil {
				continue
			}
			out = append(out, *item)
		}
	}
	return out, nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func lineToScopeLine(source internal.LineSource, lineNo int, rawLine string) *internal.ScopeLine {
	compact := normalizeSpaces(rawLine)
	if compact == "" || isLikelyNoise(compact) {
		return nil
	}

	parsed := util.ParseQty(compact)
	return &internal.ScopeLine{
		LineNo:      lineNo,
		Source:      source,
		RawLine:     compact,
		Description: compact,
		Qty:         parsed.Qty,
		Unit:        parsed.Unit,
		Meta:        map[string]any{},
	}
}

func normalizeSpaces(input string) string {
	return strings.TrimSpace(regexp.MustCompile(`\s+`).ReplaceAllString(input, " "))
}

func isLikelyNoise(line string) bool {
	for _, re := range ignorePatterns {
		if re.MatchString(strings.TrimSpace(line)) {
			return true
		}
	}
	return false
}

func dedupeLines(lines []internal.ScopeLine) []internal.ScopeLine {
	seen := map[string]struct{}{}
	out := make([]internal.ScopeLine, 0, len(lines))
	for _, line := range lines {
		key := string(line.Source) + "|" + line.RawLine
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, line)
	}
	return out
}

func findCellIndex(headers []string, probes []string) int {
	for i, h := range headers {
		for _, probe := range probes {
			if strings.Contains(h, probe) {
				return i
			}
		}
	}
	return -1
}

func pickCell(cells []string, idx int, fallback int) string {
	if idx >= 0 && idx < len(cells) {
		return strings.TrimSpace(cells[idx])
	}
	if fallback >= 0 && fallback < len(cells) {
		return strings.TrimSpace(cells[fallback])
	}
	return ""
}
