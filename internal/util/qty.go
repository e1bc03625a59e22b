package util

import (
	"regexp"
	"strconv"
	"strings"
)

// Unit patterns are evaluated in order against normalized text and the first
// match wins, so length-based units stay ahead of generic count units. Do not
// reorder without updating the extraction scenario tests.
var unitPatterns = []struct {
	re   *regexp.Regexp
	unit string
}{
	{regexp.MustCompile(`\b(linear (feet|foot|ft)|lin ft|lf)\b`), "LF"},
	{regexp.MustCompile(`\b(square (feet|foot|ft)|sq ft|sf)\b`), "SF"},
	{regexp.MustCompile(`\b(cubic (feet|foot|ft)|cu ft|cf)\b`), "CF"},
	{regexp.MustCompile(`\b(cubic (yards|yard|yd)|cu yd|cy)\b`), "CY"},
	{regexp.MustCompile(`\b(each|ea|pieces|piece|pcs|pc|units|unit)\b`), "EA"},
	{regexp.MustCompile(`\b(hours|hour|hrs|hr)\b`), "HR"},
	{regexp.MustCompile(`\b(days|day|da)\b`), "DA"},
}

// Quantity patterns, also first-match-wins. An explicit "N x" or "install N"
// beats a bare leading number.
var qtyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d+(?:\.\d+)?) ?x\b`),
	regexp.MustCompile(`\binstall (\d+(?:\.\d+)?)\b`),
	regexp.MustCompile(`\b(\d+(?:\.\d+)?) (?:new|each|total)\b`),
	regexp.MustCompile(`^(\d+(?:\.\d+)?)\b`),
	regexp.MustCompile(`\b(\d+(?:\.\d+)?) (?:pcs|units|items|sets)\b`),
}

type ParsedQty struct {
	Qty  *float64
	Unit *string
}

// ParseQty extracts a quantity and a unit-of-measure token from free text.
// Both are best-effort: nil when no pattern matches.
func ParseQty(input string) ParsedQty {
	norm := normalizeForQty(input)

	out := ParsedQty{}
	for _, re := range qtyPatterns {
		m := re.FindStringSubmatch(norm)
		if len(m) < 2 {
			continue
		}
		if parsed, err := strconv.ParseFloat(m[1], 64); err == nil {
			qty := parsed
			out.Qty = &qty
		}
		break
	}

	for _, p := range unitPatterns {
		if p.re.MatchString(norm) {
			unit := p.unit
			out.Unit = &unit
			break
		}
	}

	return out
}

// normalizeForQty is Normalize except that decimal points inside numbers
// survive, so "2.5" stays one token while "sq. ft." still collapses.
func normalizeForQty(input string) string {
	s := strings.ToLower(input)
	runes := []rune(s)
	out := make([]rune, 0, len(runes))
	for i, r := range runes {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			out = append(out, r)
		case r == '.' && i > 0 && i+1 < len(runes) && isDigit(runes[i-1]) && isDigit(runes[i+1]):
			out = append(out, r)
		default:
			out = append(out, ' ')
		}
	}
	return strings.TrimSpace(reSpaces.ReplaceAllString(string(out), " "))
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
