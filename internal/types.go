package internal

// CatalogItem is one priced line item from the static cost catalog.
// Codes are hierarchical: "22111600-0012" = division 22, section 2211,
// subsection 221116, full section 22111600.
type CatalogItem struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	UnitCost    float64 `json:"unitCost"`
}

// Division returns the 2-digit top-level prefix of the item's code.
func (c CatalogItem) Division() string {
	if len(c.Code) < 2 {
		return c.Code
	}
	return c.Code[:2]
}

type MatchType string

const (
	MatchExact    MatchType = "exact"
	MatchPhrase   MatchType = "phrase"
	MatchKeywords MatchType = "keywords"
	MatchPartial  MatchType = "partial"
)

type ScoredItem struct {
	CatalogItem
	Score           float64   `json:"score"`
	MatchedKeywords []string  `json:"matchedKeywords"`
	MatchType       MatchType `json:"matchType"`
	DivisionMatch   bool      `json:"divisionMatch"`
	UnitMatch       bool      `json:"unitMatch"`
}

// TranslationContext carries everything derived from one free-text work
// description. Built once per translate call, never stored.
type TranslationContext struct {
	Original           string
	Normalized         string
	Keywords           []string
	ExpandedKeywords   []string
	Quantity           *float64
	Unit               *string
	SuggestedDivisions []string
}

type SearchResult struct {
	Items  []CatalogItem `json:"items"`
	Total  int           `json:"total"`
	Query  string        `json:"query"`
	TookMs int64         `json:"tookMs"`
}

type TranslateResult struct {
	Items              []ScoredItem `json:"items"`
	Keywords           []string     `json:"keywords"`
	ExpandedKeywords   []string     `json:"expandedKeywords"`
	Quantity           *float64     `json:"quantity"`
	Unit               *string      `json:"unit"`
	SuggestedDivisions []string     `json:"suggestedDivisions"`
	TookMs             int64        `json:"tookMs"`
}

type DivisionInfo struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type CatalogStats struct {
	Total     int  `json:"total"`
	Divisions int  `json:"divisions"`
	Loaded    bool `json:"loaded"`
}

// HierarchyNode is one node of the offline browse tree. Intermediate nodes
// carry ItemCount; leaves carry unit/cost and IsItem.
type HierarchyNode struct {
	Code      string           `json:"code"`
	Name      string           `json:"name"`
	ItemCount int              `json:"itemCount,omitempty"`
	Unit      string           `json:"unit,omitempty"`
	UnitCost  float64          `json:"unitCost,omitempty"`
	IsItem    bool             `json:"isItem,omitempty"`
	Children  []*HierarchyNode `json:"children,omitempty"`
}

type LineSource string

const (
	SourceText      LineSource = "text"
	SourceHTMLTable LineSource = "html_table"
	SourceXLSX      LineSource = "xlsx"
	SourcePDF       LineSource = "pdf"
	SourceEmail     LineSource = "email"
)

// ScopeLine is one extracted work-description line from a scope document,
// before translation.
type ScopeLine struct {
	LineNo      int
	Source      LineSource
	RawLine     string
	Description string
	Qty         *float64
	Unit        *string
	Meta        map[string]any
}

// BatchRow is one translated scope line flattened for the review workbook.
type BatchRow struct {
	InputLineNo     int
	Source          string
	RawLine         string
	ParsedQty       *float64
	ParsedUnit      *string
	MatchCode       *string
	MatchDesc       *string
	MatchUnit       *string
	MatchUnitCost   *float64
	Score           float64
	MatchType       string
	ExtendedCost    *float64
	RunnerUpCode    *string
	RunnerUpScore   *float64
	SuggestedDivs   string
	MatchedKeywords string
}

func StringPtr(v string) *string  { return &v }
func FloatPtr(v float64) *float64 { return &v }
