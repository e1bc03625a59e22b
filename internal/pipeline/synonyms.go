package pipeline

import "strings"

type synonymEntry struct {
	canonical string
	aliases   []string
}

// Trade-term synonym table. Matching is deliberately loose (substring, not
// equality) so partial or typo'd trade terminology still expands; the scorer
// down-weights expansion hits relative to direct keyword hits.
var synonymTable = []synonymEntry{
	{"hvac", []string{"air conditioning", "ac", "mechanical", "climate control", "heating"}},
	{"drywall", []string{"gypsum board", "sheetrock", "wallboard", "gyp"}},
	{"concrete", []string{"cement", "slab", "pour"}},
	{"electrical", []string{"electric", "wiring", "power"}},
	{"plumbing", []string{"piping", "pipe", "water lines"}},
	{"roofing", []string{"roof", "shingles", "membrane"}},
	{"flooring", []string{"floor", "carpet", "tile"}},
	{"insulation", []string{"insulate", "batt", "foam"}},
	{"excavation", []string{"excavate", "digging", "earthwork"}},
	{"painting", []string{"paint", "coating"}},
	{"framing", []string{"frame", "studs", "lumber"}},
	{"demolition", []string{"demo", "removal", "teardown"}},
	{"sprinkler", []string{"fire suppression", "fire protection"}},
	{"fixture", []string{"faucet", "sink", "toilet", "lavatory"}},
	{"lighting", []string{"lights", "luminaire", "lamp"}},
	{"masonry", []string{"brick", "block", "cmu"}},
	{"waterproofing", []string{"waterproof", "sealant", "damproofing"}},
	{"door", []string{"doors", "entry"}},
	{"window", []string{"windows", "glazing"}},
	{"ceiling", []string{"acoustical", "suspended grid"}},
}

// ExpandKeywords broadens a keyword list with synonym-table hits. The result
// keeps the original keywords first, then additions in table order, deduped.
func ExpandKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	seen := map[string]struct{}{}
	add := func(term string) {
		if _, dup := seen[term]; dup {
			return
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}

	for _, kw := range keywords {
		add(kw)
	}

	for _, kw := range keywords {
		for _, entry := range synonymTable {
			if !entry.matches(kw) {
				continue
			}
			add(entry.canonical)
			for _, alias := range entry.aliases {
				add(firstWord(alias))
			}
		}
	}

	return out
}

func (e synonymEntry) matches(token string) bool {
	if strings.Contains(e.canonical, token) {
		return true
	}
	for _, alias := range e.aliases {
		if strings.Contains(firstWord(alias), token) {
			return true
		}
	}
	return false
}

func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}
