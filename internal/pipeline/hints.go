package pipeline

import (
	"sort"
	"strings"
)

type divisionHint struct {
	code     string
	keywords []string
}

// Representative keywords per division, in canonical table order. Ties on
// equal hit counts keep this order, so the table must stay fixed for
// reproducible suggestions.
var divisionHints = []divisionHint{
	{"02", []string{"demolition", "demo", "abatement", "remediation"}},
	{"03", []string{"concrete", "cement", "slab", "foundation", "footing", "rebar", "formwork"}},
	{"04", []string{"brick", "block", "masonry", "mortar", "cmu", "stone"}},
	{"05", []string{"steel", "metal", "beam", "joist", "decking", "railing"}},
	{"06", []string{"wood", "lumber", "framing", "carpentry", "trim", "cabinet", "millwork"}},
	{"07", []string{"roof", "roofing", "insulation", "waterproof", "shingle", "membrane", "caulk", "flashing"}},
	{"08", []string{"door", "window", "glazing", "storefront", "hardware", "frame"}},
	{"09", []string{"paint", "drywall", "gypsum", "tile", "flooring", "carpet", "ceiling", "plaster", "finish"}},
	{"21", []string{"sprinkler", "fire suppression", "standpipe", "fire pump"}},
	{"22", []string{"plumbing", "pipe", "water", "drain", "valve", "fixture", "sewer", "faucet"}},
	{"23", []string{"hvac", "duct", "air", "heating", "cooling", "ventilation", "furnace", "chiller", "thermostat"}},
	{"26", []string{"electrical", "wire", "conduit", "panel", "lighting", "breaker", "outlet", "receptacle"}},
	{"27", []string{"data", "cabling", "network", "telephone", "fiber"}},
	{"28", []string{"alarm", "security", "camera", "detection"}},
	{"31", []string{"excavation", "grading", "earthwork", "trench", "backfill", "compaction"}},
	{"32", []string{"paving", "asphalt", "landscaping", "fence", "sidewalk", "curb"}},
	{"33", []string{"utility", "storm", "sanitary", "water main", "manhole"}},
}

// SuggestDivisions counts representative-keyword hits against the normalized
// query and returns up to 3 division codes, best first.
func SuggestDivisions(normalized string) []string {
	type hit struct {
		code  string
		count int
	}

	hits := []hit{}
	for _, h := range divisionHints {
		count := 0
		for _, kw := range h.keywords {
			if strings.Contains(normalized, kw) {
				count++
			}
		}
		if count > 0 {
			hits = append(hits, hit{code: h.code, count: count})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].count > hits[j].count })

	out := make([]string, 0, 3)
	for _, h := range hits {
		out = append(out, h.code)
		if len(out) == 3 {
			break
		}
	}
	return out
}
