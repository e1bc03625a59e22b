package catalog

// divisionNames maps the 2-digit division prefix to its display name. Used by
// the browse hierarchy and the divisions listing; unknown divisions fall back
// to "Division <code>".
var divisionNames = map[string]string{
	"01": "General Requirements",
	"02": "Existing Conditions",
	"03": "Concrete",
	"04": "Masonry",
	"05": "Metals",
	"06": "Wood, Plastics, and Composites",
	"07": "Thermal and Moisture Protection",
	"08": "Openings",
	"09": "Finishes",
	"10": "Specialties",
	"11": "Equipment",
	"12": "Furnishings",
	"13": "Special Construction",
	"14": "Conveying Equipment",
	"21": "Fire Suppression",
	"22": "Plumbing",
	"23": "Heating, Ventilating, and Air Conditioning",
	"25": "Integrated Automation",
	"26": "Electrical",
	"27": "Communications",
	"28": "Electronic Safety and Security",
	"31": "Earthwork",
	"32": "Exterior Improvements",
	"33": "Utilities",
}

// DivisionName resolves a 2-digit division code to its display name.
func DivisionName(code string) string {
	if name, ok := divisionNames[code]; ok {
		return name
	}
	return "Division " + code
}

// DivisionNames returns a copy of the flat code -> display name table, the
// artifact consumed by navigation alongside the hierarchy tree.
func DivisionNames() map[string]string {
	out := make(map[string]string, len(divisionNames))
	for k, v := range divisionNames {
		out[k] = v
	}
	return out
}
