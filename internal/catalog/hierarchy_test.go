package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"costbook/internal"
)

func hierarchyFixture() []internal.CatalogItem {
	return []internal.CatalogItem{
		{Code: "03300000-0001", Description: "Structural concrete 4000 psi slab on grade", Unit: "CY", UnitCost: 180},
		{Code: "03300000-0002", Description: "Structural concrete 3000 psi footing", Unit: "CY", UnitCost: 165},
		{Code: "22111600-0012", Description: "Copper pipe type L 1 inch", Unit: "LF", UnitCost: 12.5},
	}
}

func findChild(node *internal.HierarchyNode, code string) *internal.HierarchyNode {
	for _, c := range node.Children {
		if c.Code == code {
			return c
		}
	}
	return nil
}

func TestBuildHierarchyShape(t *testing.T) {
	root := BuildHierarchy(hierarchyFixture(), 1)

	if len(root.Children) != 2 {
		t.Fatalf("division children: %d", len(root.Children))
	}
	if root.ItemCount != 3 {
		t.Fatalf("root itemCount: %d", root.ItemCount)
	}

	concrete := findChild(root, "03")
	if concrete == nil || concrete.Name != "Concrete" || concrete.ItemCount != 2 {
		t.Fatalf("division 03: %+v", concrete)
	}
	section := findChild(concrete, "0330")
	if section == nil || section.ItemCount != 2 {
		t.Fatalf("section 0330: %+v", section)
	}
	subsection := findChild(section, "033000")
	if subsection == nil || subsection.ItemCount != 2 {
		t.Fatalf("subsection 033000: %+v", subsection)
	}
	if len(subsection.Children) != 2 {
		t.Fatalf("leaves: %d", len(subsection.Children))
	}
	for _, leaf := range subsection.Children {
		if !leaf.IsItem {
			t.Fatalf("leaf not marked: %+v", leaf)
		}
	}
}

func TestBuildHierarchyItemCountSums(t *testing.T) {
	root := BuildHierarchy(hierarchyFixture(), 1)

	var leaves func(*internal.HierarchyNode) int
	leaves = func(node *internal.HierarchyNode) int {
		if node.IsItem {
			return 1
		}
		sum := 0
		for _, c := range node.Children {
			sum += leaves(c)
		}
		if sum != node.ItemCount {
			t.Fatalf("node %s itemCount=%d but has %d leaves", node.Code, node.ItemCount, sum)
		}
		return sum
	}
	if total := leaves(root); total != 3 {
		t.Fatalf("total leaves: %d", total)
	}
}

func TestSubsectionNameFromCommonPrefix(t *testing.T) {
	root := BuildHierarchy(hierarchyFixture(), 1)

	subsection := findChild(findChild(findChild(root, "03"), "0330"), "033000")
	if subsection.Name != "Structural concrete" {
		t.Fatalf("derived name: %q", subsection.Name)
	}

	// A single dissimilar description keeps the numeric fallback.
	plumbing := findChild(findChild(findChild(root, "22"), "2211"), "221116")
	if plumbing.Name != "Copper pipe type L 1 inch" && plumbing.Name != "221116" {
		t.Fatalf("unexpected subsection name: %q", plumbing.Name)
	}
}

func TestSimplifyDropsThinBranches(t *testing.T) {
	root := BuildHierarchy(hierarchyFixture(), 2)

	if findChild(root, "22") != nil {
		t.Fatalf("division 22 (1 item) survived minItems=2")
	}
	if findChild(root, "03") == nil {
		t.Fatalf("division 03 (2 items) was dropped")
	}
}

func TestSiblingsSortedByCode(t *testing.T) {
	items := []internal.CatalogItem{
		{Code: "22111600-0012", Description: "Copper pipe type L 1 inch", Unit: "LF", UnitCost: 12.5},
		{Code: "03300000-0001", Description: "Structural concrete 4000 psi slab", Unit: "CY", UnitCost: 180},
	}
	root := BuildHierarchy(items, 1)
	if root.Children[0].Code != "03" || root.Children[1].Code != "22" {
		t.Fatalf("siblings not sorted: %s, %s", root.Children[0].Code, root.Children[1].Code)
	}
}

func TestShortCodesDegradeGracefully(t *testing.T) {
	items := []internal.CatalogItem{
		{Code: "26", Description: "Unclassified electrical allowance", Unit: "EA", UnitCost: 500},
		{Code: "2611", Description: "Switchgear allowance", Unit: "EA", UnitCost: 900},
	}
	root := BuildHierarchy(items, 1)

	division := findChild(root, "26")
	if division == nil || division.ItemCount != 2 {
		t.Fatalf("division 26: %+v", division)
	}
	// The 2-digit item attaches directly under the division; the 4-digit one
	// gets its section node.
	if findChild(division, "26") == nil {
		t.Fatalf("short-code leaf missing")
	}
	if findChild(division, "2611") == nil {
		t.Fatalf("section 2611 missing")
	}
}

func TestWriteHierarchyArtifact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog-hierarchy.json")

	root := BuildHierarchy(hierarchyFixture(), 1)
	if err := WriteHierarchyArtifact(root, path); err != nil {
		t.Fatal(err)
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var artifact struct {
		ItemCount int                     `json:"itemCount"`
		Divisions map[string]string       `json:"divisions"`
		Tree      *internal.HierarchyNode `json:"tree"`
	}
	if err := json.Unmarshal(blob, &artifact); err != nil {
		t.Fatal(err)
	}
	if artifact.ItemCount != 3 || artifact.Tree == nil {
		t.Fatalf("artifact: %+v", artifact)
	}
	if artifact.Divisions["21"] != "Fire Suppression" {
		t.Fatalf("division table: %+v", artifact.Divisions)
	}
}
