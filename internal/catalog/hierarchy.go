package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"costbook/internal"
	"costbook/internal/util"
)

// BuildHierarchy assembles the browse tree division -> section -> subsection
// -> item from code prefixes. Items with short codes attach at whatever depth
// their prefix allows; malformed codes never reject an item.
func BuildHierarchy(items []internal.CatalogItem, minItems int) *internal.HierarchyNode {
	root := &internal.HierarchyNode{Code: "", Name: "Cost Catalog"}

	nodes := map[string]*internal.HierarchyNode{}
	subsectionLeaves := map[string][]string{}

	child := func(parent *internal.HierarchyNode, code, name string) *internal.HierarchyNode {
		if node, ok := nodes[code]; ok {
			return node
		}
		node := &internal.HierarchyNode{Code: code, Name: name}
		nodes[code] = node
		parent.Children = append(parent.Children, node)
		return node
	}

	for _, item := range items {
		digits := util.DigitsOnly(prefixOf(item.Code))

		parent := root
		for _, width := range []int{2, 4, 6} {
			if len(digits) < width {
				break
			}
			code := digits[:width]
			name := code
			if width == 2 {
				name = DivisionName(code)
			}
			node := child(parent, code, name)
			node.ItemCount++
			if width == 6 {
				subsectionLeaves[code] = append(subsectionLeaves[code], item.Description)
			}
			parent = node
		}
		root.ItemCount++

		parent.Children = append(parent.Children, &internal.HierarchyNode{
			Code:     item.Code,
			Name:     item.Description,
			Unit:     item.Unit,
			UnitCost: item.UnitCost,
			IsItem:   true,
		})
	}

	// Derive subsection names from the common description prefix where it is
	// long enough to be meaningful; keep the numeric code otherwise.
	for code, descriptions := range subsectionLeaves {
		prefix := strings.TrimSpace(util.LongestCommonPrefix(descriptions))
		if len(prefix) > 10 {
			nodes[code].Name = strings.TrimRight(prefix, " ,-")
		}
	}

	simplify(root, minItems)
	return root
}

func prefixOf(code string) string {
	if i := strings.IndexByte(code, '-'); i >= 0 {
		return code[:i]
	}
	return code
}

// simplify drops non-leaf branches that accumulated fewer than minItems items
// and sorts siblings by code at every level.
func simplify(node *internal.HierarchyNode, minItems int) {
	kept := node.Children[:0]
	for _, c := range node.Children {
		if !c.IsItem && c.ItemCount < minItems {
			continue
		}
		simplify(c, minItems)
		kept = append(kept, c)
	}
	node.Children = kept
	sort.SliceStable(node.Children, func(i, j int) bool {
		return node.Children[i].Code < node.Children[j].Code
	})
}

type hierarchyArtifact struct {
	GeneratedAt string                  `json:"generatedAt"`
	ItemCount   int                     `json:"itemCount"`
	Divisions   map[string]string       `json:"divisions"`
	Tree        *internal.HierarchyNode `json:"tree"`
}

// WriteHierarchyArtifact serializes the tree plus the flat division-name
// table for the navigation UI.
func WriteHierarchyArtifact(tree *internal.HierarchyNode, outputPath string) error {
	artifact := hierarchyArtifact{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		ItemCount:   tree.ItemCount,
		Divisions:   DivisionNames(),
		Tree:        tree,
	}
	blob, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, blob, 0o644)
}
