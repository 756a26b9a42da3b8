package viewer

import (
	"strings"

	"github.com/ziadkadry99/classview/internal/classify"
)

// NoDescription is shown in the detail panel for nodes without a description.
const NoDescription = "No description available."

// BreadcrumbSeparator joins breadcrumb segments. It is not clickable.
const BreadcrumbSeparator = "›"

// Selection holds every panel derived from the selected node.
type Selection struct {
	Detail     Detail           `json:"detail"`
	Breadcrumb []Crumb          `json:"breadcrumb"`
	Hierarchy  []HierarchyEntry `json:"hierarchy"`
	Children   []ChildCard      `json:"children"`
}

// Detail is the detail panel of the selected node.
type Detail struct {
	ID              NodeID `json:"id"`
	DisplayID       string `json:"displayId"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	ChildCount      int    `json:"childCount"`
	DescendantCount int    `json:"descendantCount"`
	Level           int    `json:"level"` // root is 1
}

// Crumb is one clickable breadcrumb segment.
type Crumb struct {
	ID        NodeID `json:"id"`
	DisplayID string `json:"displayId"`
	Name      string `json:"name"`
}

// HierarchyEntry is one row of the hierarchy panel.
type HierarchyEntry struct {
	Level     int    `json:"level"`
	ID        NodeID `json:"id"`
	DisplayID string `json:"displayId"`
	Name      string `json:"name"`
	Current   bool   `json:"current"`
}

// ChildCard is one entry of the children grid. Hosts show a badge with
// ChildCount only when it is non-zero.
type ChildCard struct {
	ID         NodeID `json:"id"`
	DisplayID  string `json:"displayId"`
	Name       string `json:"name"`
	ChildCount int    `json:"childCount"`
}

// HasBadge reports whether the card carries a child-count badge.
func (c ChildCard) HasBadge() bool { return c.ChildCount > 0 }

// BreadcrumbText renders the breadcrumb as plain text.
func (s Selection) BreadcrumbText() string {
	parts := make([]string, len(s.Breadcrumb))
	for i, c := range s.Breadcrumb {
		parts[i] = c.DisplayID
	}
	return strings.Join(parts, " "+BreadcrumbSeparator+" ")
}

func (v *Viewer) buildSelectionLocked(node *classify.Node, path []NodeID) Selection {
	desc := strings.TrimSpace(node.Description)
	if desc == "" {
		desc = NoDescription
	}

	sel := Selection{
		Detail: Detail{
			ID:              node.ID,
			DisplayID:       node.DisplayID,
			Name:            node.Name,
			Description:     desc,
			ChildCount:      len(node.Children),
			DescendantCount: classify.CountDescendants(node),
			Level:           len(path),
		},
		Breadcrumb: make([]Crumb, 0, len(path)),
		Hierarchy:  make([]HierarchyEntry, 0, len(path)),
		Children:   make([]ChildCard, 0, len(node.Children)),
	}

	for i, id := range path {
		n := v.nodeByID[id]
		sel.Breadcrumb = append(sel.Breadcrumb, Crumb{ID: id, DisplayID: n.DisplayID, Name: n.Name})
		sel.Hierarchy = append(sel.Hierarchy, HierarchyEntry{
			Level:     i + 1,
			ID:        id,
			DisplayID: n.DisplayID,
			Name:      n.Name,
			Current:   i == len(path)-1,
		})
	}

	for _, child := range node.Children {
		sel.Children = append(sel.Children, ChildCard{
			ID:         child.ID,
			DisplayID:  child.DisplayID,
			Name:       child.Name,
			ChildCount: len(child.Children),
		})
	}
	return sel
}
