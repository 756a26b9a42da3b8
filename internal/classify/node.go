package classify

import (
	"regexp"
	"strings"
)

// NodeID is the normalized identifier of a classification node. It is the
// only key used for lookups; the original code lives in Node.DisplayID.
type NodeID string

// Node is a canonical classification node.
type Node struct {
	ID          NodeID  `json:"id"`
	DisplayID   string  `json:"displayId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Children    []*Node `json:"children"`
}

// SystemInfo is the metadata block of a classification export.
type SystemInfo struct {
	Name        string `json:"name,omitempty"`
	Version     string `json:"version,omitempty"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
}

// Export is a transformed classification export: system metadata plus the
// canonical forest in source order.
type Export struct {
	System SystemInfo
	Forest []*Node
}

// Stats summarises the size and shape of a forest.
type Stats struct {
	Total    int `json:"total"`
	TopLevel int `json:"topLevel"`
	MaxDepth int `json:"maxDepth"`
}

// Stats returns the item counts for the export's forest.
func (e *Export) Stats() Stats {
	return ForestStats(e.Forest)
}

var idSeparators = regexp.MustCompile(`[\s-]+`)

// NormalizeID turns a source code such as "Ss 20-10" into "Ss_20_10".
// Runs of whitespace and hyphens collapse into a single underscore.
func NormalizeID(raw string) NodeID {
	return NodeID(idSeparators.ReplaceAllString(strings.TrimSpace(raw), "_"))
}

// DefaultDescription is the description given to items that carry none.
func DefaultDescription(name string) string {
	return name + " classification item."
}

// Walk visits every node depth-first in pre-order. parent is nil for roots
// and depth starts at 1. Returning false from fn skips the node's children.
func Walk(forest []*Node, fn func(n, parent *Node, depth int) bool) {
	var visit func(n, parent *Node, depth int)
	visit = func(n, parent *Node, depth int) {
		if n == nil {
			return
		}
		if !fn(n, parent, depth) {
			return
		}
		for _, child := range n.Children {
			visit(child, n, depth+1)
		}
	}
	for _, root := range forest {
		visit(root, nil, 1)
	}
}

// CountDescendants returns the number of nodes below n at any depth.
func CountDescendants(n *Node) int {
	if n == nil {
		return 0
	}
	count := 0
	for _, child := range n.Children {
		count += 1 + CountDescendants(child)
	}
	return count
}

// CountItems returns the number of nodes in the forest, all levels included.
func CountItems(forest []*Node) int {
	count := 0
	for _, root := range forest {
		if root != nil {
			count += 1 + CountDescendants(root)
		}
	}
	return count
}

// ForestStats computes total, top-level and maximum depth of a forest.
func ForestStats(forest []*Node) Stats {
	var s Stats
	Walk(forest, func(n, parent *Node, depth int) bool {
		s.Total++
		if parent == nil {
			s.TopLevel++
		}
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		return true
	})
	return s
}
