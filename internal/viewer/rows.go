package viewer

import "github.com/ziadkadry99/classview/internal/classify"

// Row is one rendered line of the tree pane.
type Row struct {
	ID          NodeID
	DisplayID   string
	Name        string
	Depth       int // root is 1
	HasChildren bool
	Expanded    bool
	Selected    bool
	Filter      FilterState
}

// Rows flattens the tree into the rows a host renders, in tree order: a
// node's children follow it only when it is expanded, and nodes hidden by the
// active search are skipped together with their subtrees.
func (v *Viewer) Rows() []Row {
	v.mu.Lock()
	defer v.mu.Unlock()

	var rows []Row
	classify.Walk(v.forest, func(n, _ *classify.Node, depth int) bool {
		if v.filter != nil && !v.filter.visible[n.ID] {
			return false
		}
		expanded := v.isExpandedLocked(n.ID)
		rows = append(rows, Row{
			ID:          n.ID,
			DisplayID:   n.DisplayID,
			Name:        n.Name,
			Depth:       depth,
			HasChildren: len(n.Children) > 0,
			Expanded:    expanded,
			Selected:    v.hasSel && v.selected == n.ID,
			Filter:      v.filterStateLocked(n.ID),
		})
		return expanded
	})
	return rows
}

// RowIndex returns the index of id in Rows, or -1 when it is not rendered.
func (v *Viewer) RowIndex(id NodeID) int {
	for i, r := range v.Rows() {
		if r.ID == id {
			return i
		}
	}
	return -1
}
