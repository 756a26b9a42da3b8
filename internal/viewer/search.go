package viewer

import (
	"strings"

	"github.com/ziadkadry99/classview/internal/classify"
)

// FilterState places a node relative to the active search.
type FilterState int

const (
	// FilterNone means no search is active.
	FilterNone FilterState = iota
	// FilterMatch is a node whose code or name contains the term.
	FilterMatch
	// FilterContext is an ancestor kept visible for a matching descendant.
	FilterContext
	// FilterHidden is a node with no match in itself or below it.
	FilterHidden
)

func (f FilterState) String() string {
	switch f {
	case FilterNone:
		return "none"
	case FilterMatch:
		return "match"
	case FilterContext:
		return "context"
	case FilterHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// filterState is the overlay an active search puts over the baseline
// expansion. Clearing the search drops it, which restores the baseline.
type filterState struct {
	term     string
	matches  map[NodeID]bool
	visible  map[NodeID]bool
	expanded map[NodeID]bool
}

// Search filters the tree by term immediately. A blank term clears the
// filter. Matching is a case-insensitive substring test on the display code
// and the name of every indexed node.
func (v *Viewer) Search(term string) {
	v.mu.Lock()
	v.applySearchLocked(term)
	v.mu.Unlock()

	v.notify(Change{Kind: ChangeSearch})
}

// SearchDebounced applies term once no other search has been requested for
// the search delay. Each call supersedes the pending one.
func (v *Viewer) SearchDebounced(term string) {
	v.debouncer.Schedule(func() { v.Search(term) })
}

// FlushSearch applies a pending debounced search now.
func (v *Viewer) FlushSearch() bool {
	return v.debouncer.Flush()
}

// CancelSearch drops a pending debounced search without applying it.
func (v *Viewer) CancelSearch() {
	v.debouncer.Cancel()
}

// ClearSearch cancels any pending search and removes the filter.
func (v *Viewer) ClearSearch() {
	v.debouncer.Cancel()
	v.Search("")
}

// SearchTerm returns the applied term, empty when no filter is active.
func (v *Viewer) SearchTerm() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.filter == nil {
		return ""
	}
	return v.filter.term
}

// Matches returns the ids that match the active search, in tree order.
func (v *Viewer) Matches() []NodeID {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.filter == nil {
		return nil
	}
	var out []NodeID
	seen := make(map[NodeID]bool)
	classify.Walk(v.forest, func(n, _ *classify.Node, _ int) bool {
		if v.filter.matches[n.ID] && !seen[n.ID] {
			seen[n.ID] = true
			out = append(out, n.ID)
		}
		return true
	})
	return out
}

// IsVisible reports whether id survives the active filter. Without a filter
// every known node is visible.
func (v *Viewer) IsVisible(id NodeID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.nodeByID[id]; !ok {
		return false
	}
	return v.filter == nil || v.filter.visible[id]
}

func (v *Viewer) applySearchLocked(term string) {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		v.filter = nil
		return
	}

	f := &filterState{
		term:     strings.TrimSpace(term),
		matches:  make(map[NodeID]bool),
		visible:  make(map[NodeID]bool),
		expanded: make(map[NodeID]bool),
	}
	for id, n := range v.nodeByID {
		if !strings.Contains(strings.ToLower(n.DisplayID), needle) &&
			!strings.Contains(strings.ToLower(n.Name), needle) {
			continue
		}
		f.matches[id] = true
		for _, anc := range v.pathLocked(id) {
			f.visible[anc] = true
		}
	}
	// Matches and their ancestors open up so every match is reachable;
	// children outside the visible set stay hidden.
	for id := range f.visible {
		f.expanded[id] = true
	}
	v.filter = f
}

func (v *Viewer) filterStateLocked(id NodeID) FilterState {
	switch {
	case v.filter == nil:
		return FilterNone
	case v.filter.matches[id]:
		return FilterMatch
	case v.filter.visible[id]:
		return FilterContext
	default:
		return FilterHidden
	}
}
