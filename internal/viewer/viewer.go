// Package viewer is the tree-viewer state machine: it indexes a
// classification forest and tracks selection, expansion, search filtering and
// the display theme. Hosts (the generated HTML page, the terminal browser, the
// preview API) render from its queries and re-render on Change events.
package viewer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ziadkadry99/classview/internal/classify"
	"github.com/ziadkadry99/classview/internal/debounce"
)

// NodeID is re-exported for hosts that only talk to the viewer.
type NodeID = classify.NodeID

// DefaultSearchDelay is the quiet period before a debounced search applies.
const DefaultSearchDelay = 200 * time.Millisecond

// ChangeKind identifies which part of the view must be re-rendered.
type ChangeKind int

const (
	ChangeTree ChangeKind = iota
	ChangeSelection
	ChangeSearch
	ChangeTheme
	ChangeFocus
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeTree:
		return "tree"
	case ChangeSelection:
		return "selection"
	case ChangeSearch:
		return "search"
	case ChangeTheme:
		return "theme"
	case ChangeFocus:
		return "focus"
	default:
		return "unknown"
	}
}

// Change is published to observers after every state transition.
// Reveal is set on selection changes: the host scrolls that node into view
// without moving keyboard focus.
type Change struct {
	Kind   ChangeKind
	Reveal NodeID
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithPreferences sets the store used to load and persist the theme.
func WithPreferences(p PreferenceStore) Option {
	return func(v *Viewer) { v.prefs = p }
}

// WithSearchDelay overrides DefaultSearchDelay.
func WithSearchDelay(d time.Duration) Option {
	return func(v *Viewer) { v.searchDelay = d }
}

// WithLogger sets the logger for non-fatal failures such as preference writes.
func WithLogger(l *slog.Logger) Option {
	return func(v *Viewer) { v.logger = l }
}

// Viewer owns the indices of one forest and the UI state layered on top.
type Viewer struct {
	mu sync.Mutex

	forest     []*classify.Node
	nodeByID   map[NodeID]*classify.Node
	parentByID map[NodeID]NodeID
	stats      classify.Stats

	expanded  map[NodeID]bool
	selected  NodeID
	hasSel    bool
	selection Selection

	filter        *filterState
	searchFocused bool
	theme         Theme

	prefs       PreferenceStore
	logger      *slog.Logger
	searchDelay time.Duration
	debouncer   *debounce.Debouncer

	observers    map[int]func(Change)
	nextObserver int
}

// New creates a Viewer and initializes it from forest.
func New(forest []*classify.Node, opts ...Option) *Viewer {
	v := &Viewer{
		searchDelay: DefaultSearchDelay,
		logger:      slog.Default(),
		observers:   make(map[int]func(Change)),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.prefs == nil {
		v.prefs = NewMemoryPreferences()
	}
	v.debouncer = debounce.New(v.searchDelay)
	v.Initialize(forest)
	return v
}

// Initialize rebuilds both indices with one depth-first pass and resets the
// UI state: everything collapsed, nothing selected, no filter. When two
// nodes share an id the one visited later wins.
func (v *Viewer) Initialize(forest []*classify.Node) {
	v.debouncer.Cancel()

	v.mu.Lock()
	v.forest = forest
	v.nodeByID = make(map[NodeID]*classify.Node)
	v.parentByID = make(map[NodeID]NodeID)
	classify.Walk(forest, func(n, parent *classify.Node, _ int) bool {
		v.nodeByID[n.ID] = n
		if parent != nil {
			v.parentByID[n.ID] = parent.ID
		} else {
			delete(v.parentByID, n.ID)
		}
		return true
	})
	v.stats = classify.ForestStats(forest)

	v.expanded = make(map[NodeID]bool)
	v.selected = ""
	v.hasSel = false
	v.selection = Selection{}
	v.filter = nil
	v.searchFocused = false
	v.theme = v.loadTheme()
	v.mu.Unlock()

	v.notify(Change{Kind: ChangeTree})
}

// Subscribe registers fn for every Change. Observers run after the viewer has
// released its lock, so they may call back into it.
func (v *Viewer) Subscribe(fn func(Change)) (unsubscribe func()) {
	v.mu.Lock()
	id := v.nextObserver
	v.nextObserver++
	v.observers[id] = fn
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		delete(v.observers, id)
		v.mu.Unlock()
	}
}

func (v *Viewer) notify(changes ...Change) {
	v.mu.Lock()
	fns := make([]func(Change), 0, len(v.observers))
	for _, fn := range v.observers {
		fns = append(fns, fn)
	}
	v.mu.Unlock()

	for _, c := range changes {
		for _, fn := range fns {
			fn(c)
		}
	}
}

// Toggle flips the expanded state of one node, or forces it when expand is
// given. Ancestors and descendants are untouched. Unknown ids are ignored.
func (v *Viewer) Toggle(id NodeID, expand ...bool) {
	v.mu.Lock()
	if _, ok := v.nodeByID[id]; !ok {
		v.mu.Unlock()
		return
	}
	next := !v.isExpandedLocked(id)
	if len(expand) > 0 {
		next = expand[0]
	}
	v.expanded[id] = next
	if v.filter != nil {
		v.filter.expanded[id] = next
	}
	v.mu.Unlock()

	v.notify(Change{Kind: ChangeTree})
}

// Select makes id the single selected node, expands all of its ancestors and
// recomputes the detail, breadcrumb, hierarchy and children panels. Unknown
// ids are ignored.
func (v *Viewer) Select(id NodeID) {
	v.mu.Lock()
	node, ok := v.nodeByID[id]
	if !ok {
		v.mu.Unlock()
		return
	}

	path := v.pathLocked(id)
	for _, anc := range path[:len(path)-1] {
		v.expanded[anc] = true
		if v.filter != nil {
			v.filter.expanded[anc] = true
		}
	}
	v.selected = id
	v.hasSel = true
	v.selection = v.buildSelectionLocked(node, path)
	v.mu.Unlock()

	v.notify(Change{Kind: ChangeSelection, Reveal: id})
}

// pathLocked returns the ancestor path root-first, ending with id. A parent
// chain corrupted by duplicate ids is cut at the first repeated id.
func (v *Viewer) pathLocked(id NodeID) []NodeID {
	path := []NodeID{id}
	seen := map[NodeID]bool{id: true}
	cur := id
	for {
		parent, ok := v.parentByID[cur]
		if !ok || seen[parent] {
			break
		}
		seen[parent] = true
		path = append(path, parent)
		cur = parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func (v *Viewer) isExpandedLocked(id NodeID) bool {
	if v.filter != nil {
		return v.filter.expanded[id]
	}
	return v.expanded[id]
}

// Node returns the indexed node for id.
func (v *Viewer) Node(id NodeID) (*classify.Node, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	n, ok := v.nodeByID[id]
	return n, ok
}

// Parent returns the parent id of id; roots have none.
func (v *Viewer) Parent(id NodeID) (NodeID, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	p, ok := v.parentByID[id]
	return p, ok
}

// Path returns the ancestor path of id, root first and id last, or nil for
// unknown ids.
func (v *Viewer) Path(id NodeID) []NodeID {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.nodeByID[id]; !ok {
		return nil
	}
	return v.pathLocked(id)
}

// Len returns the number of indexed ids.
func (v *Viewer) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.nodeByID)
}

// Forest returns the forest the viewer was initialized with.
func (v *Viewer) Forest() []*classify.Node {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.forest
}

// Stats returns the item counts of the forest.
func (v *Viewer) Stats() classify.Stats {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stats
}

// Selected returns the selected id.
func (v *Viewer) Selected() (NodeID, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected, v.hasSel
}

// Selection returns the panels computed by the last Select.
func (v *Viewer) Selection() (Selection, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection, v.hasSel
}

// IsExpanded reports whether id currently shows its children, taking an
// active search into account.
func (v *Viewer) IsExpanded(id NodeID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.isExpandedLocked(id)
}

// NodeState returns the per-node UI state of id.
func (v *Viewer) NodeState(id NodeID) (State, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.nodeByID[id]; !ok {
		return State{}, false
	}
	return State{
		Expanded: v.isExpandedLocked(id),
		Selected: v.hasSel && v.selected == id,
		Filter:   v.filterStateLocked(id),
	}, true
}

// State is the UI state of one node. The three axes are independent.
type State struct {
	Expanded bool
	Selected bool
	Filter   FilterState
}
