package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ziadkadry99/classview/internal/systems"
	"github.com/ziadkadry99/classview/internal/viewer"
)

// changeMsg carries a viewer state change into the bubbletea loop. Debounced
// searches are applied on a timer goroutine and arrive this way.
type changeMsg struct {
	change viewer.Change
}

// Option configures a Model.
type Option func(*Model)

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) { m.copy = fn }
}

// Model is the bubbletea host for a viewer.Viewer.
type Model struct {
	v      *viewer.Viewer
	preset systems.Preset
	input  textinput.Model
	styles styles

	rows   []viewer.Row
	cursor int
	width  int
	height int

	status    string
	statusErr bool

	copy        func(string) error
	changes     chan viewer.Change
	unsubscribe func()
}

// New creates a Model over v. The viewer must not be shared with another host.
func New(v *viewer.Viewer, preset systems.Preset, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "search codes and names..."
	ti.Prompt = "/ "
	ti.CharLimit = 80
	ti.Width = 40

	m := Model{
		v:       v,
		preset:  preset,
		input:   ti,
		styles:  newStyles(v.Theme(), preset.AccentColor),
		copy:    clipboard.WriteAll,
		changes: make(chan viewer.Change, 16),
		width:   100,
		height:  30,
	}
	for _, opt := range opts {
		opt(&m)
	}

	changes := m.changes
	m.unsubscribe = v.Subscribe(func(c viewer.Change) {
		select {
		case changes <- c:
		default:
		}
	})
	m.rows = v.Rows()
	return m
}

// Close detaches the model from its viewer.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func waitForChange(ch <-chan viewer.Change) tea.Cmd {
	return func() tea.Msg {
		return changeMsg{change: <-ch}
	}
}

// Init starts listening for viewer changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForChange(m.changes))
}

// Update handles input and viewer changes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case changeMsg:
		if msg.change.Kind == viewer.ChangeTheme {
			m.styles = newStyles(m.v.Theme(), m.preset.AccentColor)
		}
		m.refresh()
		if msg.change.Reveal != "" {
			m.moveTo(msg.change.Reveal)
		}
		return m, waitForChange(m.changes)

	case tea.KeyMsg:
		if m.input.Focused() {
			return m.updateSearch(msg)
		}
		return m.updateTree(msg)
	}
	return m, nil
}

// updateSearch handles keys while the search input has focus.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.v.HandleKey(viewer.KeyEscape)
		m.input.SetValue("")
		m.input.Blur()
		m.refresh()
		return m, nil
	case "enter":
		m.v.FlushSearch()
		m.v.BlurSearch()
		m.input.Blur()
		m.refresh()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.v.SearchDebounced(m.input.Value())
	}
	return m, cmd
}

// updateTree handles keys while the tree pane has focus.
func (m Model) updateTree(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "/":
		if m.v.HandleKey(viewer.KeySlash) {
			m.input.Focus()
			return m, textinput.Blink
		}

	case "esc":
		m.v.HandleKey(viewer.KeyEscape)
		m.input.SetValue("")
		m.status = ""

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case "enter", " ":
		if row, ok := m.current(); ok {
			m.v.Select(row.ID)
			m.status = ""
		}

	case "right", "l":
		if row, ok := m.current(); ok && row.HasChildren {
			m.v.Toggle(row.ID, true)
		}

	case "left", "h":
		if row, ok := m.current(); ok {
			if row.HasChildren && row.Expanded {
				m.v.Toggle(row.ID, false)
			} else if parent, ok := m.v.Parent(row.ID); ok {
				m.moveTo(parent)
			}
		}

	case "t":
		m.v.ToggleTheme()
		m.styles = newStyles(m.v.Theme(), m.preset.AccentColor)

	case "y":
		m.copyCode()
	}

	m.refresh()
	return m, nil
}

func (m *Model) copyCode() {
	id, ok := m.v.Selected()
	if !ok {
		row, ok := m.current()
		if !ok {
			return
		}
		id = row.ID
	}
	node, ok := m.v.Node(id)
	if !ok {
		return
	}
	if err := m.copy(node.DisplayID); err != nil {
		m.status = fmt.Sprintf("Clipboard error: %v", err)
		m.statusErr = true
		return
	}
	m.status = fmt.Sprintf("Copied %s to clipboard", node.DisplayID)
	m.statusErr = false
}

// refresh re-reads the rows, keeping the cursor on the same node when it is
// still rendered.
func (m *Model) refresh() {
	var keep viewer.NodeID
	if row, ok := m.current(); ok {
		keep = row.ID
	}
	m.rows = m.v.Rows()
	if keep != "" {
		m.moveTo(keep)
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// moveTo puts the cursor on id if it is rendered.
func (m *Model) moveTo(id viewer.NodeID) {
	for i, r := range m.rows {
		if r.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m Model) current() (viewer.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return viewer.Row{}, false
	}
	return m.rows[m.cursor], true
}

// View renders the header, tree pane and detail pane.
func (m Model) View() string {
	s := m.styles
	stats := m.v.Stats()

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		s.title.Render(strings.TrimSpace(m.preset.Icon+" "+m.preset.Title)),
		s.muted.Render(fmt.Sprintf("  %d items · %d top-level · depth %d", stats.Total, stats.TopLevel, stats.MaxDepth)),
	)

	treeWidth := m.width * 45 / 100
	if treeWidth < 30 {
		treeWidth = 30
	}
	detailWidth := m.width - treeWidth - 4
	if detailWidth < 30 {
		detailWidth = 30
	}
	bodyHeight := m.height - 6
	if bodyHeight < 5 {
		bodyHeight = 5
	}

	tree := s.pane.Width(treeWidth).Height(bodyHeight).Render(m.renderTree(bodyHeight))
	detail := s.pane.Width(detailWidth).Height(bodyHeight).Render(m.renderDetail())

	footer := s.muted.Render("↑/↓ move · enter select · →/← expand/collapse · / search · esc clear · t theme · y copy · q quit")
	if m.status != "" {
		if m.statusErr {
			footer = s.errStyle.Render(m.status)
		} else {
			footer = s.status.Render(m.status)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.input.View(),
		lipgloss.JoinHorizontal(lipgloss.Top, tree, detail),
		footer,
	)
}

func (m Model) renderTree(height int) string {
	s := m.styles
	if len(m.rows) == 0 {
		if m.v.SearchTerm() != "" {
			return s.muted.Render("No matching items.")
		}
		return s.muted.Render("Empty classification.")
	}

	// Keep the cursor inside the window.
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := start + height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		r := m.rows[i]
		marker := "  "
		if r.HasChildren {
			marker = "▸ "
			if r.Expanded {
				marker = "▾ "
			}
		}
		name := s.name.Render(r.Name)
		if r.Filter == viewer.FilterMatch {
			name = s.match.Render(r.Name)
		}
		line := strings.Repeat("  ", r.Depth-1) + marker + s.code.Render(r.DisplayID) + " " + name
		if r.Selected {
			line = s.selected.Render(line)
		}
		if i == m.cursor {
			line = s.cursor.Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) renderDetail() string {
	s := m.styles
	sel, ok := m.v.Selection()
	if !ok {
		return s.muted.Render("Select an item to see its details.")
	}

	var b strings.Builder
	b.WriteString(s.muted.Render(sel.BreadcrumbText()))
	b.WriteString("\n\n")
	b.WriteString(s.code.Render(sel.Detail.DisplayID) + "  " + s.title.Render(sel.Detail.Name))
	b.WriteString("\n")
	b.WriteString(sel.Detail.Description)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %d   %s %d   %s %d\n\n",
		s.label.Render("Children"), sel.Detail.ChildCount,
		s.label.Render("Descendants"), sel.Detail.DescendantCount,
		s.label.Render("Level"), sel.Detail.Level)

	b.WriteString(s.label.Render("Hierarchy"))
	b.WriteString("\n")
	for _, h := range sel.Hierarchy {
		line := fmt.Sprintf("L%d %s %s", h.Level, h.DisplayID, h.Name)
		if h.Current {
			line = s.selected.Render(line)
		}
		b.WriteString(strings.Repeat(" ", h.Level-1) + line + "\n")
	}

	if len(sel.Children) > 0 {
		b.WriteString("\n")
		b.WriteString(s.label.Render("Children"))
		b.WriteString("\n")
		for _, c := range sel.Children {
			line := s.code.Render(c.DisplayID) + " " + c.Name
			if c.HasBadge() {
				line += " " + s.badge.Render(fmt.Sprint(c.ChildCount))
			}
			b.WriteString(line + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(v *viewer.Viewer, preset systems.Preset) error {
	m := New(v, preset)
	defer m.Close()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
