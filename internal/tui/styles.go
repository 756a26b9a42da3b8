package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ziadkadry99/classview/internal/viewer"
)

type palette struct {
	fg, muted, border, selBg, match lipgloss.Color
}

var palettes = map[viewer.Theme]palette{
	viewer.ThemeLight: {
		fg:     lipgloss.Color("#212529"),
		muted:  lipgloss.Color("#868e96"),
		border: lipgloss.Color("#dee2e6"),
		selBg:  lipgloss.Color("#e7f5ff"),
		match:  lipgloss.Color("#e67700"),
	},
	viewer.ThemeDark: {
		fg:     lipgloss.Color("#c0caf5"),
		muted:  lipgloss.Color("#565f89"),
		border: lipgloss.Color("#292e42"),
		selBg:  lipgloss.Color("#283457"),
		match:  lipgloss.Color("#e0af68"),
	},
}

// styles is the rendered look for one theme and accent colour.
type styles struct {
	title    lipgloss.Style
	muted    lipgloss.Style
	code     lipgloss.Style
	name     lipgloss.Style
	match    lipgloss.Style
	cursor   lipgloss.Style
	selected lipgloss.Style
	pane     lipgloss.Style
	label    lipgloss.Style
	badge    lipgloss.Style
	status   lipgloss.Style
	errStyle lipgloss.Style
}

func newStyles(theme viewer.Theme, accent string) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[viewer.ThemeLight]
	}
	acc := lipgloss.Color(accent)

	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(acc),
		muted:    lipgloss.NewStyle().Foreground(p.muted),
		code:     lipgloss.NewStyle().Foreground(acc),
		name:     lipgloss.NewStyle().Foreground(p.fg),
		match:    lipgloss.NewStyle().Foreground(p.match).Bold(true),
		cursor:   lipgloss.NewStyle().Background(p.selBg),
		selected: lipgloss.NewStyle().Bold(true).Underline(true),
		pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		label:    lipgloss.NewStyle().Foreground(p.muted).Bold(true),
		badge:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(acc).Padding(0, 1),
		status:   lipgloss.NewStyle().Foreground(p.muted).Italic(true),
		errStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#e03131")),
	}
}
