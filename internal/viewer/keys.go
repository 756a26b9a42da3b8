package viewer

// Key names understood by HandleKey.
const (
	KeySlash  = "/"
	KeyEscape = "Escape"
)

// HandleKey applies the global keyboard shortcuts and reports whether the
// key was consumed. "/" focuses the search input unless it already has
// focus, in which case the key belongs to the input. Escape clears the
// search, cancels a pending one and blurs the input.
func (v *Viewer) HandleKey(key string) bool {
	switch key {
	case KeySlash:
		v.mu.Lock()
		if v.searchFocused {
			v.mu.Unlock()
			return false
		}
		v.searchFocused = true
		v.mu.Unlock()
		v.notify(Change{Kind: ChangeFocus})
		return true

	case KeyEscape, "esc":
		v.debouncer.Cancel()
		v.mu.Lock()
		v.applySearchLocked("")
		v.searchFocused = false
		v.mu.Unlock()
		v.notify(Change{Kind: ChangeSearch}, Change{Kind: ChangeFocus})
		return true
	}
	return false
}

// FocusSearch gives the search input focus.
func (v *Viewer) FocusSearch() {
	v.setFocus(true)
}

// BlurSearch removes focus from the search input.
func (v *Viewer) BlurSearch() {
	v.setFocus(false)
}

// SearchFocused reports whether the search input has focus.
func (v *Viewer) SearchFocused() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.searchFocused
}

func (v *Viewer) setFocus(focused bool) {
	v.mu.Lock()
	changed := v.searchFocused != focused
	v.searchFocused = focused
	v.mu.Unlock()
	if changed {
		v.notify(Change{Kind: ChangeFocus})
	}
}
