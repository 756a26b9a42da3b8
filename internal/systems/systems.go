package systems

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Preset is the presentational configuration of one classification system.
type Preset struct {
	Key         string
	Title       string
	Version     string
	Description string // markdown
	Keywords    []string
	Icon        string
	AccentColor string
}

// ErrUnknownSystem is returned for a system key outside the known set.
var ErrUnknownSystem = errors.New("unknown classification system")

// UnknownSystemError carries the rejected key and the valid alternatives.
type UnknownSystemError struct {
	Key   string
	Valid []string
}

func (e *UnknownSystemError) Error() string {
	return fmt.Sprintf("%s %q: must be one of %s", ErrUnknownSystem.Error(), e.Key, strings.Join(e.Valid, ", "))
}

func (e *UnknownSystemError) Unwrap() error { return ErrUnknownSystem }

var presets = map[string]Preset{
	"uniclass": {
		Key:     "uniclass",
		Title:   "Uniclass 2015",
		Version: "2015",
		Description: "Unified classification for the UK construction industry, covering " +
			"complexes, entities, spaces, elements, systems and products across all sectors.",
		Keywords:    []string{"Uniclass", "NBS", "BIM", "construction classification"},
		Icon:        "🏗️",
		AccentColor: "#0f766e",
	},
	"omniclass": {
		Key:     "omniclass",
		Title:   "OmniClass",
		Version: "2019",
		Description: "OmniClass Construction Classification System for organising " +
			"information about the built environment through its life cycle.",
		Keywords:    []string{"OmniClass", "CSI", "BIM", "construction classification"},
		Icon:        "🏢",
		AccentColor: "#1d4ed8",
	},
	"coclass": {
		Key:     "coclass",
		Title:   "CoClass",
		Version: "2.0",
		Description: "CoClass, the Swedish classification system for the built " +
			"environment, describing construction entities, spaces and components.",
		Keywords:    []string{"CoClass", "BSAB", "BIM", "construction classification"},
		Icon:        "🧱",
		AccentColor: "#b45309",
	},
	"ccs": {
		Key:     "ccs",
		Title:   "CCS – Cuneco Classification System",
		Version: "1.0",
		Description: "The Danish *Cuneco Classification System* for construction " +
			"objects, built on IEC/ISO 81346.",
		Keywords:    []string{"CCS", "Cuneco", "IEC 81346", "construction classification"},
		Icon:        "🏛️",
		AccentColor: "#be123c",
	},
}

// Lookup returns the preset for key.
func Lookup(key string) (Preset, error) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return Preset{}, &UnknownSystemError{Key: key, Valid: Keys()}
	}
	return p, nil
}

// Keys returns the known system keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(presets))
	for k := range presets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns every preset, ordered by key.
func All() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, k := range Keys() {
		out = append(out, presets[k])
	}
	return out
}
