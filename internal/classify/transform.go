package classify

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// ErrStructure reports that the export's top-level system or item container
// could not be located. It is fatal: no per-node default can recover it.
var ErrStructure = errors.New("classification export structure not recognised")

// StructureError names the container that was missing.
type StructureError struct {
	Path string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrStructure.Error(), e.Path)
}

func (e *StructureError) Unwrap() error { return ErrStructure }

// wrapped is a string field that the export stores as a single-element
// array. Bare strings are accepted too; anything else reads as absent.
type wrapped string

func (w *wrapped) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) > 0 {
			*w = wrapped(list[0])
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*w = wrapped(s)
	}
	return nil
}

// rawItem mirrors one classification item of the export.
type rawItem struct {
	ID          wrapped         `json:"ID"`
	Name        wrapped         `json:"Name"`
	Description wrapped         `json:"Description"`
	Children    json.RawMessage `json:"Children"`
}

type rawSystem struct {
	Name           wrapped         `json:"Name"`
	EditionVersion wrapped         `json:"EditionVersion"`
	EditionDate    wrapped         `json:"EditionDate"`
	Description    wrapped         `json:"Description"`
	Items          json.RawMessage `json:"Items"`
}

// Transform parses a classification export and returns its canonical form.
//
// The expected shape is
//
//	{"Classification": {"System": [{"Name": [...], "Items": [{"Item": [...]}]}]}}
//
// where the outer "Classification" object is optional and every wrapper
// array may also be a bare object.
func Transform(data []byte) (*Export, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("decoding export: %w", err)
	}

	if inner, ok := top["Classification"]; ok {
		top = nil
		if err := json.Unmarshal(inner, &top); err != nil || top == nil {
			return nil, &StructureError{Path: "Classification object"}
		}
	}

	sysRaw, ok := first(top["System"])
	if !ok {
		return nil, &StructureError{Path: "System"}
	}
	var sys rawSystem
	if err := json.Unmarshal(sysRaw, &sys); err != nil {
		return nil, &StructureError{Path: "System object"}
	}

	itemsRaw, ok := first(sys.Items)
	if !ok {
		return nil, &StructureError{Path: "System.Items"}
	}
	var container struct {
		Item json.RawMessage `json:"Item"`
	}
	if err := json.Unmarshal(itemsRaw, &container); err != nil || isNull(container.Item) {
		return nil, &StructureError{Path: "System.Items.Item"}
	}
	items, ok := decodeItems(container.Item)
	if !ok {
		return nil, &StructureError{Path: "System.Items.Item array"}
	}

	return &Export{
		System: SystemInfo{
			Name:        strings.TrimSpace(string(sys.Name)),
			Version:     strings.TrimSpace(string(sys.EditionVersion)),
			Date:        strings.TrimSpace(string(sys.EditionDate)),
			Description: strings.TrimSpace(string(sys.Description)),
		},
		Forest: mapItems(items),
	}, nil
}

// mapItems converts items depth-first, keeping source order.
func mapItems(items []rawItem) []*Node {
	nodes := make([]*Node, 0, len(items))
	for _, it := range items {
		nodes = append(nodes, mapItem(it))
	}
	return nodes
}

func mapItem(it rawItem) *Node {
	displayID := strings.TrimSpace(string(it.ID))
	name := strings.TrimSpace(string(it.Name))
	desc := strings.TrimSpace(string(it.Description))
	if desc == "" {
		desc = DefaultDescription(name)
	}
	return &Node{
		ID:          NormalizeID(displayID),
		DisplayID:   displayID,
		Name:        name,
		Description: desc,
		Children:    mapItems(childItems(it.Children)),
	}
}

// childItems flattens the Children wrappers of an item. Malformed children
// are dropped rather than failing the whole export.
func childItems(raw json.RawMessage) []rawItem {
	if isNull(raw) {
		return nil
	}
	type wrapper struct {
		Item json.RawMessage `json:"Item"`
	}
	var list []wrapper
	if err := json.Unmarshal(raw, &list); err != nil {
		var single wrapper
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil
		}
		list = []wrapper{single}
	}
	var out []rawItem
	for _, w := range list {
		items, _ := decodeItems(w.Item)
		out = append(out, items...)
	}
	return out
}

// decodeItems decodes an Item array element by element so that one
// malformed entry does not take its siblings down with it. A bare object is
// read as a one-element array. It reports false when raw is neither.
func decodeItems(raw json.RawMessage) ([]rawItem, bool) {
	if isNull(raw) {
		return nil, false
	}
	var elems []json.RawMessage
	switch bytes.TrimSpace(raw)[0] {
	case '[':
		if err := json.Unmarshal(raw, &elems); err != nil {
			return nil, false
		}
	case '{':
		elems = []json.RawMessage{raw}
	default:
		return nil, false
	}
	items := make([]rawItem, 0, len(elems))
	for _, elem := range elems {
		var it rawItem
		if err := json.Unmarshal(elem, &it); err != nil {
			continue
		}
		items = append(items, it)
	}
	return items, true
}

// first unwraps a single-element wrapper array, or returns an object as is.
func first(raw json.RawMessage) (json.RawMessage, bool) {
	if isNull(raw) {
		return nil, false
	}
	trimmed := bytes.TrimSpace(raw)
	if trimmed[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil || len(list) == 0 || isNull(list[0]) {
			return nil, false
		}
		return list[0], true
	}
	if trimmed[0] == '{' {
		return trimmed, true
	}
	return nil, false
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
