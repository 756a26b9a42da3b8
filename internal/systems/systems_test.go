package systems

import (
	"errors"
	"strings"
	"testing"
)

func TestLookupKnownKeys(t *testing.T) {
	for _, key := range []string{"uniclass", "omniclass", "coclass", "ccs", " Uniclass "} {
		p, err := Lookup(key)
		if err != nil {
			t.Errorf("Lookup(%q): %v", key, err)
			continue
		}
		if p.Title == "" || p.AccentColor == "" || p.Icon == "" {
			t.Errorf("preset %q is incomplete: %+v", key, p)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("foo")
	if !errors.Is(err, ErrUnknownSystem) {
		t.Fatalf("err = %v, want ErrUnknownSystem", err)
	}
	var ue *UnknownSystemError
	if !errors.As(err, &ue) {
		t.Fatalf("expected *UnknownSystemError, got %T", err)
	}
	if len(ue.Valid) != 4 {
		t.Errorf("valid keys = %v, want 4", ue.Valid)
	}
	if !strings.Contains(err.Error(), "ccs, coclass, omniclass, uniclass") {
		t.Errorf("error should list valid keys, got %q", err.Error())
	}
}

func TestAllIsSortedByKey(t *testing.T) {
	all := All()
	if len(all) != 4 {
		t.Fatalf("All() = %d presets, want 4", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Key >= all[i].Key {
			t.Errorf("presets not sorted: %q before %q", all[i-1].Key, all[i].Key)
		}
	}
}
