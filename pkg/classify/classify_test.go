package classify

import (
	"reflect"
	"testing"
)

func TestControllerTransitions(t *testing.T) {
	c := NewController()

	// Fresh session starts unfiltered.
	if s := c.State(); s.FilterActive || s.ActiveFilter != "" {
		t.Errorf("initial state = %+v, want normal/no filter", s)
	}

	// SetFilter alone does not activate the grouped view.
	if s := c.SetFilter("Cats"); s.FilterActive {
		t.Errorf("SetFilter should not activate grouping: %+v", s)
	}
	if got := c.State().ActiveFilter; got != "Cats" {
		t.Errorf("ActiveFilter = %q, want Cats", got)
	}

	// EnterGrouped activates with the given filter.
	if s := c.EnterGrouped("Dogs"); !s.IsGrouped() || s.ActiveFilter != "Dogs" {
		t.Errorf("EnterGrouped = %+v", s)
	}

	// Entering again with no filter stays grouped as overview.
	if s := c.EnterGrouped(""); !s.IsGrouped() || s.ActiveFilter != "" {
		t.Errorf("EnterGrouped(overview) = %+v", s)
	}

	// ExitGrouped clears everything.
	if s := c.ExitGrouped(); s.FilterActive || s.ActiveFilter != "" {
		t.Errorf("ExitGrouped = %+v, want cleared state", s)
	}
}

func TestRegistryAdd(t *testing.T) {
	r := NewRegistry()

	if !r.Add("Cats") {
		t.Error("Add(Cats) should change the registry")
	}
	if r.Add("Cats") {
		t.Error("duplicate Add should be a no-op")
	}
	if r.Add("  Cats  ") {
		t.Error("Add should trim before dedupe")
	}
	if r.Add("   ") {
		t.Error("whitespace-only Add should be a no-op")
	}
	if r.Add("") {
		t.Error("empty Add should be a no-op")
	}

	r.Add("Dogs")
	if got := r.Labels(); !reflect.DeepEqual(got, []string{"Cats", "Dogs"}) {
		t.Errorf("Labels = %v", got)
	}
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry("Cats", "Dogs")

	if !r.Remove("Cats") {
		t.Error("Remove(Cats) should change the registry")
	}
	if r.Remove("Cats") {
		t.Error("second Remove should be a no-op")
	}
	if got := r.Labels(); !reflect.DeepEqual(got, []string{"Dogs"}) {
		t.Errorf("Labels = %v", got)
	}
}

func TestRegistryRename(t *testing.T) {
	r := NewRegistry("Cats", "Dogs")

	tests := []struct {
		name     string
		from, to string
		want     bool
		labels   []string
	}{
		{"basic", "Cats", "Felines", true, []string{"Felines", "Dogs"}},
		{"trims replacement", "Dogs", "  Canines ", true, []string{"Felines", "Canines"}},
		{"unknown old name", "Birds", "Avians", false, []string{"Felines", "Canines"}},
		{"empty replacement", "Felines", "  ", false, []string{"Felines", "Canines"}},
		{"no-op rename", "Felines", "Felines", false, []string{"Felines", "Canines"}},
		{"collision", "Felines", "Canines", false, []string{"Felines", "Canines"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Rename(tt.from, tt.to); got != tt.want {
				t.Errorf("Rename(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
			if got := r.Labels(); !reflect.DeepEqual(got, tt.labels) {
				t.Errorf("Labels = %v, want %v", got, tt.labels)
			}
		})
	}
}

func TestRegistryLabelsIsCopy(t *testing.T) {
	r := NewRegistry("Cats")
	labels := r.Labels()
	labels[0] = "mutated"
	if r.Labels()[0] != "Cats" {
		t.Error("Labels() must return a copy")
	}
}

func TestPaletteAssignment(t *testing.T) {
	p := NewPalette()

	// First three distinct labels get the first three colors in order.
	for i, label := range []string{"Cats", "Dogs", "Birds"} {
		if got := p.ColorFor(label); got != DefaultColors[i] {
			t.Errorf("ColorFor(%s) = %s, want %s", label, got, DefaultColors[i])
		}
	}

	// Re-requesting a seen label is idempotent.
	if got := p.ColorFor("Cats"); got != DefaultColors[0] {
		t.Errorf("repeat ColorFor(Cats) = %s, want %s", got, DefaultColors[0])
	}
	if got := p.Seen(); !reflect.DeepEqual(got, []string{"Cats", "Dogs", "Birds"}) {
		t.Errorf("Seen = %v", got)
	}
}

func TestPaletteCycles(t *testing.T) {
	p := NewPalette("#111111", "#222222")

	p.ColorFor("a")
	p.ColorFor("b")
	if got := p.ColorFor("c"); got != "#111111" {
		t.Errorf("third label should cycle back: %s", got)
	}
	// Cycling never reassigns earlier labels.
	if got := p.ColorFor("a"); got != "#111111" {
		t.Errorf("ColorFor(a) changed after cycling: %s", got)
	}
}

func TestPaletteAssignmentsIsCopy(t *testing.T) {
	p := NewPalette()
	p.ColorFor("Cats")

	m := p.Assignments()
	m["Cats"] = "#000000"
	if p.ColorFor("Cats") == "#000000" {
		t.Error("Assignments() must return a copy")
	}
}

func TestPaletteClone(t *testing.T) {
	p := NewPalette("#111111", "#222222")
	catsColor := p.ColorFor("Cats")

	clone := p.Clone()
	if clone.ColorFor("Cats") != catsColor {
		t.Error("clone should keep existing assignments")
	}

	// New assignments on the clone stay on the clone.
	clone.ColorFor("Dogs")
	if len(p.Seen()) != 1 {
		t.Errorf("original Seen() = %v, want only Cats", p.Seen())
	}
	if len(clone.Seen()) != 2 {
		t.Errorf("clone Seen() = %v, want Cats and Dogs", clone.Seen())
	}
}

func TestPaletteColorsIsCopy(t *testing.T) {
	p := NewPalette("#111111", "#222222")
	colors := p.Colors()
	colors[0] = "#ffffff"
	if p.ColorFor("Cats") != "#111111" {
		t.Error("Colors() must return a copy")
	}
}
