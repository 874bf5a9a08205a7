package render

import (
	"strings"
	"testing"

	"github.com/corkboard-io/corkboard/pkg/board"
	"github.com/corkboard-io/corkboard/pkg/classify"
	"github.com/corkboard-io/corkboard/pkg/layout"
)

func renderFixture(t *testing.T, opts ...SVGOption) string {
	t.Helper()

	objects := []board.Object{
		{ID: "A", Label: "Cats", Left: 0, Top: 0, Width: 100, Height: 100},
		{ID: "C", Kind: board.KindCircle, Left: 500, Top: 500, Radius: 50},
	}
	plan, err := layout.New().Plan(objects, "")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	return string(SVG(objects, plan, opts...))
}

func TestSVGStructure(t *testing.T) {
	svg := renderFixture(t)

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("missing svg root: %s", svg[:60])
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("missing closing tag")
	}
	if !strings.Contains(svg, `id="shape-A"`) || !strings.Contains(svg, `id="shape-C"`) {
		t.Error("missing shape elements")
	}
	// Circles render as ellipses, rectangles as rects.
	if !strings.Contains(svg, "<ellipse") || !strings.Contains(svg, "<rect") {
		t.Error("missing shape primitives")
	}
}

func TestSVGHeaders(t *testing.T) {
	svg := renderFixture(t)

	if !strings.Contains(svg, ">Cats (1)</text>") {
		t.Errorf("missing Cats header:\n%s", svg)
	}
	if !strings.Contains(svg, ">"+layout.UnclassifiedDisplayName+" (1)</text>") {
		t.Errorf("missing unclassified header:\n%s", svg)
	}
}

func TestSVGPaletteFill(t *testing.T) {
	p := classify.NewPalette()
	svg := renderFixture(t, WithPalette(p))

	if !strings.Contains(svg, `fill="`+classify.DefaultColors[0]+`"`) {
		t.Error("classified shape should use the first palette color")
	}
	if !strings.Contains(svg, `fill="`+UnclassifiedColor+`"`) {
		t.Error("unclassified shape should use the fallback color")
	}
}

func TestSVGWithoutPalette(t *testing.T) {
	svg := renderFixture(t)
	if strings.Contains(svg, classify.DefaultColors[0]) {
		t.Error("no palette supplied, no palette colors expected")
	}
}

func TestSVGObjectLabels(t *testing.T) {
	svg := renderFixture(t, WithObjectLabels())
	if !strings.Contains(svg, ">A</text>") {
		t.Error("object labels not rendered")
	}
}

func TestSVGEscapesContent(t *testing.T) {
	objects := []board.Object{
		{ID: "x", Label: `<Cats & "Dogs">`, Left: 0, Top: 0},
	}
	plan, err := layout.New().Plan(objects, "")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	svg := string(SVG(objects, plan))

	if strings.Contains(svg, "<Cats") {
		t.Error("label not escaped")
	}
	if !strings.Contains(svg, "&lt;Cats") {
		t.Error("escaped label missing")
	}
}
