// Package render generates SVG previews of computed layouts.
//
// The preview is a host-side convenience: the layout engine only produces
// coordinates, and this package draws them - colored shapes per
// classification plus a header label above each group. Nothing here feeds
// back into layout computation.
package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/corkboard-io/corkboard/pkg/board"
	"github.com/corkboard-io/corkboard/pkg/classify"
	"github.com/corkboard-io/corkboard/pkg/layout"
)

const (
	// UnclassifiedColor fills shapes that carry no classification.
	UnclassifiedColor = "#CCCCCC"

	frameMargin    = 40.0
	headerFontSize = 24.0
	shapeFontSize  = 12.0
)

// SVGOption configures the SVG renderer.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette    *classify.Palette
	showLabels bool
}

// WithPalette supplies the color palette used for classification fills.
// Without one, every shape renders in the unclassified color.
func WithPalette(p *classify.Palette) SVGOption {
	return func(r *svgRenderer) { r.palette = p }
}

// WithObjectLabels draws each object's ID inside its shape.
func WithObjectLabels() SVGOption {
	return func(r *svgRenderer) { r.showLabels = true }
}

// SVG renders a computed plan to an SVG document. Objects are drawn at
// their plan positions with their own effective sizes; each group gets a
// header label at its reserved header origin.
func SVG(objects []board.Object, plan layout.Plan, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	width, height := frameSize(objects, plan)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	for _, g := range plan.Groups {
		renderHeader(&buf, g)
	}
	for i := range objects {
		r.renderObject(&buf, &objects[i], plan.Positions)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// frameSize derives the document size from the placed content.
func frameSize(objects []board.Object, plan layout.Plan) (w, h float64) {
	var right, bottom float64
	for _, g := range plan.Groups {
		right = max(right, g.Bounds.Right)
		bottom = max(bottom, g.Bounds.Bottom)
	}
	// Objects without a computed position keep their original spot and
	// still need to fit the frame.
	for i := range objects {
		if _, ok := plan.Positions[objects[i].ID]; ok {
			continue
		}
		b := objects[i].Bounds()
		right = max(right, b.Right)
		bottom = max(bottom, b.Bottom)
	}
	return right + frameMargin, bottom + frameMargin
}

func renderHeader(buf *bytes.Buffer, g layout.PlacedGroup) {
	fmt.Fprintf(buf,
		`  <text class="group-header" x="%.1f" y="%.1f" font-size="%.0f" font-weight="bold">%s (%d)</text>`+"\n",
		g.HeaderLeft, g.HeaderTop+headerFontSize, headerFontSize,
		html.EscapeString(g.Key.String()), len(g.Members))
}

func (r *svgRenderer) renderObject(buf *bytes.Buffer, o *board.Object, pos layout.Positions) {
	place := board.Point{Left: o.Left, Top: o.Top}
	if p, ok := pos[o.ID]; ok {
		place = p
	}

	fill := UnclassifiedColor
	if r.palette != nil && o.IsClassified() {
		fill = r.palette.ColorFor(o.Label)
	}

	b := o.Bounds()
	w, h := b.Width(), b.Height()

	if o.EffectiveKind() == board.KindCircle {
		fmt.Fprintf(buf,
			`  <ellipse id="shape-%s" cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" fill="%s" stroke="#333333"/>`+"\n",
			html.EscapeString(o.ID), place.Left+w/2, place.Top+h/2, w/2, h/2, fill)
	} else {
		fmt.Fprintf(buf,
			`  <rect id="shape-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#333333"/>`+"\n",
			html.EscapeString(o.ID), place.Left, place.Top, w, h, fill)
	}

	if r.showLabels {
		fmt.Fprintf(buf,
			`  <text x="%.1f" y="%.1f" font-size="%.0f" text-anchor="middle">%s</text>`+"\n",
			place.Left+w/2, place.Top+h/2+shapeFontSize/2, shapeFontSize, html.EscapeString(o.ID))
	}
}
