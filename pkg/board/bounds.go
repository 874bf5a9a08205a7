package board

import (
	"github.com/corkboard-io/corkboard/pkg/errors"
)

// Bounds is an axis-aligned bounding box in canvas space.
// All coordinates are in user units (typically pixels). Right >= Left and
// Bottom >= Top hold for every box produced by this package.
type Bounds struct {
	Left, Top     float64
	Right, Bottom float64
}

// Width returns the horizontal span of the box.
func (b Bounds) Width() float64 { return b.Right - b.Left }

// Height returns the vertical span of the box.
func (b Bounds) Height() float64 { return b.Bottom - b.Top }

// CenterX returns the horizontal center point of the box.
func (b Bounds) CenterX() float64 { return (b.Left + b.Right) / 2 }

// CenterY returns the vertical center point of the box.
func (b Bounds) CenterY() float64 { return (b.Top + b.Bottom) / 2 }

// Translate returns the box shifted by (dx, dy).
func (b Bounds) Translate(dx, dy float64) Bounds {
	return Bounds{
		Left:   b.Left + dx,
		Top:    b.Top + dy,
		Right:  b.Right + dx,
		Bottom: b.Bottom + dy,
	}
}

// Union returns the smallest box enclosing both boxes.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		Left:   min(b.Left, o.Left),
		Top:    min(b.Top, o.Top),
		Right:  max(b.Right, o.Right),
		Bottom: max(b.Bottom, o.Bottom),
	}
}

// Bounds returns the object's axis-aligned bounding box.
//
// Circles derive their base size from the radius (width = height = 2r);
// every other kind uses the base width/height. Each axis is scaled
// independently, so a non-uniformly scaled circle yields an ellipse box.
// Scaling grows the box rightward and downward from the (Left, Top) anchor.
//
// The computation assumes a validated object; see (*Object).Validate.
func (o *Object) Bounds() Bounds {
	sx, sy := o.scale()

	var w, h float64
	if o.EffectiveKind() == KindCircle {
		r := o.Radius
		if r == 0 {
			r = DefaultRadius
		}
		w, h = 2*r*sx, 2*r*sy
	} else {
		w, h = o.Width, o.Height
		if w == 0 {
			w = DefaultWidth
		}
		if h == 0 {
			h = DefaultHeight
		}
		w, h = w*sx, h*sy
	}

	return Bounds{
		Left:   o.Left,
		Top:    o.Top,
		Right:  o.Left + w,
		Bottom: o.Top + h,
	}
}

// GroupBounds returns the componentwise min/max enclosing box of all
// member boxes. An empty collection has no meaningful box ("the min of
// nothing" degenerates to infinities), so it is rejected with an
// INVALID_INPUT error instead.
func GroupBounds(objects []Object) (Bounds, error) {
	if len(objects) == 0 {
		return Bounds{}, errors.New(errors.ErrCodeInvalidInput, "group bounds requires at least one object")
	}

	bounds := objects[0].Bounds()
	for i := 1; i < len(objects); i++ {
		bounds = bounds.Union(objects[i].Bounds())
	}
	return bounds, nil
}
