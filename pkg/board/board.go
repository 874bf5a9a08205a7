package board

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/corkboard-io/corkboard/pkg/errors"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Shape kinds. Every kind other than KindCircle is rectangle-like for
// bounding-box purposes.
const (
	KindRectangle ShapeKind = "rectangle"
	KindCircle    ShapeKind = "circle"
	KindEllipse   ShapeKind = "ellipse"
	KindTriangle  ShapeKind = "triangle"
)

// Geometry defaults applied when a field is absent (zero).
const (
	DefaultRadius = 50.0
	DefaultWidth  = 100.0
	DefaultHeight = 100.0
)

// ShapeKind identifies the drawing primitive of a canvas object.
type ShapeKind string

// ValidKinds is the closed set of supported shape kinds.
var ValidKinds = map[ShapeKind]bool{
	KindRectangle: true,
	KindCircle:    true,
	KindEllipse:   true,
	KindTriangle:  true,
}

// =============================================================================
// Object - Canvas Shape Instance
// =============================================================================

// Object is a single identifiable shape on the canvas.
//
// Left and Top are the canvas-space origin (anchor at top-left). Width,
// Height, and Radius are base sizes before scaling; zero means "absent" and
// the kind-specific default applies. ScaleX and ScaleY are independent axis
// scale factors; zero means "absent" and defaults to 1.0.
//
// Label is the classification label, exact-match semantics. An empty label
// means the object is unclassified.
type Object struct {
	ID     string    `json:"id" bson:"id"`
	Kind   ShapeKind `json:"kind,omitempty" bson:"kind,omitempty"`
	Label  string    `json:"label,omitempty" bson:"label,omitempty"`
	Left   float64   `json:"left" bson:"left"`
	Top    float64   `json:"top" bson:"top"`
	Width  float64   `json:"width,omitempty" bson:"width,omitempty"`
	Height float64   `json:"height,omitempty" bson:"height,omitempty"`
	Radius float64   `json:"radius,omitempty" bson:"radius,omitempty"`
	ScaleX float64   `json:"scale_x,omitempty" bson:"scale_x,omitempty"`
	ScaleY float64   `json:"scale_y,omitempty" bson:"scale_y,omitempty"`
}

// IsClassified returns true if the object carries a classification label.
func (o *Object) IsClassified() bool { return o.Label != "" }

// EffectiveKind returns the kind, defaulting to rectangle when unset.
func (o *Object) EffectiveKind() ShapeKind {
	if o.Kind == "" {
		return KindRectangle
	}
	return o.Kind
}

// scale returns the effective axis scale factors, applying the 1.0 default.
func (o *Object) scale() (sx, sy float64) {
	sx, sy = o.ScaleX, o.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}

// Validate checks the object's identity and geometry.
// Geometry fields must be finite; scale factors must be positive (or zero,
// meaning absent). Malformed geometry makes every downstream bounds and
// layout computation undefined, so it is rejected at the door.
func (o *Object) Validate() error {
	if err := errors.ValidateObjectID(o.ID); err != nil {
		return err
	}

	if o.Kind != "" && !ValidKinds[o.Kind] {
		return errors.New(errors.ErrCodeInvalidObject, "object %s: unknown shape kind %q", o.ID, o.Kind)
	}

	fields := map[string]float64{
		"left":   o.Left,
		"top":    o.Top,
		"width":  o.Width,
		"height": o.Height,
		"radius": o.Radius,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeInvalidGeometry, "object %s: %s is not finite", o.ID, name)
		}
	}
	if o.Width < 0 || o.Height < 0 || o.Radius < 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "object %s: negative size", o.ID)
	}

	for name, v := range map[string]float64{"scale_x": o.ScaleX, "scale_y": o.ScaleY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeInvalidGeometry, "object %s: %s is not finite", o.ID, name)
		}
		if v < 0 {
			return errors.New(errors.ErrCodeInvalidGeometry, "object %s: %s must be positive", o.ID, name)
		}
	}

	return nil
}

// =============================================================================
// Point - Layout Target Coordinate
// =============================================================================

// Point is a top-left canvas coordinate produced by the layout engine.
type Point struct {
	Left float64 `json:"left" bson:"left"`
	Top  float64 `json:"top" bson:"top"`
}

// =============================================================================
// Board - Canonical Object Set
// =============================================================================

// Board is the canonical serialization format for a canvas document.
// It holds the object set plus the display-facing catalogue of registered
// classification labels. The host application owns persistence; see the
// store package for file and Mongo backends.
type Board struct {
	ID      string   `json:"id,omitempty" bson:"_id,omitempty"`
	Name    string   `json:"name,omitempty" bson:"name,omitempty"`
	Objects []Object `json:"objects" bson:"objects"`
	Labels  []string `json:"labels,omitempty" bson:"labels,omitempty"`
}

// Validate checks every object and rejects duplicate object IDs.
func (b *Board) Validate() error {
	seen := make(map[string]bool, len(b.Objects))
	for i := range b.Objects {
		o := &b.Objects[i]
		if err := o.Validate(); err != nil {
			return err
		}
		if seen[o.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate object id %q", o.ID)
		}
		seen[o.ID] = true
	}
	return nil
}

// Object returns the object with the given id, if present.
func (b *Board) Object(id string) (*Object, bool) {
	for i := range b.Objects {
		if b.Objects[i].ID == id {
			return &b.Objects[i], true
		}
	}
	return nil, false
}

// =============================================================================
// Board Serialization API
// =============================================================================

// MarshalBoard serializes a Board to pretty-printed JSON bytes.
func MarshalBoard(b Board) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// UnmarshalBoard deserializes JSON bytes into a Board and validates it.
func UnmarshalBoard(data []byte) (Board, error) {
	var b Board
	if err := json.Unmarshal(data, &b); err != nil {
		return Board{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal board")
	}
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// WriteBoardFile writes a Board to a JSON file.
func WriteBoardFile(b Board, path string) error {
	data, err := MarshalBoard(b)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadBoardFile reads a Board from a JSON file.
func ReadBoardFile(path string) (Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Board{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalBoard(data)
}
