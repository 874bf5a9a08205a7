// Package board defines the canvas data model and the bounds calculator.
//
// # Overview
//
// A Board is the canonical set of positioned shapes on a 2D canvas, each
// optionally tagged with a classification label. This package owns:
//
//   - The Object and Board types and their JSON/BSON serialization
//   - Geometry validation (finite coordinates, positive scales)
//   - The bounds calculator: per-object and per-group axis-aligned
//     bounding boxes
//
// The bounds calculator is pure: it never mutates its input and depends on
// nothing but the object's own geometry. Layout logic that consumes these
// boxes lives in the layout package.
//
// # Anchor Convention
//
// Shapes anchor at their top-left corner. Scaling a shape grows its
// bounding box rightward and downward; Left and Top are never affected by
// scale factors.
package board
