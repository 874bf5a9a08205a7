// Package layout implements the group layout engine.
//
// # Overview
//
// Given a set of positioned canvas objects and an optional active filter
// label, the engine partitions objects into classification groups, orders
// the groups deterministically, and assigns every object a new top-left
// coordinate so that groups stack vertically without overlap:
//
//  1. Partition: by label (overview mode), or into matching vs. rest
//     (filter mode).
//  2. Order: locale-aware collation of labels, unclassified bucket last.
//  3. Stack: advance a vertical cursor per group - header strip, then the
//     group's content, then inter-group padding.
//  4. Translate: each labeled group moves rigidly, preserving its authored
//     intra-group arrangement; the filter-mode rest bucket is instead
//     packed into fixed grid cells.
//
// The engine is a pure function of its inputs: no randomness, no shared
// mutable state, byte-identical output for identical input. It only
// computes target coordinates - rendering, animation, and persistence
// belong to the host application.
//
// # Usage
//
//	eng := layout.New()
//	positions, err := eng.Compute(objects, "")         // grouped overview
//	positions, err = eng.Compute(objects, "Cats")      // focus one label
//
//	plan, err := eng.Plan(objects, "")                 // positions + headers
//	for _, g := range plan.Groups {
//	    drawHeader(g.Key.String(), g.HeaderLeft, g.HeaderTop)
//	}
package layout
