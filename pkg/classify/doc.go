// Package classify manages classification state around the layout engine:
// the filter state machine, the label registry, and the color palette.
//
// All three are small, synchronous, and side-effect free beyond their own
// fields. None of them touch canvas objects or computed positions - they
// feed the layout engine and the host's rendering, nothing more.
package classify
