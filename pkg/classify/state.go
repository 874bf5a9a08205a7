package classify

// State is a snapshot of the filter state machine.
//
// FilterActive distinguishes the normal canvas layout from the grouped
// layout; ActiveFilter selects a single classification to focus on, or is
// empty for the grouped overview. A fresh session always starts unfiltered -
// state is never persisted.
type State struct {
	ActiveFilter string `json:"active_filter,omitempty"`
	FilterActive bool   `json:"filter_active"`
}

// IsGrouped returns true when the grouped layout is active.
func (s State) IsGrouped() bool { return s.FilterActive }

// Controller is the filter/classification state machine. It is orthogonal to
// the layout math: transitions only record which view the host should show.
// The host is solely responsible for restoring original object positions
// after ExitGrouped - the controller keeps no undo bookkeeping.
type Controller struct {
	state State
}

// NewController creates a controller in the Normal (unfiltered) state.
func NewController() *Controller {
	return &Controller{}
}

// State returns the current state snapshot.
func (c *Controller) State() State { return c.state }

// SetFilter updates which label is active without changing whether the
// grouped view is shown. It has no visible effect until the grouped view
// is entered.
func (c *Controller) SetFilter(label string) State {
	c.state.ActiveFilter = label
	return c.state
}

// EnterGrouped transitions to the grouped view with the given filter.
// An empty label means grouped overview (one group per classification).
func (c *Controller) EnterGrouped(label string) State {
	c.state = State{ActiveFilter: label, FilterActive: true}
	return c.state
}

// ExitGrouped transitions back to the normal view and clears the filter.
func (c *Controller) ExitGrouped() State {
	c.state = State{}
	return c.state
}
