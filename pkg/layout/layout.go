package layout

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/corkboard-io/corkboard/pkg/board"
)

// =============================================================================
// Settings - Layout Constants
// =============================================================================

// Default layout constants in canvas units. These are the canonical values;
// override them per Engine via WithSettings or a TOML settings file.
const (
	DefaultLeftPadding  = 100.0
	DefaultTopPadding   = 100.0
	DefaultHeaderHeight = 60.0
	DefaultGroupPadding = 40.0

	DefaultGridColumns    = 4
	DefaultGridCellWidth  = 120.0
	DefaultGridCellHeight = 120.0
	DefaultGridGap        = 20.0
)

// Settings holds the fixed spacing constants of the layout engine.
//
// LeftPadding and TopPadding position the first group; HeaderHeight reserves
// vertical space above each group for the label header the host renders;
// GroupPadding separates consecutive groups. The Grid* fields control the
// fixed-column grid used for the rest bucket in filter mode.
type Settings struct {
	LeftPadding  float64 `json:"left_padding" toml:"left_padding"`
	TopPadding   float64 `json:"top_padding" toml:"top_padding"`
	HeaderHeight float64 `json:"header_height" toml:"header_height"`
	GroupPadding float64 `json:"group_padding" toml:"group_padding"`

	GridColumns    int     `json:"grid_columns" toml:"grid_columns"`
	GridCellWidth  float64 `json:"grid_cell_width" toml:"grid_cell_width"`
	GridCellHeight float64 `json:"grid_cell_height" toml:"grid_cell_height"`
	GridGap        float64 `json:"grid_gap" toml:"grid_gap"`
}

// DefaultSettings returns the canonical layout constants.
func DefaultSettings() Settings {
	return Settings{
		LeftPadding:    DefaultLeftPadding,
		TopPadding:     DefaultTopPadding,
		HeaderHeight:   DefaultHeaderHeight,
		GroupPadding:   DefaultGroupPadding,
		GridColumns:    DefaultGridColumns,
		GridCellWidth:  DefaultGridCellWidth,
		GridCellHeight: DefaultGridCellHeight,
		GridGap:        DefaultGridGap,
	}
}

// =============================================================================
// Engine - Group Layout Computation
// =============================================================================

// Option configures an Engine.
type Option func(*Engine)

// WithSettings overrides the default layout constants.
func WithSettings(s Settings) Option { return func(e *Engine) { e.settings = s } }

// WithCollator overrides the collator used to order group labels.
// The default collates with the Unicode root order (language.Und).
func WithCollator(c *collate.Collator) Option { return func(e *Engine) { e.collator = c } }

// Engine computes grouped layouts. It is stateless between calls: the same
// object slice and filter always produce the same positions, and the engine
// never retains or mutates caller data.
type Engine struct {
	settings Settings
	collator *collate.Collator
}

// New creates a layout engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		settings: DefaultSettings(),
		collator: collate.New(language.Und),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Settings returns the engine's layout constants.
func (e *Engine) Settings() Settings { return e.settings }

// =============================================================================
// Result Types
// =============================================================================

// GroupKey identifies a layout group. The unclassified bucket is tagged with
// a dedicated flag rather than a reserved label string, so a user label can
// never collide with it.
type GroupKey struct {
	Label        string `json:"label,omitempty" bson:"label,omitempty"`
	Unclassified bool   `json:"unclassified,omitempty" bson:"unclassified,omitempty"`
}

// UnclassifiedDisplayName is the display string hosts typically render for
// the unclassified bucket's header. It has no semantic meaning: bucket
// membership is keyed on GroupKey.Unclassified, never on this string.
const UnclassifiedDisplayName = "Unclassified"

// String returns a display name for the group.
func (k GroupKey) String() string {
	if k.Unclassified {
		return UnclassifiedDisplayName
	}
	return k.Label
}

// Positions maps object IDs to their new top-left coordinates.
// The map is produced fresh on every computation and owned by the caller.
type Positions map[string]board.Point

// PlacedGroup describes one laid-out group in stacking order, giving the
// host everything it needs to render a header above the group.
type PlacedGroup struct {
	Key GroupKey `json:"key" bson:"key"`

	// HeaderLeft and HeaderTop are the top-left origin of the reserved
	// header strip; the group's content starts HeaderHeight below it.
	HeaderLeft float64 `json:"header_left" bson:"header_left"`
	HeaderTop  float64 `json:"header_top" bson:"header_top"`

	// Bounds is the group's enclosing box after translation.
	Bounds board.Bounds `json:"bounds" bson:"bounds"`

	// Members lists object IDs in iteration order.
	Members []string `json:"members" bson:"members"`

	// Grid is true when members were packed into grid cells instead of
	// being rigidly translated (the rest bucket in filter mode).
	Grid bool `json:"grid,omitempty" bson:"grid,omitempty"`
}

// Plan is the full result of one layout computation.
type Plan struct {
	Positions Positions     `json:"positions" bson:"positions"`
	Groups    []PlacedGroup `json:"groups" bson:"groups"`
}

// =============================================================================
// Computation
// =============================================================================

// Compute partitions the objects by classification and assigns each object a
// new top-left coordinate such that groups stack vertically without overlap.
//
// With an empty filter (grouped overview), every object joins the group of
// its own label, or the unclassified bucket if it has none; all groups are
// rigidly translated. With a non-empty filter, objects matching the filter
// label form one translated group and every other object - including those
// carrying a different label - is packed into a fixed-column grid bucket.
//
// Objects are taken as a slice, not a map: determinism requires the caller
// to control iteration order, and Go map iteration is randomized. Calling
// Compute twice with the same slice and filter yields identical maps.
func (e *Engine) Compute(objects []board.Object, filter string) (Positions, error) {
	plan, err := e.Plan(objects, filter)
	if err != nil {
		return nil, err
	}
	return plan.Positions, nil
}

// Plan computes positions along with per-group placement metadata.
func (e *Engine) Plan(objects []board.Object, filter string) (Plan, error) {
	groups, rest := partition(objects, filter)
	e.orderGroups(groups)

	s := e.settings
	plan := Plan{Positions: make(Positions, len(objects))}
	cursor := s.TopPadding

	for _, g := range groups {
		if len(g.members) == 0 {
			continue
		}

		headerTop := cursor
		cursor += s.HeaderHeight

		gb, err := board.GroupBounds(g.members)
		if err != nil {
			return Plan{}, err
		}

		// Rigid translation: every member moves by the same vector, so
		// the authored intra-group arrangement is preserved exactly.
		dx := s.LeftPadding - gb.Left
		dy := cursor - gb.Top

		placed := PlacedGroup{
			Key:        g.key,
			HeaderLeft: s.LeftPadding,
			HeaderTop:  headerTop,
			Bounds:     gb.Translate(dx, dy),
			Members:    make([]string, len(g.members)),
		}
		for i := range g.members {
			m := &g.members[i]
			plan.Positions[m.ID] = board.Point{Left: m.Left + dx, Top: m.Top + dy}
			placed.Members[i] = m.ID
		}
		plan.Groups = append(plan.Groups, placed)

		cursor += gb.Height() + s.GroupPadding
	}

	if len(rest) > 0 {
		plan.Groups = append(plan.Groups, e.packGrid(rest, cursor, plan.Positions))
	}

	return plan, nil
}

// packGrid lays the rest bucket out in fixed grid cells below the stacked
// groups. Original positions are discarded: in single-classification focus
// mode non-matching objects are compacted uniformly rather than keeping a
// potentially large authored spread.
func (e *Engine) packGrid(rest []board.Object, cursor float64, pos Positions) PlacedGroup {
	s := e.settings

	cols := s.GridColumns
	if cols < 1 {
		cols = 1
	}

	headerTop := cursor
	cursor += s.HeaderHeight

	placed := PlacedGroup{
		Key:        GroupKey{Unclassified: true},
		HeaderLeft: s.LeftPadding,
		HeaderTop:  headerTop,
		Members:    make([]string, len(rest)),
		Grid:       true,
	}

	rows := (len(rest) + cols - 1) / cols
	usedCols := min(len(rest), cols)
	placed.Bounds = board.Bounds{
		Left:   s.LeftPadding,
		Top:    cursor,
		Right:  s.LeftPadding + float64(usedCols)*s.GridCellWidth + float64(usedCols-1)*s.GridGap,
		Bottom: cursor + float64(rows)*s.GridCellHeight + float64(rows-1)*s.GridGap,
	}

	for i := range rest {
		col := i % cols
		row := i / cols
		pos[rest[i].ID] = board.Point{
			Left: s.LeftPadding + float64(col)*(s.GridCellWidth+s.GridGap),
			Top:  cursor + float64(row)*(s.GridCellHeight+s.GridGap),
		}
		placed.Members[i] = rest[i].ID
	}

	return placed
}

// =============================================================================
// Partitioning and Ordering
// =============================================================================

// group pairs a key with its members in input iteration order.
type group struct {
	key     GroupKey
	members []board.Object
}

// partition splits objects into ordered-later groups plus, in filter mode,
// the grid-packed rest bucket. In overview mode rest is always empty and
// unclassified objects form a regular (rigidly translated) group.
func partition(objects []board.Object, filter string) ([]*group, []board.Object) {
	if filter != "" {
		matched := &group{key: GroupKey{Label: filter}}
		var rest []board.Object
		for i := range objects {
			if objects[i].Label == filter {
				matched.members = append(matched.members, objects[i])
			} else {
				rest = append(rest, objects[i])
			}
		}
		return []*group{matched}, rest
	}

	byKey := make(map[GroupKey]*group)
	var groups []*group
	for i := range objects {
		key := GroupKey{Label: objects[i].Label, Unclassified: objects[i].Label == ""}
		g, ok := byKey[key]
		if !ok {
			g = &group{key: key}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.members = append(g.members, objects[i])
	}
	return groups, nil
}

// orderGroups sorts groups by label using locale-aware collation, with the
// unclassified bucket forced last regardless of collation order.
func (e *Engine) orderGroups(groups []*group) {
	slices.SortStableFunc(groups, func(a, b *group) int {
		switch {
		case a.key.Unclassified && b.key.Unclassified:
			return 0
		case a.key.Unclassified:
			return 1
		case b.key.Unclassified:
			return -1
		}
		return e.collator.CompareString(a.key.Label, b.key.Label)
	})
}
