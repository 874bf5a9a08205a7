// Package cache provides the memoization layer for layout computation.
//
// Layout computation is a pure re-derivation - caching it is an optional
// performance layer, never a correctness requirement. Entries are keyed on
// the content hash of the board plus the filter and layout settings, so a
// stale hit is impossible: any input change changes the key.
//
// # Backends
//
//   - NullCache: caching disabled (testing, one-shot runs)
//   - MemoryCache: in-process TTL cache for a single session
//   - FileCache: on-disk cache for CLI usage
//   - RedisCache: shared cache for multi-instance server deployments
package cache

import (
	"context"
	"time"
)

// TTLs per cached artifact type. Boards are the canonical input and keep
// the longest TTL; layouts and rendered artifacts are cheap re-derivations.
const (
	TTLBoard    = 7 * 24 * time.Hour
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is the interface all backends implement.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration (or the
	// backend default, for backends that carry one); a negative ttl
	// must never produce a future hit.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the inputs, besides the board content itself, that
// determine a layout result. Two computations with equal board hashes and
// equal opts are interchangeable.
type LayoutKeyOpts struct {
	Filter       string  `json:"filter"`
	LeftPadding  float64 `json:"left_padding"`
	TopPadding   float64 `json:"top_padding"`
	HeaderHeight float64 `json:"header_height"`
	GroupPadding float64 `json:"group_padding"`
	GridColumns  int     `json:"grid_columns"`
	GridCellW    float64 `json:"grid_cell_w"`
	GridCellH    float64 `json:"grid_cell_h"`
	GridGap      float64 `json:"grid_gap"`
}

// ArtifactKeyOpts are the render inputs that determine an output artifact
// beyond the plan itself. Colors is the configured palette cycle and
// Assignments the label colors already handed out; both change the bytes a
// renderer produces, so both feed the key.
type ArtifactKeyOpts struct {
	Format      string            `json:"format"`
	ShowLabels  bool              `json:"show_labels"`
	Colors      []string          `json:"colors,omitempty"`
	Assignments map[string]string `json:"assignments,omitempty"`
}

// Keyer generates cache keys for the different cached artifact types.
type Keyer interface {
	// BoardKey generates a key for a stored board snapshot.
	BoardKey(boardID string) string

	// LayoutKey generates a key for a computed layout plan.
	LayoutKey(boardHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered output.
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// BoardKey generates a key for a stored board snapshot.
func (k *DefaultKeyer) BoardKey(boardID string) string {
	return "board:" + boardID
}

// LayoutKey generates a key for a computed layout plan.
func (k *DefaultKeyer) LayoutKey(boardHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", boardHash, opts)
}

// ArtifactKey generates a key for a rendered output.
func (k *DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix to isolate cache namespaces, e.g.
// one prefix per canvas session sharing a Redis instance.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// BoardKey generates a prefixed board key.
func (k *ScopedKeyer) BoardKey(boardID string) string {
	return k.prefix + k.inner.BoardKey(boardID)
}

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(boardHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(boardHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(planHash, opts)
}
