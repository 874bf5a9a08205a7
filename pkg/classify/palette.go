package classify

// DefaultColors is the predefined 10-color hex palette assigned to
// classifications in first-seen order.
var DefaultColors = []string{
	"#FF6B6B",
	"#4ECDC4",
	"#45B7D1",
	"#96CEB4",
	"#FFEAA7",
	"#DDA0DD",
	"#98D8C8",
	"#F7DC6F",
	"#BB8FCE",
	"#85C1E9",
}

// Palette assigns colors to classification labels by cycling through a fixed
// color list in first-seen order. Assignment is append-only and idempotent:
// re-requesting a known label never changes its color.
//
// A Palette is an explicit, caller-owned cache with a lifecycle tied to one
// canvas session. Independent sessions should hold independent instances
// rather than sharing process-wide state.
type Palette struct {
	colors   []string
	assigned map[string]string
	order    []string
}

// NewPalette creates a palette. With no arguments it uses DefaultColors.
func NewPalette(colors ...string) *Palette {
	if len(colors) == 0 {
		colors = DefaultColors
	}
	return &Palette{
		colors:   colors,
		assigned: make(map[string]string),
	}
}

// ColorFor returns the color for a label, assigning the next palette color
// on first sight. Colors cycle once the palette is exhausted.
func (p *Palette) ColorFor(label string) string {
	if c, ok := p.assigned[label]; ok {
		return c
	}
	c := p.colors[len(p.order)%len(p.colors)]
	p.assigned[label] = c
	p.order = append(p.order, label)
	return c
}

// Colors returns the configured color cycle.
func (p *Palette) Colors() []string {
	out := make([]string, len(p.colors))
	copy(out, p.colors)
	return out
}

// Clone returns an independent palette with the same color cycle and the
// same assignments. New labels assigned on the clone do not leak back.
func (p *Palette) Clone() *Palette {
	c := &Palette{
		colors:   make([]string, len(p.colors)),
		assigned: make(map[string]string, len(p.assigned)),
		order:    make([]string, len(p.order)),
	}
	copy(c.colors, p.colors)
	copy(c.order, p.order)
	for k, v := range p.assigned {
		c.assigned[k] = v
	}
	return c
}

// Seen returns the labels in first-seen order.
func (p *Palette) Seen() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Assignments returns a copy of the current label-to-color mapping.
func (p *Palette) Assignments() map[string]string {
	out := make(map[string]string, len(p.assigned))
	for k, v := range p.assigned {
		out[k] = v
	}
	return out
}
