// Package pipeline provides the core layout pipeline for Corkboard.
//
// This package implements the complete load → layout → render pipeline that
// can be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and validate the board whose objects will be arranged
//  2. Layout: Compute grouped positions for the board's objects
//  3. Render: Generate output in various formats (SVG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Filter:  "Birds",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, brd, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout with an existing board
//	plan, err := runner.ComputePlan(ctx, brd, opts)
//
//	// Render with an existing plan
//	artifacts, err := runner.Render(ctx, brd, plan, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/corkboard-io/corkboard/pkg/cache"
	"github.com/corkboard-io/corkboard/pkg/classify"
	"github.com/corkboard-io/corkboard/pkg/layout"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Filter   string           `json:"filter,omitempty"`
	Settings *layout.Settings `json:"settings,omitempty"`
	Refresh  bool             `json:"refresh,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	ShowLabels bool     `json:"show_labels,omitempty"`

	// Runtime options (not serialized)
	Logger  *log.Logger       `json:"-"`
	Palette *classify.Palette `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// BoardHash is the content hash of the board input.
	BoardHash string

	// Plan contains the computed positions and group placements.
	Plan layout.Plan

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ObjectCount int
	GroupCount  int
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the plan came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Settings == nil {
		s := layout.DefaultSettings()
		o.Settings = &s
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Palette == nil {
		o.Palette = classify.NewPalette()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	s := o.Settings
	if s == nil {
		def := layout.DefaultSettings()
		s = &def
	}
	return cache.LayoutKeyOpts{
		Filter:       o.Filter,
		LeftPadding:  s.LeftPadding,
		TopPadding:   s.TopPadding,
		HeaderHeight: s.HeaderHeight,
		GroupPadding: s.GroupPadding,
		GridColumns:  s.GridColumns,
		GridCellW:    s.GridCellWidth,
		GridCellH:    s.GridCellHeight,
		GridGap:      s.GridGap,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering. The
// palette is part of the key: two renders of the same plan with different
// color cycles or prior label assignments produce different bytes.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:     format,
		ShowLabels: o.ShowLabels,
	}
	if o.Palette != nil {
		opts.Colors = o.Palette.Colors()
		opts.Assignments = o.Palette.Assignments()
	}
	return opts
}
