package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/corkboard-io/corkboard/pkg/board"
	"github.com/corkboard-io/corkboard/pkg/cache"
	"github.com/corkboard-io/corkboard/pkg/layout"
	"github.com/corkboard-io/corkboard/pkg/observability"
	"github.com/corkboard-io/corkboard/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, b board.Board, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	// Stage 1: Load (validate the board input)
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	result.Stats.ObjectCount = len(b.Objects)

	// Compute board hash for cache keys and API responses
	if boardData, err := board.MarshalBoard(b); err == nil {
		result.BoardHash = cache.Hash(boardData)
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	plan, layoutHit, err := r.ComputePlanWithCacheInfo(ctx, b, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Plan = plan
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.GroupCount = len(plan.Groups)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"objects", len(b.Objects),
		"groups", len(plan.Groups),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, b, plan, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputePlanWithCacheInfo computes a layout plan with caching and returns
// cache hit info.
func (r *Runner) ComputePlanWithCacheInfo(ctx context.Context, b board.Board, opts Options) (layout.Plan, bool, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	start := time.Now()
	observability.Layout().OnLayoutStart(ctx, len(b.Objects), opts.Filter)

	// Compute cache key from board content
	boardData, _ := board.MarshalBoard(b)
	boardHash := cache.Hash(boardData)
	cacheKey := r.Keyer.LayoutKey(boardHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := layout.UnmarshalPlan(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, cacheKey)
				observability.Layout().OnLayoutComplete(ctx, len(cached.Groups), time.Since(start), nil)
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}
	observability.Cache().OnCacheMiss(ctx, cacheKey)

	// Compute
	engine := layout.New(layout.WithSettings(*opts.Settings))
	plan, err := engine.Plan(b.Objects, opts.Filter)
	if err != nil {
		observability.Layout().OnLayoutComplete(ctx, 0, time.Since(start), err)
		return layout.Plan{}, false, err
	}

	// Cache the result
	if data, err := layout.MarshalPlan(plan); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, cacheKey, len(data))
		}
	}

	observability.Layout().OnLayoutComplete(ctx, len(plan.Groups), time.Since(start), nil)
	return plan, false, nil // Cache miss
}

// ComputePlan is a convenience wrapper that calls ComputePlanWithCacheInfo
// and discards the cache hit info.
func (r *Runner) ComputePlan(ctx context.Context, b board.Board, opts Options) (layout.Plan, error) {
	plan, _, err := r.ComputePlanWithCacheInfo(ctx, b, opts)
	return plan, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, b board.Board, plan layout.Plan, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Layout().OnRenderStart(ctx, opts.Formats)

	// Compute cache key from plan data
	planData, err := layout.MarshalPlan(plan)
	if err != nil {
		return nil, false, fmt.Errorf("serialize plan for cache key: %w", err)
	}
	planHash := cache.Hash(planData)

	// Keys are fixed before rendering: the SVG renderer assigns palette
	// colors as it draws, and those assignments feed the key.
	cacheKeys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		cacheKeys[format] = r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
	}

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		if data, hit, err := r.Cache.Get(ctx, cacheKeys[format]); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Layout().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil // All artifacts from cache
	}

	// Render all formats
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			rendered[format] = planData
		case FormatSVG:
			svgOpts := []render.SVGOption{render.WithPalette(opts.Palette)}
			if opts.ShowLabels {
				svgOpts = append(svgOpts, render.WithObjectLabels())
			}
			rendered[format] = render.SVG(b.Objects, plan, svgOpts...)
		}
	}

	// Cache each format
	for format, data := range rendered {
		_ = r.Cache.Set(ctx, cacheKeys[format], data, cache.TTLArtifact)
	}

	observability.Layout().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, b board.Board, plan layout.Plan, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, b, plan, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
