package observability

import (
	"context"
	"testing"
	"time"
)

type recordingLayoutHooks struct {
	NoopLayoutHooks
	starts    int
	completes int
}

func (h *recordingLayoutHooks) OnLayoutStart(ctx context.Context, n int, filter string) {
	h.starts++
}

func (h *recordingLayoutHooks) OnLayoutComplete(ctx context.Context, groups int, d time.Duration, err error) {
	h.completes++
}

type recordingCacheHooks struct {
	NoopCacheHooks
	hits, misses int
}

func (h *recordingCacheHooks) OnCacheHit(ctx context.Context, keyType string)  { h.hits++ }
func (h *recordingCacheHooks) OnCacheMiss(ctx context.Context, keyType string) { h.misses++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()

	// No panics, no effects.
	ctx := context.Background()
	Layout().OnLayoutStart(ctx, 3, "Cats")
	Layout().OnLayoutComplete(ctx, 2, time.Second, nil)
	Cache().OnCacheHit(ctx, "layout")
	Store().OnSave(ctx, "b1", 3, nil)
}

func TestSetLayoutHooks(t *testing.T) {
	t.Cleanup(Reset)

	h := &recordingLayoutHooks{}
	SetLayoutHooks(h)

	ctx := context.Background()
	Layout().OnLayoutStart(ctx, 1, "")
	Layout().OnLayoutComplete(ctx, 1, time.Millisecond, nil)

	if h.starts != 1 || h.completes != 1 {
		t.Errorf("hooks not invoked: starts=%d completes=%d", h.starts, h.completes)
	}
}

func TestSetCacheHooks(t *testing.T) {
	t.Cleanup(Reset)

	h := &recordingCacheHooks{}
	SetCacheHooks(h)

	ctx := context.Background()
	Cache().OnCacheHit(ctx, "layout")
	Cache().OnCacheMiss(ctx, "layout")
	Cache().OnCacheMiss(ctx, "layout")

	if h.hits != 1 || h.misses != 2 {
		t.Errorf("hooks not invoked: hits=%d misses=%d", h.hits, h.misses)
	}
}

func TestSetNilHooksIgnored(t *testing.T) {
	t.Cleanup(Reset)

	SetLayoutHooks(nil)
	SetCacheHooks(nil)
	SetStoreHooks(nil)

	// Registry keeps the no-op defaults.
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("nil registration should keep no-op layout hooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("nil registration should keep no-op cache hooks")
	}
}
