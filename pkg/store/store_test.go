package store

import (
	"context"
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/corkboard-io/corkboard/pkg/board"
	"github.com/corkboard-io/corkboard/pkg/errors"
)

func testBoard(id string) board.Board {
	return board.Board{
		ID:   id,
		Name: "test",
		Objects: []board.Object{
			{ID: "a", Label: "Cats", Left: 1, Top: 2},
			{ID: "b", Kind: board.KindCircle, Radius: 10},
		},
		Labels: []string{"Cats"},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close(ctx)

	b := testBoard("b1")
	if err := s.Put(ctx, b); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "b1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(got, b) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, b)
	}
}

func TestFileStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())

	if _, err := s.Get(ctx, "missing"); !stderrors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "missing"); !stderrors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) = %v, want ErrNotFound", err)
	}
}

func TestFileStoreList(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())

	for _, id := range []string{"zeta", "alpha"} {
		if err := s.Put(ctx, testBoard(id)); err != nil {
			t.Fatalf("Put(%s): %v", id, err)
		}
	}

	ids, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"alpha", "zeta"}) {
		t.Errorf("List = %v", ids)
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())

	if err := s.Put(ctx, testBoard("b1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete(ctx, "b1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "b1"); !stderrors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
}

func TestFileStoreRejectsBadIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())

	// Path traversal must never reach the filesystem.
	if _, err := s.Get(ctx, "../escape"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Get(../escape) = %v, want INVALID_INPUT", err)
	}
	if err := s.Put(ctx, board.Board{ID: "a/b"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Put(a/b) = %v, want INVALID_INPUT", err)
	}
}

func TestFileStoreRejectsInvalidBoard(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())

	bad := board.Board{ID: "b1", Objects: []board.Object{{ID: "x", ScaleX: -1}}}
	if err := s.Put(ctx, bad); !errors.Is(err, errors.ErrCodeInvalidGeometry) {
		t.Errorf("Put(invalid) = %v, want INVALID_GEOMETRY", err)
	}
}
