package board

import (
	stderrors "errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/corkboard-io/corkboard/pkg/errors"
)

func TestObjectValidate(t *testing.T) {
	tests := []struct {
		name     string
		obj      Object
		wantCode errors.Code
	}{
		{"valid rectangle", Object{ID: "a", Kind: KindRectangle}, ""},
		{"valid default kind", Object{ID: "a", Left: 5, Top: 5}, ""},
		{"valid circle", Object{ID: "c", Kind: KindCircle, Radius: 25}, ""},
		{"empty id", Object{}, errors.ErrCodeInvalidObject},
		{"unknown kind", Object{ID: "a", Kind: "blob"}, errors.ErrCodeInvalidObject},
		{"nan left", Object{ID: "a", Left: math.NaN()}, errors.ErrCodeInvalidGeometry},
		{"infinite top", Object{ID: "a", Top: math.Inf(1)}, errors.ErrCodeInvalidGeometry},
		{"negative width", Object{ID: "a", Width: -10}, errors.ErrCodeInvalidGeometry},
		{"negative scale", Object{ID: "a", ScaleX: -1}, errors.ErrCodeInvalidGeometry},
		{"nan scale", Object{ID: "a", ScaleY: math.NaN()}, errors.ErrCodeInvalidGeometry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.obj.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Validate() = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestBoardValidateDuplicateIDs(t *testing.T) {
	b := Board{Objects: []Object{{ID: "x"}, {ID: "x"}}}
	if err := b.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Validate() = %v, want INVALID_INPUT", err)
	}
}

func TestBoardObject(t *testing.T) {
	b := Board{Objects: []Object{{ID: "a", Left: 1}, {ID: "b", Left: 2}}}

	o, ok := b.Object("b")
	if !ok || o.Left != 2 {
		t.Errorf("Object(b) = %+v, %v", o, ok)
	}
	if _, ok := b.Object("missing"); ok {
		t.Error("Object(missing) should not be found")
	}
}

func TestBoardRoundTrip(t *testing.T) {
	b := Board{
		ID:   "board-1",
		Name: "test",
		Objects: []Object{
			{ID: "a", Kind: KindCircle, Label: "Cats", Left: 10, Top: 20, Radius: 30},
			{ID: "b", Left: 50, Top: 60, Width: 200, ScaleX: 2},
		},
		Labels: []string{"Cats", "Dogs"},
	}

	path := filepath.Join(t.TempDir(), "board.json")
	if err := WriteBoardFile(b, path); err != nil {
		t.Fatalf("WriteBoardFile: %v", err)
	}

	got, err := ReadBoardFile(path)
	if err != nil {
		t.Fatalf("ReadBoardFile: %v", err)
	}

	if got.ID != b.ID || got.Name != b.Name {
		t.Errorf("round trip identity mismatch: %+v", got)
	}
	if len(got.Objects) != 2 || len(got.Labels) != 2 {
		t.Fatalf("round trip lost members: %+v", got)
	}
	if got.Objects[0].Label != "Cats" || got.Objects[0].Radius != 30 {
		t.Errorf("round trip object mismatch: %+v", got.Objects[0])
	}
	// Absent scale survives as zero (meaning default 1.0).
	if got.Objects[0].ScaleX != 0 {
		t.Errorf("absent scale should stay zero, got %v", got.Objects[0].ScaleX)
	}
}

func TestUnmarshalBoardRejectsInvalid(t *testing.T) {
	if _, err := UnmarshalBoard([]byte("{not json")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("malformed JSON: got %v, want INVALID_FORMAT", err)
	}

	// Valid JSON but invalid geometry must be rejected by validation.
	data := []byte(`{"objects":[{"id":"a","scale_x":-2}]}`)
	if _, err := UnmarshalBoard(data); !errors.Is(err, errors.ErrCodeInvalidGeometry) {
		t.Errorf("invalid geometry: got %v, want INVALID_GEOMETRY", err)
	}
}

func TestReadBoardFileMissing(t *testing.T) {
	_, err := ReadBoardFile(filepath.Join(t.TempDir(), "nope.json"))
	if !stderrors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
