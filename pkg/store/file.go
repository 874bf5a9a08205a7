package store

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/corkboard-io/corkboard/pkg/board"
	"github.com/corkboard-io/corkboard/pkg/errors"
	"github.com/corkboard-io/corkboard/pkg/observability"
)

// FileStore persists boards as JSON files in a directory, one file per
// board named <id>.json.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Get retrieves a board by ID.
func (s *FileStore) Get(ctx context.Context, id string) (board.Board, error) {
	if err := errors.ValidateBoardID(id); err != nil {
		return board.Board{}, err
	}

	b, err := board.ReadBoardFile(s.path(id))
	if stderrors.Is(err, os.ErrNotExist) {
		observability.Store().OnLoad(ctx, id, ErrNotFound)
		return board.Board{}, ErrNotFound
	}
	observability.Store().OnLoad(ctx, id, err)
	if err != nil {
		return board.Board{}, err
	}
	return b, nil
}

// Put stores a board.
func (s *FileStore) Put(ctx context.Context, b board.Board) error {
	if err := errors.ValidateBoardID(b.ID); err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}

	err := board.WriteBoardFile(b, s.path(b.ID))
	observability.Store().OnSave(ctx, b.ID, len(b.Objects), err)
	return err
}

// Delete removes a board.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateBoardID(id); err != nil {
		return err
	}

	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// List returns all stored board IDs in sorted order.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// Close does nothing for the file store.
func (s *FileStore) Close(ctx context.Context) error {
	return nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
