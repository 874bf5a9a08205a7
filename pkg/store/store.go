// Package store provides board persistence for the host application.
//
// The layout engine itself never stores geometry - persistence of boards
// (object sets plus label catalogues) is host-side responsibility, and this
// package is that host layer, with implementations for different backends:
//   - file: JSON files in a directory, for CLI usage
//   - mongo: MongoDB collection, for server deployments
package store

import (
	"context"
	"errors"

	"github.com/corkboard-io/corkboard/pkg/board"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a board does not exist.
	ErrNotFound = errors.New("board not found")
)

// Store is the interface for board persistence backends.
type Store interface {
	// Get retrieves a board by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (board.Board, error)

	// Put stores a board, replacing any existing board with the same ID.
	Put(ctx context.Context, b board.Board) error

	// Delete removes a board. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// List returns all stored board IDs.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
