package store

import (
	"context"
	stderrors "errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/corkboard-io/corkboard/pkg/board"
	"github.com/corkboard-io/corkboard/pkg/errors"
	"github.com/corkboard-io/corkboard/pkg/observability"
)

// MongoConfig configures the Mongo store backend.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// MongoStore persists boards in a MongoDB collection, one document per
// board keyed by its ID. Board types carry bson tags for this purpose.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
// Database defaults to "corkboard", Collection to "boards".
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "corkboard"
	}
	if cfg.Collection == "" {
		cfg.Collection = "boards"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Get retrieves a board by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (board.Board, error) {
	if err := errors.ValidateBoardID(id); err != nil {
		return board.Board{}, err
	}

	var b board.Board
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		observability.Store().OnLoad(ctx, id, ErrNotFound)
		return board.Board{}, ErrNotFound
	}
	observability.Store().OnLoad(ctx, id, err)
	if err != nil {
		return board.Board{}, err
	}
	return b, nil
}

// Put stores a board, upserting on its ID.
func (s *MongoStore) Put(ctx context.Context, b board.Board) error {
	if err := errors.ValidateBoardID(b.ID); err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": b.ID}, b, options.Replace().SetUpsert(true))
	observability.Store().OnSave(ctx, b.ID, len(b.Objects), err)
	return err
}

// Delete removes a board.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateBoardID(id); err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all stored board IDs.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cur.Err()
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
