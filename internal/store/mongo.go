package store

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"seriestracker/internal/model"
)

const (
	Name             = "series_tracker_db"
	CollectionStates = "tracker_states"
)

// MongoStore keeps the tracker document as a single document in one
// collection, keyed by StateKey. The document body stays a JSON string so
// the stored format is byte-identical to the other backends.
type MongoStore struct {
	*mongo.Database
}

type stateDocument struct {
	ID    string `bson:"_id"`
	State string `bson:"state"`
}

func ConnectDB(ctx context.Context, dbURI string) (*mongo.Client, error) {
	c, err := mongo.Connect(ctx, options.Client().ApplyURI(dbURI))
	if err != nil {
		return nil, err
	}
	if err := c.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return c, nil
}

func NewMongoStore(c *mongo.Client) *MongoStore {
	return &MongoStore{Database: c.Database(Name)}
}

func (ms *MongoStore) GetState(ctx context.Context) (model.TrackerState, error) {
	var doc stateDocument
	err := ms.Collection(CollectionStates).FindOne(ctx, bson.M{"_id": StateKey}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.EmptyState(), nil
		}
		return model.EmptyState(), errors.Wrapf(err, "error finding state document with ID: %s", StateKey)
	}
	return decodeState([]byte(doc.State)), nil
}

func (ms *MongoStore) SetState(ctx context.Context, state model.TrackerState) error {
	raw, err := encodeState(state)
	if err != nil {
		return errors.Wrap(err, "error marshalling TrackerState")
	}
	_, err = ms.Collection(CollectionStates).ReplaceOne(
		ctx,
		bson.M{"_id": StateKey},
		stateDocument{ID: StateKey, State: string(raw)},
		options.Replace().SetUpsert(true),
	)
	return errors.Wrapf(err, "error replacing state document with ID: %s", StateKey)
}
