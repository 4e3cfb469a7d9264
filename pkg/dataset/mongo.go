package dataset

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dsai-cliques/cliques/pkg/errors"
)

// Default MongoDB collection names.
const (
	DefaultPeopleCollection        = "people"
	DefaultRelationshipsCollection = "relationships"
)

// MongoSource loads a dataset from two MongoDB collections. Documents use the
// same field names as the JSON format. Documents are read in _id order, which
// for generated ObjectIDs is insertion order.
type MongoSource struct {
	URI                     string
	Database                string
	PeopleCollection        string
	RelationshipsCollection string
	// Timeout bounds connect plus both reads. Zero means 10s.
	Timeout time.Duration
}

// NewMongoSource creates a source with the default collection names.
func NewMongoSource(uri, database string) *MongoSource {
	return &MongoSource{
		URI:                     uri,
		Database:                database,
		PeopleCollection:        DefaultPeopleCollection,
		RelationshipsCollection: DefaultRelationshipsCollection,
	}
}

// Load connects, reads both collections and validates the result.
func (s *MongoSource) Load(ctx context.Context) (*Dataset, error) {
	if s.URI == "" || s.Database == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo source needs a uri and a database")
	}
	timeout := s.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "connect to mongo")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(s.Database)
	var rec record
	if err := findAll(ctx, db.Collection(s.collection(s.PeopleCollection, DefaultPeopleCollection)), &rec.People); err != nil {
		return nil, fmt.Errorf("load people: %w", err)
	}
	if err := findAll(ctx, db.Collection(s.collection(s.RelationshipsCollection, DefaultRelationshipsCollection)), &rec.Relationships); err != nil {
		return nil, fmt.Errorf("load relationships: %w", err)
	}
	return fromRecord(rec)
}

func (s *MongoSource) String() string {
	return "mongo:" + s.Database
}

func (s *MongoSource) collection(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, out *[]T) error {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, err, "query %s", coll.Name())
	}
	if err := cur.All(ctx, out); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode %s", coll.Name())
	}
	return nil
}
