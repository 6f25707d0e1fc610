package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoOpTimeout = 5 * time.Second

type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	if uri == "" {
		return nil, errors.New("mongo store: empty uri")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

func (s *MongoStore) Save(ctx context.Context, rec *Record) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := s.collection.ReplaceOne(ctx, bson.D{{Key: "_id", Value: rec.ID}}, rec, opts)
	if err != nil {
		return fmt.Errorf("mongo save %s: %w", rec.ID, err)
	}
	return nil
}

func (s *MongoStore) Load(ctx context.Context, id string) (*Record, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	var rec Record
	err := s.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo load %s: %w", id, err)
	}
	return &rec, nil
}

func (s *MongoStore) List(ctx context.Context, f Filter) ([]Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	filter := bson.D{}
	if f.Username != "" {
		filter = append(filter, bson.E{Key: "username", Value: f.Username})
	}
	if f.PublicOnly {
		filter = append(filter, bson.E{Key: "visibility", Value: Public})
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo list: %w", err)
	}
	var recs []Record
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("mongo list: %w", err)
	}
	out := make([]Summary, len(recs))
	for i := range recs {
		out[i] = recs[i].Summary()
	}
	return out, nil
}

func (s *MongoStore) SetVisibility(ctx context.Context, id string, v Visibility) error {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	update := bson.D{{Key: "$set", Value: bson.D{{Key: "visibility", Value: v}}}}
	res, err := s.collection.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return fmt.Errorf("mongo set visibility %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}
