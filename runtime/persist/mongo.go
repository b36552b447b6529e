package persist

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionAPI abstracts the mongo.Collection methods this package needs,
// the same narrowing the teacher applies in internal/storage/mongodb.go so
// a fake can stand in for tests without a live server.
type CollectionAPI interface {
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	Find(context.Context, interface{}, ...*options.FindOptions) (CursorAPI, error)
}

// CursorAPI abstracts the mongo.Cursor methods used by Store.FindPlansByModel.
type CursorAPI interface {
	Close(context.Context) error
	Next(context.Context) bool
	Decode(interface{}) error
	Err() error
}

type realCollection struct{ c *mongo.Collection }

func (r realCollection) InsertOne(ctx context.Context, doc interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	return r.c.InsertOne(ctx, doc, opts...)
}

func (r realCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (CursorAPI, error) {
	cur, err := r.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	return realCursor{cur}, nil
}

type realCursor struct{ c *mongo.Cursor }

func (rc realCursor) Close(ctx context.Context) error { return rc.c.Close(ctx) }
func (rc realCursor) Next(ctx context.Context) bool    { return rc.c.Next(ctx) }
func (rc realCursor) Decode(v interface{}) error       { return rc.c.Decode(v) }
func (rc realCursor) Err() error                       { return rc.c.Err() }

// Store persists PlanRecords and StateRecords into two Mongo collections
// of the same database.
type Store struct {
	client *mongo.Client
	plans  CollectionAPI
	states CollectionAPI
}

// NewStore connects to mongoURI and opens dbName's "plans" and "states"
// collections.
func NewStore(ctx context.Context, mongoURI, dbName string) (*Store, error) {
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	if dbName == "" {
		dbName = "dataflow"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	db := client.Database(dbName)
	return &Store{
		client: client,
		plans:  realCollection{db.Collection("plans")},
		states: realCollection{db.Collection("states")},
	}, nil
}

// SavePlan inserts a checked plan's snapshot.
func (s *Store) SavePlan(ctx context.Context, rec PlanRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := s.plans.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert plan record: %w", err)
	}
	return nil
}

// SaveState inserts a terminal client state snapshot.
func (s *Store) SaveState(ctx context.Context, rec StateRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := s.states.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert state record: %w", err)
	}
	return nil
}

// FindPlansByModel returns up to limit saved plans for modelName (50 when
// limit <= 0), most recent first.
func (s *Store) FindPlansByModel(ctx context.Context, modelName string, limit int) ([]PlanRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	findOpts := options.Find().SetLimit(int64(limit)).SetSort(bson.D{{Key: "timestamp", Value: -1}})
	// PlanRecord carries no bson tags, so the driver stores ModelName under
	// its lowercased field name.
	cur, err := s.plans.Find(ctx, bson.M{"modelname": modelName}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("find plan records: %w", err)
	}
	defer cur.Close(ctx)

	var out []PlanRecord
	for cur.Next(ctx) {
		var rec PlanRecord
		if err := cur.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode plan record: %w", err)
		}
		out = append(out, rec)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return out, nil
}

// Close disconnects the underlying Mongo client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
