package course

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CollectionName is the MongoDB collection holding courses.
const CollectionName = "courses"

// DatabaseProvider resolves the database for a single operation, waiting
// for the connection if needed. *mongo.Supervisor from pkg/mongo implements it.
type DatabaseProvider interface {
	Database(ctx context.Context) (*mongo.Database, error)
}

// MongoStore is the MongoDB backed Store.
type MongoStore struct {
	db  DatabaseProvider
	now func() time.Time
}

// NewMongoStore returns a store that resolves its database through db on
// every call.
func NewMongoStore(db DatabaseProvider) *MongoStore {
	return &MongoStore{db: db, now: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }}
}

func (s *MongoStore) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := s.db.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(CollectionName), nil
}

// EnsureIndexes creates the indexes used for listing and slug lookups.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	coll, err := s.collection(ctx)
	if err != nil {
		return err
	}
	_, err = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "slug", Value: 1}}},
	})
	return err
}

// List returns every course, newest first.
func (s *MongoStore) List(ctx context.Context) ([]Course, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}

	courses := []Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (Course, error) {
	oid, err := ParseID(id)
	if err != nil {
		return Course{}, err
	}
	coll, err := s.collection(ctx)
	if err != nil {
		return Course{}, err
	}

	var c Course
	if err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&c); err != nil {
		return Course{}, notFound(err)
	}
	return c, nil
}

func (s *MongoStore) Create(ctx context.Context, in Input) (Course, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return Course{}, err
	}

	c := New(in, s.now())
	if _, err := coll.InsertOne(ctx, c); err != nil {
		return Course{}, err
	}
	return c, nil
}

// Update applies in as a partial $set and returns the updated document.
func (s *MongoStore) Update(ctx context.Context, id string, in Input) (Course, error) {
	oid, err := ParseID(id)
	if err != nil {
		return Course{}, err
	}
	coll, err := s.collection(ctx)
	if err != nil {
		return Course{}, err
	}

	var c Course
	err = coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: in.setDoc(s.now())}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		return Course{}, notFound(err)
	}
	return c, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	coll, err := s.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
