package student

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("student not found")
	// ErrDuplicate is returned when an insert violates the email or
	// user_id unique index.
	ErrDuplicate = errors.New("email or user id already exists")
)

const collectionName = "students"

// Store wraps the students collection.
type Store struct {
	coll *mongo.Collection
}

// NewStore creates a store over the given database.
func NewStore(db *mongo.Database) *Store {
	return &Store{coll: db.Collection(collectionName)}
}

// EnsureIndexes creates the unique indexes on email and user_id. It is
// idempotent and must run before the store accepts inserts.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("creating student indexes: %w", err)
	}
	return nil
}

// Insert adds a new record and returns its generated id as hex. A
// unique-index violation is reported as ErrDuplicate.
func (s *Store) Insert(ctx context.Context, st Student) (string, error) {
	res, err := s.coll.InsertOne(ctx, st)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicate
		}
		return "", err
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id.Hex(), nil
}

// FindByUserID returns the record for a user id, or ErrNotFound.
func (s *Store) FindByUserID(ctx context.Context, userID string) (*Student, error) {
	var st Student
	err := s.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&st)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Exists reports whether any record already uses the email or the user
// id. This is a best-effort pre-check for a friendly form error; the
// unique indexes remain the real guard against a racing insert.
func (s *Store) Exists(ctx context.Context, email, userID string) (bool, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"user_id": userID},
	}}
	n, err := s.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkLoggedIn records that the user has reached the dashboard at least
// once.
func (s *Store) MarkLoggedIn(ctx context.Context, userID string) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"has_logged_in_before": true}},
	)
	return err
}
