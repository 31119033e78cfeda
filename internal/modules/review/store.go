// README: Review store backed by the reviews collection.
package review

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "reviews"

var _ ReviewStore = (*Store)(nil)

type Store struct {
	coll *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{coll: db.Collection(Collection)}
}

// List returns every review, newest first.
func (s *Store) List(ctx context.Context) ([]Review, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, err
	}
	out := []Review{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Insert(ctx context.Context, r *Review) error {
	res, err := s.coll.InsertOne(ctx, r)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		r.ID = id
	}
	return nil
}

// Increment atomically adds one to field and returns the updated review.
func (s *Store) Increment(ctx context.Context, id primitive.ObjectID, field string) (*Review, error) {
	var out Review
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{field: 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// PushReply appends reply and reports whether a review was modified.
func (s *Store) PushReply(ctx context.Context, id primitive.ObjectID, reply Reply) (bool, error) {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"replies": reply}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// DeleteReply removes the reply at index in two steps: the element is unset,
// leaving a null placeholder, then nulls are pulled. The two updates are not
// atomic, so a concurrent reader can see the placeholder. The result reports
// whether the unset step modified the review.
func (s *Store) DeleteReply(ctx context.Context, id primitive.ObjectID, index int) (bool, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$unset": bson.M{fmt.Sprintf("replies.%d", index): 1}},
	)
	if err != nil {
		return false, err
	}
	if _, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{"replies": nil}},
	); err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}
