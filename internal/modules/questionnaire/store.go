// README: Questionnaire store backed by the questions and responses collections.
package questionnaire

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	QuestionsCollection = "questions"
	ResponsesCollection = "responses"
)

var _ AnswerStore = (*Store)(nil)

type Store struct {
	questions *mongo.Collection
	responses *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		questions: db.Collection(QuestionsCollection),
		responses: db.Collection(ResponsesCollection),
	}
}

func (s *Store) Questions(ctx context.Context) ([]Question, error) {
	cur, err := s.questions.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 0}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Question{}
	for cur.Next(ctx) {
		q, err := decodeQuestion(cur.Current)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, cur.Err()
}

// decodeQuestion keeps nested option documents as maps whatever the client settings.
func decodeQuestion(raw bson.Raw) (Question, error) {
	dec, err := bson.NewDecoder(bsonrw.NewBSONDocumentReader(raw))
	if err != nil {
		return nil, err
	}
	dec.DefaultDocumentM()
	var q Question
	if err := dec.Decode(&q); err != nil {
		return nil, err
	}
	return q, nil
}

// UpsertResponses replaces the user's stored answers wholesale.
func (s *Store) UpsertResponses(ctx context.Context, username string, answers Answers) error {
	_, err := s.responses.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"responses": answers}},
		options.Update().SetUpsert(true),
	)
	return err
}

// Responses returns the user's stored answers, or nil when none exist.
func (s *Store) Responses(ctx context.Context, username string) (Answers, error) {
	var r Response
	err := s.responses.FindOne(ctx, bson.M{"username": username}).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.Responses, nil
}
