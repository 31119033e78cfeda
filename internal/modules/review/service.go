// README: Review service: submit, list, like/dislike and reply management.
package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	ErrEmptyReview      = errors.New("review cannot be empty")
	ErrMissingID        = errors.New("review id is required")
	ErrInvalidID        = errors.New("invalid review id format")
	ErrInvalidAction    = errors.New("invalid action, must be 'like' or 'dislike'")
	ErrEmptyReply       = errors.New("reply text cannot be empty")
	ErrNotFound         = errors.New("review not found")
	ErrReviewNotUpdated = errors.New("review not found or not updated")
	ErrReplyNotDeleted  = errors.New("reply not found or not deleted")
)

// ReviewStore is the persistence the service needs; *Store satisfies it.
type ReviewStore interface {
	List(ctx context.Context) ([]Review, error)
	Insert(ctx context.Context, r *Review) error
	Increment(ctx context.Context, id primitive.ObjectID, field string) (*Review, error)
	PushReply(ctx context.Context, id primitive.ObjectID, reply Reply) (bool, error)
	DeleteReply(ctx context.Context, id primitive.ObjectID, index int) (bool, error)
}

type Service struct {
	store ReviewStore
	now   func() time.Time
	log   *zap.Logger
}

func NewService(store ReviewStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, now: time.Now, log: log}
}

func (s *Service) List(ctx context.Context) ([]Review, error) {
	return s.store.List(ctx)
}

func (s *Service) Submit(ctx context.Context, username, text string) (*Review, error) {
	if text == "" {
		return nil, ErrEmptyReview
	}
	r := &Review{
		Username:   username,
		ReviewText: text,
		Timestamp:  s.now().UTC(),
		Replies:    []Reply{},
	}
	if err := s.store.Insert(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// React applies a like or dislike and returns the review with its new counts.
func (s *Service) React(ctx context.Context, reviewID string, action Action) (*Review, error) {
	if reviewID == "" {
		return nil, ErrMissingID
	}
	field, ok := action.counter()
	if !ok {
		return nil, ErrInvalidAction
	}
	id, err := parseID(reviewID)
	if err != nil {
		return nil, err
	}
	return s.store.Increment(ctx, id, field)
}

// Reply appends a reply stamped with the current UTC time.
func (s *Service) Reply(ctx context.Context, username, reviewID, text string) (*Reply, error) {
	if reviewID == "" {
		return nil, ErrMissingID
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyReply
	}
	id, err := parseID(reviewID)
	if err != nil {
		return nil, err
	}
	reply := Reply{
		Username:  username,
		ReplyText: text,
		Timestamp: s.now().UTC().Format(ReplyTimeLayout),
	}
	ok, err := s.store.PushReply(ctx, id, reply)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrReviewNotUpdated
	}
	return &reply, nil
}

func (s *Service) DeleteReply(ctx context.Context, reviewID string, index int) error {
	if reviewID == "" {
		return ErrMissingID
	}
	id, err := parseID(reviewID)
	if err != nil {
		return err
	}
	if index < 0 {
		return ErrReplyNotDeleted
	}
	ok, err := s.store.DeleteReply(ctx, id, index)
	if err != nil {
		return err
	}
	if !ok {
		return ErrReplyNotDeleted
	}
	s.log.Info("reply deleted", zap.String("review_id", reviewID), zap.Int("index", index))
	return nil
}

func parseID(v string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(v)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}
