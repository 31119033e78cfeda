package questionnaire

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirinfathima/voyabot/internal/infra/mongotest"
)

func TestStore_UpsertOverwritesAnswers(t *testing.T) {
	s := NewStore(mongotest.Database(t))
	ctx := context.Background()

	require.NoError(t, s.UpsertResponses(ctx, "asha", Answers{"budget": "low", "style": "slow"}))
	require.NoError(t, s.UpsertResponses(ctx, "asha", Answers{"budget": "high"}))

	got, err := s.Responses(ctx, "asha")
	require.NoError(t, err)
	assert.Equal(t, Answers{"budget": "high"}, got)

	none, err := s.Responses(ctx, "ravi")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestStore_QuestionsHideIDs(t *testing.T) {
	db := mongotest.Database(t)
	ctx := context.Background()
	_, err := db.Collection(QuestionsCollection).InsertOne(ctx, map[string]any{"key": "budget", "question": "Budget?"})
	require.NoError(t, err)

	qs, err := NewStore(db).Questions(ctx)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.NotContains(t, qs[0], "_id")
	assert.Equal(t, "budget", qs[0]["key"])
}
