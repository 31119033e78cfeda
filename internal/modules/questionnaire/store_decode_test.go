package questionnaire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestDecodeQuestion_NestedDocumentsRenderAsObjects(t *testing.T) {
	raw, err := bson.Marshal(bson.D{
		{Key: "key", Value: "budget"},
		{Key: "labels", Value: bson.D{{Key: "low", Value: "Under 10k"}}},
		{Key: "options", Value: bson.A{bson.D{{Key: "value", Value: "low"}}}},
	})
	require.NoError(t, err)

	q, err := decodeQuestion(raw)
	require.NoError(t, err)

	out, err := json.Marshal(q)
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"budget","labels":{"low":"Under 10k"},"options":[{"value":"low"}]}`, string(out))
}
