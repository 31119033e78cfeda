package places

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestPlace_KeepsUnnamedFields(t *testing.T) {
	raw, err := bson.Marshal(bson.D{
		{Key: "Phase Name", Value: "Ziro"},
		{Key: "Location", Value: "Arunachal Pradesh"},
		{Key: "State", Value: "AP"},
		{Key: "best_months", Value: bson.A{"March", "September"}},
	})
	require.NoError(t, err)

	var p Place
	require.NoError(t, bson.Unmarshal(raw, &p))
	assert.Equal(t, "Ziro", p.Name)
	assert.Equal(t, "AP", p.Extra["State"])
	assert.NotContains(t, p.Extra, "Phase Name")

	p.ImageURL = PlaceholderImage
	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"Phase Name": "Ziro",
		"Location": "Arunachal Pradesh",
		"ai_details": "",
		"image_url": "https://via.placeholder.com/400x300?text=No+Image",
		"State": "AP",
		"best_months": ["March", "September"]
	}`, string(out))
}

func TestPlace_NamedFieldsWinOverExtra(t *testing.T) {
	p := Place{Name: "Ziro", Extra: map[string]any{"Phase Name": "stale"}}
	out, err := json.Marshal(p)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "Ziro", got["Phase Name"])
}
