// README: Underrated place documents as stored by the curation team.
package places

import "encoding/json"

// PlaceholderImage is served for places without an image.
const PlaceholderImage = "https://via.placeholder.com/400x300?text=No+Image"

// Place names the fields the service reads; every other stored field is kept
// in Extra and served back unchanged.
type Place struct {
	Name      string         `bson:"Phase Name" json:"Phase Name"`
	Location  string         `bson:"Location" json:"Location"`
	AIDetails string         `bson:"ai_details,omitempty" json:"ai_details"`
	ImageURL  string         `bson:"image_url,omitempty" json:"image_url"`
	Extra     map[string]any `bson:",inline" json:"-"`
}

// MarshalJSON flattens Extra next to the named fields; the named fields win.
func (p Place) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Extra)+4)
	for k, v := range p.Extra {
		out[k] = v
	}
	out["Phase Name"] = p.Name
	out["Location"] = p.Location
	out["ai_details"] = p.AIDetails
	out["image_url"] = p.ImageURL
	return json.Marshal(out)
}
