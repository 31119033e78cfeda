// README: Community reviews with like/dislike counters and ordered replies.
package review

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReplyTimeLayout renders reply timestamps in HTTP date form.
const ReplyTimeLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username   string             `bson:"username" json:"username"`
	ReviewText string             `bson:"review_text" json:"review_text"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
	Likes      int                `bson:"likes" json:"likes"`
	Dislikes   int                `bson:"dislikes" json:"dislikes"`
	Replies    []Reply            `bson:"replies" json:"replies"`
}

type Reply struct {
	Username  string `bson:"username" json:"username"`
	ReplyText string `bson:"reply_text" json:"reply_text"`
	Timestamp string `bson:"timestamp" json:"timestamp"`
}

type Action string

const (
	ActionLike    Action = "like"
	ActionDislike Action = "dislike"
)

// counter is the document field an action increments.
func (a Action) counter() (string, bool) {
	switch a {
	case ActionLike:
		return "likes", true
	case ActionDislike:
		return "dislikes", true
	}
	return "", false
}
