// README: User account documents.
package account

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
	// Password is the bcrypt hash, never the plain text.
	Password string `bson:"password"`
}
