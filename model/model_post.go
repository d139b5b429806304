package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Post is a single user-authored post as stored in the posts collection.
// The document _id doubles as the public postId (hex form).
type Post struct {
	ID        bson.ObjectID `json:"postId"    bson:"_id,omitempty"`
	Username  string        `json:"username"  bson:"username"`
	Content   string        `json:"content"   bson:"content"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updated_at"`
}
