package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User carries its favorites and received recommendations as sets of
// property references. Both are mutated only through the dedicated
// store operations, never by whole-field writes.
type User struct {
	ID                      primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Email                   string               `bson:"email" json:"email"`
	Password                string               `bson:"password" json:"password,omitempty"`
	Favorites               []primitive.ObjectID `bson:"favorites" json:"favorites"`
	RecommendationsReceived []primitive.ObjectID `bson:"recommendationsReceived" json:"recommendationsReceived"`
	CreatedAt               time.Time            `bson:"createdAt" json:"createdAt"`
}
