package controllers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContextKey string

// UserIDKey carries the authenticated user's ObjectID hex, set by the
// auth middleware.
const UserIDKey = ContextKey("userID")

func userIDFromContext(r *http.Request) (primitive.ObjectID, bool) {
	hex, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
