// Package store holds the MongoDB adapters for properties and users.
// Handlers depend on the interfaces so they can be exercised against
// in-memory fakes.
package store

import (
	"context"

	"github.com/propview/property_listing_backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PropertyStore is the document-collection view the handlers and the
// CSV importer work against. Search results are ordered most recently
// created first.
type PropertyStore interface {
	Search(ctx context.Context, filter bson.M) ([]models.Property, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Property, error)
	Insert(ctx context.Context, property *models.Property) error
	InsertMany(ctx context.Context, properties []models.Property) (int, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// NextID returns the next sequential PROP<n> code. Assignment is
	// atomic, so concurrent creates receive distinct codes.
	NextID(ctx context.Context) (string, error)
}

// UserStore mutates the set-valued user fields with atomic updates;
// the boolean results report whether the set actually changed, which
// is how duplicate adds and absent removes are detected.
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	AddFavorite(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error)
	RemoveFavorite(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error)
	AddRecommendation(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error)
	RemoveRecommendation(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error)
}
