package store

import (
	"context"
	"time"

	"github.com/propview/property_listing_backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoUserStore struct {
	users *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{users: db.Collection("users")}
}

func (s *MongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.Favorites == nil {
		user.Favorites = []primitive.ObjectID{}
	}
	if user.RecommendationsReceived == nil {
		user.RecommendationsReceived = []primitive.ObjectID{}
	}
	_, err := s.users.InsertOne(ctx, user)
	return err
}

func (s *MongoUserStore) AddFavorite(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error) {
	return s.addToSet(ctx, userID, "favorites", propertyID)
}

func (s *MongoUserStore) RemoveFavorite(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error) {
	return s.pull(ctx, userID, "favorites", propertyID)
}

func (s *MongoUserStore) AddRecommendation(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error) {
	return s.addToSet(ctx, userID, "recommendationsReceived", propertyID)
}

func (s *MongoUserStore) RemoveRecommendation(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error) {
	return s.pull(ctx, userID, "recommendationsReceived", propertyID)
}

// addToSet appends atomically; duplicates leave the document unmodified,
// which is reported as false.
func (s *MongoUserStore) addToSet(ctx context.Context, userID primitive.ObjectID, field string, propertyID primitive.ObjectID) (bool, error) {
	res, err := s.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{field: propertyID}},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, mongo.ErrNoDocuments
	}
	return res.ModifiedCount > 0, nil
}

func (s *MongoUserStore) pull(ctx context.Context, userID primitive.ObjectID, field string, propertyID primitive.ObjectID) (bool, error) {
	res, err := s.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{field: propertyID}},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, mongo.ErrNoDocuments
	}
	return res.ModifiedCount > 0, nil
}
