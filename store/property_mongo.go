package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/propview/property_listing_backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Property codes start at PROP1000, like the original dataset.
const firstPropertyCode = 1000

const propertyCounterKey = "propertyId"

type MongoPropertyStore struct {
	properties *mongo.Collection
	counters   *mongo.Collection
}

func NewMongoPropertyStore(db *mongo.Database) *MongoPropertyStore {
	return &MongoPropertyStore{
		properties: db.Collection("properties"),
		counters:   db.Collection("counters"),
	}
}

func (s *MongoPropertyStore) Search(ctx context.Context, filter bson.M) ([]models.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.properties.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("finding properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("decoding properties: %w", err)
	}
	return properties, nil
}

func (s *MongoPropertyStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	var property models.Property
	if err := s.properties.FindOne(ctx, bson.M{"_id": id}).Decode(&property); err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *MongoPropertyStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Property, error) {
	if len(ids) == 0 {
		return []models.Property{}, nil
	}
	return s.Search(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (s *MongoPropertyStore) Insert(ctx context.Context, property *models.Property) error {
	if property.ID.IsZero() {
		property.ID = primitive.NewObjectID()
	}
	_, err := s.properties.InsertOne(ctx, property)
	return err
}

func (s *MongoPropertyStore) InsertMany(ctx context.Context, properties []models.Property) (int, error) {
	if len(properties) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(properties))
	for i := range properties {
		if properties[i].ID.IsZero() {
			properties[i].ID = primitive.NewObjectID()
		}
		docs = append(docs, properties[i])
	}
	res, err := s.properties.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("bulk insert: %w", err)
	}
	return len(res.InsertedIDs), nil
}

func (s *MongoPropertyStore) Update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	res, err := s.properties.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *MongoPropertyStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.properties.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// NextID bumps the property counter and formats the resulting code.
func (s *MongoPropertyStore) NextID(ctx context.Context) (string, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	res := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": propertyCounterKey},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	)

	var counter struct {
		Seq int `bson:"seq"`
	}
	if err := res.Decode(&counter); err != nil {
		return "", fmt.Errorf("incrementing property counter: %w", err)
	}
	return formatPropertyCode(counter.Seq), nil
}

// SeedCounter raises the counter to the highest code already present in
// the collection (or just below the first code on an empty one), so
// that sequential assignment survives restarts and pre-existing data.
// Called once at startup, before the server accepts requests.
func (s *MongoPropertyStore) SeedCounter(ctx context.Context) error {
	floor := firstPropertyCode - 1

	opts := options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}})
	var last models.Property
	err := s.properties.FindOne(ctx, bson.M{"id": bson.M{"$exists": true, "$ne": ""}}, opts).Decode(&last)
	if err != nil && err != mongo.ErrNoDocuments {
		return fmt.Errorf("looking up last property code: %w", err)
	}
	if err == nil {
		if n, ok := propertyCodeNumber(last.PropID); ok && n > floor {
			floor = n
		}
	}
	return s.setCounterFloor(ctx, floor)
}

func (s *MongoPropertyStore) setCounterFloor(ctx context.Context, floor int) error {
	opts := options.Update().SetUpsert(true)
	_, err := s.counters.UpdateOne(ctx,
		bson.M{"_id": propertyCounterKey},
		bson.M{"$max": bson.M{"seq": floor}},
		opts,
	)
	if err != nil {
		return fmt.Errorf("seeding property counter: %w", err)
	}
	return nil
}

func formatPropertyCode(n int) string {
	return fmt.Sprintf("PROP%d", n)
}

// propertyCodeNumber extracts the numeric part of a PROP<n> code.
func propertyCodeNumber(code string) (int, bool) {
	rest, found := strings.CutPrefix(code, "PROP")
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}
