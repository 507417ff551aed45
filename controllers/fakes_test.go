package controllers

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/propview/property_listing_backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakePropertyStore is an in-memory stand-in for the Mongo adapter. It
// mimics the error contract (mongo.ErrNoDocuments on missing ids) and
// applies a handful of $set keys so update handlers can be exercised.
type fakePropertyStore struct {
	byID       map[primitive.ObjectID]models.Property
	inserted   []models.Property
	lastFilter bson.M
	results    []models.Property
	nextSeq    int
	searchErr  error
}

func newFakePropertyStore() *fakePropertyStore {
	return &fakePropertyStore{
		byID:    map[primitive.ObjectID]models.Property{},
		nextSeq: 999,
	}
}

func (f *fakePropertyStore) add(p models.Property) models.Property {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.byID[p.ID] = p
	return p
}

func (f *fakePropertyStore) Search(_ context.Context, filter bson.M) ([]models.Property, error) {
	f.lastFilter = filter
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results, nil
}

func (f *fakePropertyStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Property, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &p, nil
}

func (f *fakePropertyStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Property, error) {
	out := []models.Property{}
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePropertyStore) Insert(_ context.Context, property *models.Property) error {
	*property = f.add(*property)
	f.inserted = append(f.inserted, *property)
	return nil
}

func (f *fakePropertyStore) InsertMany(_ context.Context, properties []models.Property) (int, error) {
	for _, p := range properties {
		f.inserted = append(f.inserted, f.add(p))
	}
	return len(properties), nil
}

func (f *fakePropertyStore) Update(_ context.Context, id primitive.ObjectID, set bson.M) error {
	p, ok := f.byID[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for key, value := range set {
		switch key {
		case "title":
			p.Title = value.(string)
		case "price":
			p.Price = value.(float64)
		case "city":
			p.City = value.(string)
		case "tags":
			p.Tags = value.([]string)
		case "updatedAt":
			p.UpdatedAt = value.(time.Time)
		}
	}
	f.byID[id] = p
	return nil
}

func (f *fakePropertyStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.byID[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.byID, id)
	return nil
}

func (f *fakePropertyStore) NextID(_ context.Context) (string, error) {
	f.nextSeq++
	return fmt.Sprintf("PROP%d", f.nextSeq), nil
}

type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[primitive.ObjectID]*models.User{}}
}

func (f *fakeUserStore) add(u models.User) *models.User {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	stored := u
	f.users[u.ID] = &stored
	return &stored
}

func (f *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	*user = *f.add(*user)
	return nil
}

func (f *fakeUserStore) AddFavorite(_ context.Context, userID, propertyID primitive.ObjectID) (bool, error) {
	return f.addToSet(userID, propertyID, func(u *models.User) *[]primitive.ObjectID { return &u.Favorites })
}

func (f *fakeUserStore) RemoveFavorite(_ context.Context, userID, propertyID primitive.ObjectID) (bool, error) {
	return f.pull(userID, propertyID, func(u *models.User) *[]primitive.ObjectID { return &u.Favorites })
}

func (f *fakeUserStore) AddRecommendation(_ context.Context, userID, propertyID primitive.ObjectID) (bool, error) {
	return f.addToSet(userID, propertyID, func(u *models.User) *[]primitive.ObjectID { return &u.RecommendationsReceived })
}

func (f *fakeUserStore) RemoveRecommendation(_ context.Context, userID, propertyID primitive.ObjectID) (bool, error) {
	return f.pull(userID, propertyID, func(u *models.User) *[]primitive.ObjectID { return &u.RecommendationsReceived })
}

func (f *fakeUserStore) addToSet(userID, propertyID primitive.ObjectID, field func(*models.User) *[]primitive.ObjectID) (bool, error) {
	u, ok := f.users[userID]
	if !ok {
		return false, mongo.ErrNoDocuments
	}
	set := field(u)
	if slices.Contains(*set, propertyID) {
		return false, nil
	}
	*set = append(*set, propertyID)
	return true, nil
}

func (f *fakeUserStore) pull(userID, propertyID primitive.ObjectID, field func(*models.User) *[]primitive.ObjectID) (bool, error) {
	u, ok := f.users[userID]
	if !ok {
		return false, mongo.ErrNoDocuments
	}
	set := field(u)
	i := slices.Index(*set, propertyID)
	if i < 0 {
		return false, nil
	}
	*set = slices.Delete(*set, i, i+1)
	return true, nil
}
