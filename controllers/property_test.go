package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/propview/property_listing_backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func authenticatedRequest(t *testing.T, method, target string, body interface{}, userID primitive.ObjectID) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	return req.WithContext(context.WithValue(req.Context(), UserIDKey, userID.Hex()))
}

func validPropertyInput() PropertyInput {
	return PropertyInput{
		Title:         "Sunny Apartment",
		Type:          "Apartment",
		Price:         250000,
		State:         "Karnataka",
		City:          "Bengaluru",
		AreaSqFt:      950,
		Bedrooms:      2,
		Bathrooms:     2,
		Amenities:     []string{"wifi", "parking"},
		Furnished:     "Furnished",
		AvailableFrom: "2025-10-01",
		ListedBy:      "Owner",
		Tags:          []string{"near-metro"},
		ColorTheme:    "#00aaff",
		ListingType:   "rent",
	}
}

func TestCreateProperty(t *testing.T) {
	t.Parallel()

	properties := newFakePropertyStore()
	owner := primitive.NewObjectID()

	rec := httptest.NewRecorder()
	CreateProperty(properties)(rec, authenticatedRequest(t, http.MethodPost, "/api/properties", validPropertyInput(), owner))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, properties.inserted, 1)

	created := properties.inserted[0]
	assert.Equal(t, "PROP1000", created.PropID)
	assert.Equal(t, owner, created.CreatedBy)
	assert.Equal(t, 250000.0, created.Price)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreateProperty_SequentialIDs(t *testing.T) {
	t.Parallel()

	properties := newFakePropertyStore()
	owner := primitive.NewObjectID()

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		CreateProperty(properties)(rec, authenticatedRequest(t, http.MethodPost, "/api/properties", validPropertyInput(), owner))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	codes := []string{}
	for _, p := range properties.inserted {
		codes = append(codes, p.PropID)
	}
	assert.Equal(t, []string{"PROP1000", "PROP1001", "PROP1002"}, codes)
}

func TestCreateProperty_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*PropertyInput)
		message string
	}{
		{"missing title", func(in *PropertyInput) { in.Title = "" }, "Missing required field: title"},
		{"short title", func(in *PropertyInput) { in.Title = "Hi" }, "Title must be at least 3 characters long"},
		{"negative price", func(in *PropertyInput) { in.Price = -5 }, "Price must be a positive number"},
		{"bad furnished", func(in *PropertyInput) { in.Furnished = "Partly" }, "Furnished must be one of: Furnished, Unfurnished, Semi"},
		{"bad listedBy", func(in *PropertyInput) { in.ListedBy = "Friend" }, "ListedBy must be one of: Builder, Owner, Agent"},
		{"bad listingType", func(in *PropertyInput) { in.ListingType = "lease" }, "ListingType must be one of: sale, rent"},
		{"no amenities", func(in *PropertyInput) { in.Amenities = nil }, "Missing required field: amenities"},
		{"bad date", func(in *PropertyInput) { in.AvailableFrom = "soon" }, "Invalid availableFrom date format"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			properties := newFakePropertyStore()
			input := validPropertyInput()
			tt.mutate(&input)

			rec := httptest.NewRecorder()
			CreateProperty(properties)(rec, authenticatedRequest(t, http.MethodPost, "/api/properties", input, primitive.NewObjectID()))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)
			assert.Empty(t, properties.inserted)
		})
	}
}

func TestCreateProperty_NoIdentity(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/properties", nil)
	CreateProperty(newFakePropertyStore())(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSearchProperties(t *testing.T) {
	t.Parallel()

	properties := newFakePropertyStore()
	properties.results = []models.Property{{Title: "Hit"}}

	rec := httptest.NewRecorder()
	req := authenticatedRequest(t, http.MethodGet, "/api/properties/search?city=Pune&minPrice=100000&tags=near-metro", nil, primitive.NewObjectID())
	SearchProperties(properties)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, bson.M{
		"city":  "Pune",
		"price": bson.M{"$gte": 100000.0},
		"tags":  bson.M{"$in": []string{"near-metro"}},
	}, properties.lastFilter)

	var resp models.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestSearchProperties_BadParameter(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := authenticatedRequest(t, http.MethodGet, "/api/properties/search?minPrice=cheap", nil, primitive.NewObjectID())
	SearchProperties(newFakePropertyStore())(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProperty(t *testing.T) {
	t.Parallel()

	properties := newFakePropertyStore()
	owner := primitive.NewObjectID()
	existing := properties.add(models.Property{PropID: "PROP1000", Title: "Old Title", CreatedBy: owner})

	body := map[string]interface{}{"title": "New Title", "price": 300000}
	req := authenticatedRequest(t, http.MethodPut, "/api/properties/"+existing.ID.Hex(), body, owner)
	req = mux.SetURLVars(req, map[string]string{"id": existing.ID.Hex()})

	rec := httptest.NewRecorder()
	UpdateProperty(properties)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := properties.byID[existing.ID]
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, 300000.0, updated.Price)
	assert.Equal(t, owner, updated.CreatedBy)
	assert.Equal(t, "PROP1000", updated.PropID, "sequential code is immutable")
}

func TestUpdateProperty_NotOwner(t *testing.T) {
	t.Parallel()

	properties := newFakePropertyStore()
	existing := properties.add(models.Property{Title: "Old", CreatedBy: primitive.NewObjectID()})

	req := authenticatedRequest(t, http.MethodPut, "/api/properties/"+existing.ID.Hex(), map[string]interface{}{"title": "Hijacked"}, primitive.NewObjectID())
	req = mux.SetURLVars(req, map[string]string{"id": existing.ID.Hex()})

	rec := httptest.NewRecorder()
	UpdateProperty(properties)(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Old", properties.byID[existing.ID].Title)
}

func TestUpdateProperty_NotFound(t *testing.T) {
	t.Parallel()

	missing := primitive.NewObjectID()
	req := authenticatedRequest(t, http.MethodPut, "/api/properties/"+missing.Hex(), map[string]interface{}{"title": "Anything"}, primitive.NewObjectID())
	req = mux.SetURLVars(req, map[string]string{"id": missing.Hex()})

	rec := httptest.NewRecorder()
	UpdateProperty(newFakePropertyStore())(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProperty(t *testing.T) {
	t.Parallel()

	properties := newFakePropertyStore()
	owner := primitive.NewObjectID()
	existing := properties.add(models.Property{Title: "Doomed", CreatedBy: owner})

	req := authenticatedRequest(t, http.MethodDelete, "/api/properties/"+existing.ID.Hex(), nil, owner)
	req = mux.SetURLVars(req, map[string]string{"id": existing.ID.Hex()})

	rec := httptest.NewRecorder()
	DeleteProperty(properties)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, properties.byID, existing.ID)
}

func TestDeleteProperty_NotOwner(t *testing.T) {
	t.Parallel()

	properties := newFakePropertyStore()
	existing := properties.add(models.Property{Title: "Kept", CreatedBy: primitive.NewObjectID()})

	req := authenticatedRequest(t, http.MethodDelete, "/api/properties/"+existing.ID.Hex(), nil, primitive.NewObjectID())
	req = mux.SetURLVars(req, map[string]string{"id": existing.ID.Hex()})

	rec := httptest.NewRecorder()
	DeleteProperty(properties)(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, properties.byID, existing.ID)
}

func TestGetProperty(t *testing.T) {
	t.Parallel()

	properties := newFakePropertyStore()
	existing := properties.add(models.Property{Title: "Found"})

	req := authenticatedRequest(t, http.MethodGet, "/api/properties/"+existing.ID.Hex(), nil, primitive.NewObjectID())
	req = mux.SetURLVars(req, map[string]string{"id": existing.ID.Hex()})

	rec := httptest.NewRecorder()
	GetProperty(properties)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Found")
}

func TestGetProperty_InvalidID(t *testing.T) {
	t.Parallel()

	req := authenticatedRequest(t, http.MethodGet, "/api/properties/not-hex", nil, primitive.NewObjectID())
	req = mux.SetURLVars(req, map[string]string{"id": "not-hex"})

	rec := httptest.NewRecorder()
	GetProperty(newFakePropertyStore())(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
