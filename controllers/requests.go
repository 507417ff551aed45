package controllers

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/propview/property_listing_backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type FavoriteRequest struct {
	PropertyID string `json:"propertyId"`
}

type RecommendationRequest struct {
	PropertyID     string `json:"propertyId"`
	RecipientEmail string `json:"recipientEmail"`
}

// PropertyInput is the create-property body. Every field the listing
// needs is explicit; rating and isVerified default when omitted.
type PropertyInput struct {
	Title         string   `json:"title"`
	Type          string   `json:"type"`
	Price         float64  `json:"price"`
	State         string   `json:"state"`
	City          string   `json:"city"`
	AreaSqFt      float64  `json:"areaSqFt"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	Amenities     []string `json:"amenities"`
	Furnished     string   `json:"furnished"`
	AvailableFrom string   `json:"availableFrom"`
	ListedBy      string   `json:"listedBy"`
	Tags          []string `json:"tags"`
	ColorTheme    string   `json:"colorTheme"`
	Rating        float64  `json:"rating"`
	IsVerified    bool     `json:"isVerified"`
	ListingType   string   `json:"listingType"`
}

// Validate checks the input and returns the parsed availableFrom date.
func (in *PropertyInput) Validate() (time.Time, error) {
	required := []struct {
		name    string
		present bool
	}{
		{"title", in.Title != ""},
		{"type", in.Type != ""},
		{"price", in.Price != 0},
		{"state", in.State != ""},
		{"city", in.City != ""},
		{"areaSqFt", in.AreaSqFt != 0},
		{"amenities", len(in.Amenities) > 0},
		{"furnished", in.Furnished != ""},
		{"availableFrom", in.AvailableFrom != ""},
		{"listedBy", in.ListedBy != ""},
		{"tags", len(in.Tags) > 0},
		{"colorTheme", in.ColorTheme != ""},
		{"listingType", in.ListingType != ""},
	}
	for _, field := range required {
		if !field.present {
			return time.Time{}, fmt.Errorf("Missing required field: %s", field.name)
		}
	}

	if err := validateStrings(in.Title, in.State, in.City); err != nil {
		return time.Time{}, err
	}
	if err := validateNumbers(in.Price, in.AreaSqFt, in.Bedrooms, in.Bathrooms); err != nil {
		return time.Time{}, err
	}
	if err := validateEnums(in.Furnished, in.ListedBy, in.ListingType); err != nil {
		return time.Time{}, err
	}

	availableFrom, err := parseAvailableFrom(in.AvailableFrom)
	if err != nil {
		return time.Time{}, err
	}
	return availableFrom, nil
}

// ToProperty builds the document for a validated input. The sequential
// code and owner are supplied by the caller and never come from the body.
func (in *PropertyInput) ToProperty(code string, ownerID primitive.ObjectID) models.Property {
	availableFrom, _ := parseAvailableFrom(in.AvailableFrom)
	now := time.Now()
	property := models.Property{
		PropID:        code,
		CreatedBy:     ownerID,
		Title:         in.Title,
		Type:          in.Type,
		Price:         in.Price,
		State:         in.State,
		City:          in.City,
		AreaSqFt:      in.AreaSqFt,
		Bedrooms:      in.Bedrooms,
		Bathrooms:     in.Bathrooms,
		Amenities:     in.Amenities,
		Furnished:     in.Furnished,
		AvailableFrom: availableFrom,
		ListedBy:      in.ListedBy,
		Tags:          in.Tags,
		ColorTheme:    in.ColorTheme,
		Rating:        in.Rating,
		IsVerified:    in.IsVerified,
		ListingType:   in.ListingType,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return property
}

// PropertyUpdate is the partial-update body; nil fields are untouched.
type PropertyUpdate struct {
	Title         *string  `json:"title"`
	Type          *string  `json:"type"`
	Price         *float64 `json:"price"`
	State         *string  `json:"state"`
	City          *string  `json:"city"`
	AreaSqFt      *float64 `json:"areaSqFt"`
	Bedrooms      *int     `json:"bedrooms"`
	Bathrooms     *int     `json:"bathrooms"`
	Amenities     []string `json:"amenities"`
	Furnished     *string  `json:"furnished"`
	AvailableFrom *string  `json:"availableFrom"`
	ListedBy      *string  `json:"listedBy"`
	Tags          []string `json:"tags"`
	ColorTheme    *string  `json:"colorTheme"`
	Rating        *float64 `json:"rating"`
	IsVerified    *bool    `json:"isVerified"`
	ListingType   *string  `json:"listingType"`
}

// SetDocument validates the provided fields and builds the $set
// document. id, createdBy and createdAt are not updatable and have no
// corresponding input fields.
func (u *PropertyUpdate) SetDocument() (bson.M, error) {
	set := bson.M{}

	if u.Title != nil {
		if strings.TrimSpace(*u.Title) == "" || len(strings.TrimSpace(*u.Title)) < 3 {
			return nil, errors.New("Title must be at least 3 characters long")
		}
		set["title"] = *u.Title
	}
	if u.Type != nil {
		set["type"] = *u.Type
	}
	if u.Price != nil {
		if *u.Price <= 0 {
			return nil, errors.New("Price must be a positive number")
		}
		set["price"] = *u.Price
	}
	if u.State != nil {
		if len(strings.TrimSpace(*u.State)) < 2 {
			return nil, errors.New("State must be at least 2 characters long")
		}
		set["state"] = *u.State
	}
	if u.City != nil {
		if len(strings.TrimSpace(*u.City)) < 2 {
			return nil, errors.New("City must be at least 2 characters long")
		}
		set["city"] = *u.City
	}
	if u.AreaSqFt != nil {
		if *u.AreaSqFt <= 0 {
			return nil, errors.New("Area must be a positive number")
		}
		set["areaSqFt"] = *u.AreaSqFt
	}
	if u.Bedrooms != nil {
		if *u.Bedrooms < 0 {
			return nil, errors.New("Bedrooms must be a positive number")
		}
		set["bedrooms"] = *u.Bedrooms
	}
	if u.Bathrooms != nil {
		if *u.Bathrooms < 0 {
			return nil, errors.New("Bathrooms must be a positive number")
		}
		set["bathrooms"] = *u.Bathrooms
	}
	if u.Amenities != nil {
		if len(u.Amenities) == 0 {
			return nil, errors.New("At least one amenity must be provided")
		}
		set["amenities"] = u.Amenities
	}
	if u.Furnished != nil {
		if !slices.Contains(models.FurnishedTypes, *u.Furnished) {
			return nil, fmt.Errorf("Furnished must be one of: %s", strings.Join(models.FurnishedTypes, ", "))
		}
		set["furnished"] = *u.Furnished
	}
	if u.AvailableFrom != nil {
		availableFrom, err := parseAvailableFrom(*u.AvailableFrom)
		if err != nil {
			return nil, err
		}
		set["availableFrom"] = availableFrom
	}
	if u.ListedBy != nil {
		if !slices.Contains(models.ListedByTypes, *u.ListedBy) {
			return nil, fmt.Errorf("ListedBy must be one of: %s", strings.Join(models.ListedByTypes, ", "))
		}
		set["listedBy"] = *u.ListedBy
	}
	if u.Tags != nil {
		if len(u.Tags) == 0 {
			return nil, errors.New("At least one tag must be provided")
		}
		set["tags"] = u.Tags
	}
	if u.ColorTheme != nil {
		set["colorTheme"] = *u.ColorTheme
	}
	if u.Rating != nil {
		set["rating"] = *u.Rating
	}
	if u.IsVerified != nil {
		set["isVerified"] = *u.IsVerified
	}
	if u.ListingType != nil {
		if !slices.Contains(models.ListingTypes, *u.ListingType) {
			return nil, fmt.Errorf("ListingType must be one of: %s", strings.Join(models.ListingTypes, ", "))
		}
		set["listingType"] = *u.ListingType
	}

	set["updatedAt"] = time.Now()
	return set, nil
}

func validateStrings(title, state, city string) error {
	if len(strings.TrimSpace(title)) < 3 {
		return errors.New("Title must be at least 3 characters long")
	}
	if len(strings.TrimSpace(state)) < 2 {
		return errors.New("State must be at least 2 characters long")
	}
	if len(strings.TrimSpace(city)) < 2 {
		return errors.New("City must be at least 2 characters long")
	}
	return nil
}

func validateNumbers(price, areaSqFt float64, bedrooms, bathrooms int) error {
	if price <= 0 {
		return errors.New("Price must be a positive number")
	}
	if areaSqFt <= 0 {
		return errors.New("Area must be a positive number")
	}
	if bedrooms < 0 {
		return errors.New("Bedrooms must be a positive number")
	}
	if bathrooms < 0 {
		return errors.New("Bathrooms must be a positive number")
	}
	return nil
}

func validateEnums(furnished, listedBy, listingType string) error {
	if !slices.Contains(models.FurnishedTypes, furnished) {
		return fmt.Errorf("Furnished must be one of: %s", strings.Join(models.FurnishedTypes, ", "))
	}
	if !slices.Contains(models.ListedByTypes, listedBy) {
		return fmt.Errorf("ListedBy must be one of: %s", strings.Join(models.ListedByTypes, ", "))
	}
	if !slices.Contains(models.ListingTypes, listingType) {
		return fmt.Errorf("ListingType must be one of: %s", strings.Join(models.ListingTypes, ", "))
	}
	return nil
}

func parseAvailableFrom(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("Invalid availableFrom date format")
}
