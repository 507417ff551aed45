package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/propview/property_listing_backend/models"
	"github.com/propview/property_listing_backend/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func AddFavorite(users store.UserStore, properties store.PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromContext(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		propertyID, ok := decodeFavoriteBody(w, r)
		if !ok {
			return
		}

		if _, err := properties.FindByID(r.Context(), propertyID); err != nil {
			if err == mongo.ErrNoDocuments {
				http.Error(w, "Property not found", http.StatusNotFound)
				return
			}
			log.Printf("Error checking property %s: %v", propertyID.Hex(), err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		added, err := users.AddFavorite(r.Context(), userID, propertyID)
		if err == mongo.ErrNoDocuments {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("Failed to add property to favorites: %v", err)
			http.Error(w, "Failed to add property to favorites", http.StatusInternalServerError)
			return
		}
		if !added {
			http.Error(w, "Property is already in favorites", http.StatusBadRequest)
			return
		}

		user, err := users.FindByID(r.Context(), userID)
		if err != nil {
			log.Printf("Error re-fetching user %s: %v", userID.Hex(), err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{
			Success: true,
			Message: "Property added to favorites successfully",
			Data:    user.Favorites,
		})
	}
}

func RemoveFavorite(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromContext(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		propertyID, ok := decodeFavoriteBody(w, r)
		if !ok {
			return
		}

		removed, err := users.RemoveFavorite(r.Context(), userID, propertyID)
		if err == mongo.ErrNoDocuments {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("Failed to remove property from favorites: %v", err)
			http.Error(w, "Failed to remove property from favorites", http.StatusInternalServerError)
			return
		}
		if !removed {
			http.Error(w, "Property is not in favorites", http.StatusBadRequest)
			return
		}

		user, err := users.FindByID(r.Context(), userID)
		if err != nil {
			log.Printf("Error re-fetching user %s: %v", userID.Hex(), err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{
			Success: true,
			Message: "Property removed from favorites successfully",
			Data:    user.Favorites,
		})
	}
}

func GetFavorites(users store.UserStore, properties store.PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromContext(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		user, err := users.FindByID(r.Context(), userID)
		if err == mongo.ErrNoDocuments {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("Error fetching user %s: %v", userID.Hex(), err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		favorites, err := properties.FindByIDs(r.Context(), user.Favorites)
		if err != nil {
			log.Printf("Failed to fetch favorite properties: %v", err)
			http.Error(w, "Failed to fetch favorite properties", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{
			Success: true,
			Message: "Favorites retrieved successfully",
			Data:    favorites,
		})
	}
}

func decodeFavoriteBody(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	var req FavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Invalid request data: %v", err)
		http.Error(w, "Invalid request data", http.StatusBadRequest)
		return primitive.NilObjectID, false
	}
	if req.PropertyID == "" {
		http.Error(w, "Both userId and propertyId are required", http.StatusBadRequest)
		return primitive.NilObjectID, false
	}
	propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		log.Printf("Invalid property ID format: %v", err)
		http.Error(w, "Invalid property ID format", http.StatusBadRequest)
		return primitive.NilObjectID, false
	}
	return propertyID, true
}
