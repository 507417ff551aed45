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

// RecommendProperty appends the property to the recipient's received
// set. Only the property reference is stored, as in the original data
// model; the sender's identity is not kept.
func RecommendProperty(users store.UserStore, properties store.PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := userIDFromContext(r); !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		var req RecommendationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Invalid request data: %v", err)
			http.Error(w, "Invalid input", http.StatusBadRequest)
			return
		}
		if req.PropertyID == "" || req.RecipientEmail == "" {
			http.Error(w, "Property ID and recipient email are required", http.StatusBadRequest)
			return
		}

		propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
		if err != nil {
			log.Printf("Invalid property ID format: %v", err)
			http.Error(w, "Invalid property ID format", http.StatusBadRequest)
			return
		}

		property, err := properties.FindByID(r.Context(), propertyID)
		if err == mongo.ErrNoDocuments {
			http.Error(w, "Property not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("Error checking property %s: %v", req.PropertyID, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		recipient, err := users.FindByEmail(r.Context(), req.RecipientEmail)
		if err == mongo.ErrNoDocuments {
			log.Printf("No such user: %s", req.RecipientEmail)
			http.Error(w, "Recipient not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("Error looking up recipient %s: %v", req.RecipientEmail, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		added, err := users.AddRecommendation(r.Context(), recipient.ID, propertyID)
		if err != nil {
			log.Printf("Failed to record recommendation: %v", err)
			http.Error(w, "Failed to record recommendation", http.StatusInternalServerError)
			return
		}
		if !added {
			http.Error(w, "Property already recommended to this user", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{
			Success: true,
			Message: "Property recommended successfully",
			Data: map[string]string{
				"recipient": recipient.Email,
				"property":  property.Title,
			},
		})
	}
}

func GetRecommendations(users store.UserStore, properties store.PropertyStore) http.HandlerFunc {
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

		recommended, err := properties.FindByIDs(r.Context(), user.RecommendationsReceived)
		if err != nil {
			log.Printf("Failed to retrieve recommendations: %v", err)
			http.Error(w, "Failed to retrieve recommendations", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{
			Success: true,
			Message: "Recommendations retrieved successfully",
			Data:    recommended,
		})
	}
}

func RemoveRecommendation(users store.UserStore) http.HandlerFunc {
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

		removed, err := users.RemoveRecommendation(r.Context(), userID, propertyID)
		if err == mongo.ErrNoDocuments {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("Failed to remove recommendation: %v", err)
			http.Error(w, "Failed to remove recommendation", http.StatusInternalServerError)
			return
		}
		if !removed {
			http.Error(w, "Property is not in recommendations", http.StatusBadRequest)
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
			Message: "Recommendation removed successfully",
			Data:    user.RecommendationsReceived,
		})
	}
}
