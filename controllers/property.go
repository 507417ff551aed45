package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/propview/property_listing_backend/models"
	"github.com/propview/property_listing_backend/search"
	"github.com/propview/property_listing_backend/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func CreateProperty(properties store.PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromContext(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		var input PropertyInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			log.Printf("Invalid request body: %v", err)
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if _, err := input.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		code, err := properties.NextID(r.Context())
		if err != nil {
			log.Printf("Failed to assign property id: %v", err)
			http.Error(w, "Failed to create property", http.StatusInternalServerError)
			return
		}

		property := input.ToProperty(code, userID)
		if err := properties.Insert(r.Context(), &property); err != nil {
			log.Printf("Insert failed: %v", err)
			http.Error(w, "Failed to create property", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.APIResponse{
			Success: true,
			Message: "Property created successfully",
			Data:    property,
		})
	}
}

func SearchProperties(properties store.PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := search.Compile(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		results, err := properties.Search(r.Context(), filter)
		if err != nil {
			log.Printf("Error fetching properties with filter %+v: %v", filter, err)
			http.Error(w, "Error fetching properties", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{
			Success: true,
			Message: "Properties retrieved successfully",
			Data:    results,
		})
	}
}

func GetProperty(properties store.PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(propertyID)
		if err != nil {
			log.Printf("Invalid property ID %s: %v", propertyID, err)
			http.Error(w, "Invalid property ID", http.StatusBadRequest)
			return
		}

		property, err := properties.FindByID(r.Context(), objID)
		if err == mongo.ErrNoDocuments {
			http.Error(w, "Property not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("Error fetching property %s: %v", propertyID, err)
			http.Error(w, "Error fetching property", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{
			Success: true,
			Message: "Property retrieved successfully",
			Data:    property,
		})
	}
}

func UpdateProperty(properties store.PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromContext(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		propertyID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(propertyID)
		if err != nil {
			log.Printf("Invalid property ID %s: %v", propertyID, err)
			http.Error(w, "Invalid property ID", http.StatusBadRequest)
			return
		}

		property, err := properties.FindByID(r.Context(), objID)
		if err == mongo.ErrNoDocuments {
			http.Error(w, "Property not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("Error fetching property %s: %v", propertyID, err)
			http.Error(w, "Error fetching property", http.StatusInternalServerError)
			return
		}

		if property.CreatedBy != userID {
			log.Printf("User %s is not the owner of property %s", userID.Hex(), propertyID)
			http.Error(w, "Not authorized to update this property", http.StatusForbidden)
			return
		}

		var update PropertyUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			log.Printf("Invalid update data: %v", err)
			http.Error(w, "Invalid update data", http.StatusBadRequest)
			return
		}

		set, err := update.SetDocument()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := properties.Update(r.Context(), objID, set); err != nil {
			log.Printf("Update failed for property %s: %v", propertyID, err)
			http.Error(w, "Update failed", http.StatusInternalServerError)
			return
		}

		updated, err := properties.FindByID(r.Context(), objID)
		if err != nil {
			log.Printf("Error re-fetching property %s: %v", propertyID, err)
			http.Error(w, "Update failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{
			Success: true,
			Message: "Property updated successfully",
			Data:    updated,
		})
	}
}

func DeleteProperty(properties store.PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromContext(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		propertyID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(propertyID)
		if err != nil {
			log.Printf("Invalid property ID %s: %v", propertyID, err)
			http.Error(w, "Invalid property ID", http.StatusBadRequest)
			return
		}

		property, err := properties.FindByID(r.Context(), objID)
		if err == mongo.ErrNoDocuments {
			http.Error(w, "Property not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("Error fetching property %s: %v", propertyID, err)
			http.Error(w, "Error fetching property", http.StatusInternalServerError)
			return
		}

		if property.CreatedBy != userID {
			log.Printf("User %s is not the owner of property %s", userID.Hex(), propertyID)
			http.Error(w, "Not authorized to delete this property", http.StatusForbidden)
			return
		}

		if err := properties.Delete(r.Context(), objID); err != nil {
			log.Printf("Delete failed for property %s: %v", propertyID, err)
			http.Error(w, "Delete failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{
			Success: true,
			Message: "Property deleted successfully",
		})
	}
}
