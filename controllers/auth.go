package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/propview/property_listing_backend/models"
	"github.com/propview/property_listing_backend/store"
	"github.com/propview/property_listing_backend/utils"
	"go.mongodb.org/mongo-driver/mongo"
)

type LoginResponse struct {
	Success bool        `json:"success"`
	User    models.User `json:"user"`
	Token   string      `json:"token"`
}

func RegisterUser(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error decoding register payload: %v", err)
			http.Error(w, "Invalid request payload", http.StatusBadRequest)
			return
		}

		if req.Email == "" || req.Password == "" {
			http.Error(w, "Please fill in all fields", http.StatusBadRequest)
			return
		}

		_, err := users.FindByEmail(r.Context(), req.Email)
		if err == nil {
			log.Printf("User email already exists: %s", req.Email)
			http.Error(w, "User already registered", http.StatusUnauthorized)
			return
		}
		if err != mongo.ErrNoDocuments {
			log.Printf("Error checking existing user: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		hashedPwd, err := utils.HashPassword(req.Password)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		user := models.User{Email: req.Email, Password: hashedPwd}
		if err := users.Create(r.Context(), &user); err != nil {
			log.Printf("Error inserting user into the database: %v", err)
			http.Error(w, "Failed to create user", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.APIResponse{
			Success: true,
			Message: "User registered successfully",
		})
	}
}

func LoginUser(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error decoding login payload: %v", err)
			http.Error(w, "Invalid request payload", http.StatusBadRequest)
			return
		}

		if req.Email == "" || req.Password == "" {
			http.Error(w, "Email or Password is required", http.StatusBadRequest)
			return
		}

		user, err := users.FindByEmail(r.Context(), req.Email)
		if err == mongo.ErrNoDocuments {
			log.Printf("User not found: %s", req.Email)
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("Error looking up user %s: %v", req.Email, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if !utils.CheckPasswordHash(req.Password, user.Password) {
			log.Printf("Invalid credentials for user: %s", req.Email)
			http.Error(w, "Invalid password", http.StatusUnauthorized)
			return
		}

		token, err := utils.GenerateJWT(user.ID.Hex(), user.Email)
		if err != nil {
			log.Printf("Error generating JWT token: %v", err)
			http.Error(w, "Failed to generate token", http.StatusInternalServerError)
			return
		}

		user.Password = ""
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(LoginResponse{Success: true, User: *user, Token: token})
	}
}
