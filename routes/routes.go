package routes

import (
	"time"

	"github.com/gorilla/mux"
	"github.com/propview/property_listing_backend/controllers"
	"github.com/propview/property_listing_backend/middleware"
	"github.com/propview/property_listing_backend/store"
	"github.com/redis/go-redis/v9"
)

const cacheTTL = time.Hour

func Routes(router *mux.Router, properties store.PropertyStore, users store.UserStore, redisClient *redis.Client) {
	// Auth routes
	router.HandleFunc("/register", controllers.RegisterUser(users)).Methods("POST")
	router.HandleFunc("/login", controllers.LoginUser(users)).Methods("POST")

	// Routes that require authentication
	authenticated := router.PathPrefix("/api").Subrouter()
	authenticated.Use(middleware.AuthMiddleware)

	cached := middleware.Cache(redisClient, cacheTTL)

	// Property routes
	authenticated.HandleFunc("/properties", controllers.CreateProperty(properties)).Methods("POST")
	authenticated.Handle("/properties/search", cached(controllers.SearchProperties(properties))).Methods("GET")
	authenticated.HandleFunc("/properties/{id}", controllers.GetProperty(properties)).Methods("GET")
	authenticated.HandleFunc("/properties/{id}", controllers.UpdateProperty(properties)).Methods("PUT")
	authenticated.HandleFunc("/properties/{id}", controllers.DeleteProperty(properties)).Methods("DELETE")

	// Favorites routes
	authenticated.HandleFunc("/favorites/add", controllers.AddFavorite(users, properties)).Methods("POST")
	authenticated.HandleFunc("/favorites/remove", controllers.RemoveFavorite(users)).Methods("POST")
	authenticated.Handle("/favorites", cached(controllers.GetFavorites(users, properties))).Methods("GET")

	// Recommendations routes
	authenticated.HandleFunc("/recommendations", controllers.RecommendProperty(users, properties)).Methods("POST")
	authenticated.HandleFunc("/recommendations/remove", controllers.RemoveRecommendation(users)).Methods("POST")
	authenticated.Handle("/recommendations", cached(controllers.GetRecommendations(users, properties))).Methods("GET")

	// CSV bulk import
	authenticated.HandleFunc("/upload/properties", controllers.ImportProperties(properties)).Methods("POST")
}
