package middleware

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "cache:"

// Cache serves idempotent GET responses from Redis, keyed by the full
// request URI. A miss lets the handler run and stores its 200 response
// for the given TTL. Writes never invalidate entries; a stale window up
// to the TTL is accepted.
func Cache(client *redis.Client, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := cacheKeyPrefix + r.URL.RequestURI()

			cached, err := client.Get(r.Context(), key).Result()
			if err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(cached))
				return
			}
			if err != redis.Nil {
				log.Printf("Redis GET error for key %s: %v", key, err)
			}

			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status != http.StatusOK || rec.body.Len() == 0 {
				return
			}
			if err := client.Set(r.Context(), key, rec.body.Bytes(), ttl).Err(); err != nil {
				log.Printf("Failed to cache response for key %s: %v", key, err)
			}
		})
	}
}

// responseRecorder tees the response body so a copy can be cached after
// the handler finishes.
type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
