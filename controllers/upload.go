package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/propview/property_listing_backend/importer"
	"github.com/propview/property_listing_backend/models"
	"github.com/propview/property_listing_backend/store"
)

const maxUploadBytes = 32 << 20

func uploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}

// ImportProperties accepts a CSV file in the multipart "file" field and
// bulk-imports its rows on behalf of the authenticated user. The upload
// is spooled to disk and removed once the import finishes.
func ImportProperties(properties store.PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromContext(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			log.Printf("Invalid multipart form: %v", err)
			http.Error(w, "CSV file required", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "CSV file required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		path, err := saveUpload(file, header.Filename)
		if err != nil {
			log.Printf("Failed to store uploaded file: %v", err)
			http.Error(w, "Failed to import CSV", http.StatusInternalServerError)
			return
		}
		defer func() {
			if err := os.Remove(path); err != nil {
				log.Printf("Failed to remove uploaded file %s: %v", path, err)
			}
		}()

		count, err := importer.ImportFile(r.Context(), path, userID, properties)
		if err != nil {
			log.Printf("CSV import error: %v", err)
			http.Error(w, "Failed to import CSV", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{
			Success: true,
			Message: "CSV Imported Successfully",
			Data:    map[string]int{"inserted": count},
		})
	}
}

func saveUpload(file io.Reader, originalName string) (string, error) {
	dir := uploadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}

	name := fmt.Sprintf("properties_%s%s", uuid.NewString(), filepath.Ext(originalName))
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("writing upload file: %w", err)
	}
	return path, nil
}
