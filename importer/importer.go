// Package importer bulk-loads property records from CSV files.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/propview/property_listing_backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dateLayout = "2006-01-02"

// Inserter is the single store operation the importer needs.
type Inserter interface {
	InsertMany(ctx context.Context, properties []models.Property) (int, error)
}

// ImportFile streams the CSV at path, coerces each row into a property
// owned by ownerID, and inserts the surviving rows in one bulk
// operation. Rows that fail coercion are logged and skipped; a
// stream-level read error fails the whole import with nothing inserted.
func ImportFile(ctx context.Context, path string, ownerID primitive.ObjectID, properties Inserter) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening csv file: %w", err)
	}
	defer f.Close()

	records, err := ParseProperties(f, ownerID)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	return properties.InsertMany(ctx, records)
}

// ParseProperties reads header-mapped CSV rows in file order. Import
// intentionally mirrors the historical bulk path: furnished and the
// other enum fields pass through unvalidated, and no sequential PROP
// code is assigned.
func ParseProperties(r io.Reader, ownerID primitive.ObjectID) ([]models.Property, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var properties []models.Property
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row: %w", err)
		}
		line++

		row := csvRow{record: record, columns: columns}
		property, err := coerceRow(row, ownerID)
		if err != nil {
			log.Printf("Skipping CSV row %d: %v", line, err)
			continue
		}
		properties = append(properties, property)
	}
	return properties, nil
}

type csvRow struct {
	record  []string
	columns map[string]int
}

func (r csvRow) field(name string) string {
	i, ok := r.columns[name]
	if !ok || i >= len(r.record) {
		return ""
	}
	return r.record[i]
}

func coerceRow(row csvRow, ownerID primitive.ObjectID) (models.Property, error) {
	price, err := intField(row, "price")
	if err != nil {
		return models.Property{}, err
	}
	areaSqFt, err := intField(row, "areaSqFt")
	if err != nil {
		return models.Property{}, err
	}
	bedrooms, err := intField(row, "bedrooms")
	if err != nil {
		return models.Property{}, err
	}
	bathrooms, err := intField(row, "bathrooms")
	if err != nil {
		return models.Property{}, err
	}

	rating := 0.0
	if v := row.field("rating"); v != "" {
		rating, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return models.Property{}, fmt.Errorf("invalid rating %q", v)
		}
	}

	var availableFrom time.Time
	if v := row.field("availableFrom"); v != "" {
		availableFrom, err = time.Parse(dateLayout, v)
		if err != nil {
			return models.Property{}, fmt.Errorf("invalid availableFrom %q", v)
		}
	}

	now := time.Now()
	return models.Property{
		Title:         row.field("title"),
		Type:          row.field("type"),
		Price:         float64(price),
		State:         row.field("state"),
		City:          row.field("city"),
		AreaSqFt:      float64(areaSqFt),
		Bedrooms:      bedrooms,
		Bathrooms:     bathrooms,
		Amenities:     splitSet(row.field("amenities")),
		Furnished:     row.field("furnished"),
		AvailableFrom: availableFrom,
		ListedBy:      row.field("listedBy"),
		Tags:          splitSet(row.field("tags")),
		ColorTheme:    row.field("colorTheme"),
		Rating:        rating,
		// TRUE is the only truthy spelling in the source data.
		IsVerified:  row.field("isVerified") == "TRUE",
		ListingType: row.field("listingType"),
		CreatedBy:   ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func intField(row csvRow, name string) (int, error) {
	v := row.field(name)
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return n, nil
}

// splitSet splits a pipe-delimited cell into its values; an absent cell
// is an empty set.
func splitSet(value string) []string {
	if value == "" {
		return []string{}
	}
	return strings.Split(value, "|")
}
