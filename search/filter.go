// Package search compiles property search query parameters into a
// MongoDB filter document.
package search

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

const dateLayout = "2006-01-02"

// Query parameters matched verbatim against their field.
var exactStringParams = []string{
	"title", "type", "state", "city", "furnished", "listedBy", "listingType",
}

// Query parameters matched as any-of against an array field.
var setParams = []string{"amenities", "tags"}

// Compile translates the recognized query parameters into a filter
// document. Absent parameters impose no constraint; present ones combine
// with logical AND. A parameter that fails to parse is a client error.
// Compilation is deterministic: the same parameters always produce the
// same filter.
func Compile(params url.Values) (bson.M, error) {
	filter := bson.M{}

	for _, name := range exactStringParams {
		if v := params.Get(name); v != "" {
			filter[name] = v
		}
	}

	if params.Has("isVerified") {
		v, err := strconv.ParseBool(params.Get("isVerified"))
		if err != nil {
			return nil, fmt.Errorf("invalid isVerified value %q", params.Get("isVerified"))
		}
		filter["isVerified"] = v
	}

	priceRange, err := rangeBounds(params, "minPrice", "maxPrice")
	if err != nil {
		return nil, err
	}
	if len(priceRange) > 0 {
		filter["price"] = priceRange
	}

	areaRange, err := rangeBounds(params, "minArea", "maxArea")
	if err != nil {
		return nil, err
	}
	if len(areaRange) > 0 {
		filter["areaSqFt"] = areaRange
	}

	for _, name := range []string{"bedrooms", "bathrooms"} {
		if v := params.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("invalid %s value %q", name, v)
			}
			filter[name] = n
		}
	}

	for _, name := range setParams {
		if values := nonEmpty(params[name]); len(values) > 0 {
			filter[name] = bson.M{"$in": values}
		}
	}

	if v := params.Get("availableFrom"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return nil, fmt.Errorf("invalid availableFrom value %q", v)
		}
		filter["availableFrom"] = t
	}

	return filter, nil
}

// rangeBounds builds an inclusive $gte/$lte document from an optional
// pair of bound parameters. Either bound may appear on its own.
func rangeBounds(params url.Values, minName, maxName string) (bson.M, error) {
	bounds := bson.M{}
	if v := params.Get(minName); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q", minName, v)
		}
		bounds["$gte"] = n
	}
	if v := params.Get(maxName); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q", maxName, v)
		}
		bounds["$lte"] = n
	}
	return bounds, nil
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
