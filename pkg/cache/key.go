package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Key represents a unique identifier for a cached users API response.
type Key struct {
	// Endpoint is the API endpoint path (e.g., "/users/3")
	Endpoint string

	// QueryParams are the query parameters, if any
	QueryParams url.Values
}

// String generates a deterministic cache key string.
// Format: fetch:endpoint:query1=val1:query2=val2
//
// Example:
//
//	fetch:users/3
func (k Key) String() string {
	parts := []string{"fetch"}

	// Add endpoint (normalize path)
	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	// Add query params (sorted for determinism)
	if len(k.QueryParams) > 0 {
		queryKeys := make([]string, 0, len(k.QueryParams))
		for key := range k.QueryParams {
			queryKeys = append(queryKeys, key)
		}
		sort.Strings(queryKeys)

		for _, key := range queryKeys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, k.QueryParams.Get(key)))
		}
	}

	return strings.Join(parts, ":")
}
