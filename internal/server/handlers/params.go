package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dkovalev/bazaar/internal/server/storage"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// listFilterFromQuery parses the shared skip/limit/search query parameters.
func listFilterFromQuery(r *http.Request) (storage.ListFilter, error) {
	filter := storage.ListFilter{
		Skip:   0,
		Limit:  defaultListLimit,
		Search: r.URL.Query().Get("search"),
	}

	if raw := r.URL.Query().Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return filter, fmt.Errorf("skip must be a non-negative integer")
		}
		filter.Skip = skip
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxListLimit {
			return filter, fmt.Errorf("limit must be between 1 and %d", maxListLimit)
		}
		filter.Limit = limit
	}

	return filter, nil
}
