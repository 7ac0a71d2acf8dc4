package http

import (
	"net/http"
	"strconv"
)

// parsePagination reads page and limit, leaving zero for absent or malformed values
// so the filter's Validate applies its defaults.
func parsePagination(r *http.Request) (page, limit int) {
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			limit = limitNum
		}
	}
	return page, limit
}

// queryInt parses an integer query parameter. Malformed values become 0, which
// fails period validation downstream.
func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}
