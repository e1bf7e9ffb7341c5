package api

import (
	"net/http"
	"strconv"
	"strings"
)

// GetPathParam extracts a path parameter from the URL.
// For example, with prefix "/api/material/" and path "/api/material/42",
// it returns "42".
func GetPathParam(r *http.Request, prefix string) string {
	path := strings.TrimPrefix(r.URL.Path, prefix)
	// Remove any trailing slashes or additional path segments
	if idx := strings.Index(path, "/"); idx != -1 {
		path = path[:idx]
	}
	return path
}

// QueryParamInt reads an integer query parameter, returning the default
// when the parameter is absent or not a valid integer.
func QueryParamInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
