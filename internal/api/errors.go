package api

import (
	"encoding/json"
	"net/http"

	"ecorank/internal/errors"
)

// ErrorResponse represents an HTTP error response
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Hint    string      `json:"hint,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// WriteError writes an error response to the HTTP response writer
func WriteError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := ErrorResponse{
		Success: false,
		Error:   err.Error(),
		Hint:    errors.HintFor(err),
	}

	if coded, ok := err.(*errors.Error); ok {
		resp.Error = coded.Message
		resp.Code = string(coded.Code)
		resp.Details = coded.Details
	} else {
		resp.Code = string(errors.InternalError)
	}

	_ = json.NewEncoder(w).Encode(resp)
}

// WriteCodedError writes a coded error with automatic status mapping
func WriteCodedError(w http.ResponseWriter, err error) {
	WriteError(w, err, MapCodeToStatus(errors.CodeOf(err)))
}

// MapCodeToStatus maps ecorank error codes to HTTP status codes
func MapCodeToStatus(code errors.Code) int {
	switch code {
	case errors.ProductNotFound:
		return http.StatusNotFound // 404
	case errors.ProfileNotFound:
		return http.StatusNotFound // 404
	case errors.SourceNotFound:
		return http.StatusNotFound // 404
	case errors.RunNotFound:
		return http.StatusNotFound // 404
	case errors.MetricInvalid:
		return http.StatusBadRequest // 400
	case errors.WeightInvalid:
		return http.StatusBadRequest // 400
	case errors.RequestInvalid:
		return http.StatusBadRequest // 400
	case errors.ProfileInvalid:
		return http.StatusUnprocessableEntity // 422
	case errors.SourceInvalid:
		return http.StatusUnprocessableEntity // 422
	case errors.CatalogInvalid:
		return http.StatusUnprocessableEntity // 422
	case errors.CatalogUnreadable:
		return http.StatusServiceUnavailable // 503
	case errors.StorageUnavailable:
		return http.StatusServiceUnavailable // 503
	case errors.Unauthorized:
		return http.StatusUnauthorized // 401
	case errors.InternalError:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// BadRequest writes a 400 Bad Request error
func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, errors.New(errors.RequestInvalid, message), http.StatusBadRequest)
}

// NotFound writes a 404 Not Found error
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, errors.New(errors.ProductNotFound, message), http.StatusNotFound)
}

// InternalError writes a 500 Internal Server Error
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, errors.New(errors.InternalError, message), http.StatusInternalServerError)
}
