// Package errors defines coded errors shared across the ecorank CLI and API.
//
// Every failure surfaced to a caller carries a stable code so that HTTP
// handlers can map it to a status and CLI output stays greppable. Scoring
// itself never produces errors: malformed product fields degrade to missing
// values, so the codes here cover the loaders, the catalog, and the serving
// layer only.
package errors

import (
	"fmt"
)

// Code is a stable identifier for a failure mode
type Code string

const (
	// CatalogInvalid indicates the catalog file root is not a JSON array
	CatalogInvalid Code = "CATALOG_INVALID"
	// CatalogUnreadable indicates the catalog file could not be opened or decoded
	CatalogUnreadable Code = "CATALOG_UNREADABLE"
	// ProductNotFound indicates no product matches the requested id
	ProductNotFound Code = "PRODUCT_NOT_FOUND"
	// ProfileNotFound indicates a named scoring profile does not exist
	ProfileNotFound Code = "PROFILE_NOT_FOUND"
	// ProfileInvalid indicates profiles.toml is malformed or fails validation
	ProfileInvalid Code = "PROFILE_INVALID"
	// SourceNotFound indicates a named catalog feed is not registered
	SourceNotFound Code = "SOURCE_NOT_FOUND"
	// SourceInvalid indicates the feed registry is malformed or references a bad feed
	SourceInvalid Code = "SOURCE_INVALID"
	// RunNotFound indicates no archived scoring run matches the requested id
	RunNotFound Code = "RUN_NOT_FOUND"
	// MetricInvalid indicates an unrecognized metric identifier where one is required
	MetricInvalid Code = "METRIC_INVALID"
	// RequestInvalid indicates a malformed request body or parameter
	RequestInvalid Code = "REQUEST_INVALID"
	// WeightInvalid indicates a weight value that is negative or not finite
	WeightInvalid Code = "WEIGHT_INVALID"
	// Unauthorized indicates a missing or unverifiable API key
	Unauthorized Code = "UNAUTHORIZED"
	// StorageUnavailable indicates the run archive database cannot be used
	StorageUnavailable Code = "STORAGE_UNAVAILABLE"
	// InternalError indicates an unexpected failure
	InternalError Code = "INTERNAL_ERROR"
)

// Error is a coded ecorank error. Hint, when set, is a one-line remedy
// suitable for CLI and API output.
type Error struct {
	Code    Code        `json:"code"`
	Message string      `json:"message"`
	Hint    string      `json:"hint,omitempty"`
	Details interface{} `json:"details,omitempty"`
	cause   error
}

// New creates a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a coded error with an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.cause
}

// WithHint attaches a suggested remedy and returns the error for chaining.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// WithDetails attaches structured details and returns the error for chaining.
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// CodeOf extracts the code from an error, returning InternalError for
// non-coded errors and an empty code for nil.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	if coded, ok := err.(*Error); ok {
		return coded.Code
	}
	return InternalError
}

// defaultHints maps codes to remedies shown when an error carries no hint of
// its own.
var defaultHints = map[Code]string{
	CatalogInvalid:    "the catalog root must be a JSON array of product objects",
	CatalogUnreadable: "check the catalog path in .ecorank/config.json",
	ProfileNotFound:   "run 'ecorank profiles' to list available profiles",
	ProfileInvalid:    "profiles carry weights, a reference lifespan, and required metrics; check profiles.toml",
	SourceNotFound:    "run 'ecorank sources list' to see registered feeds",
	SourceInvalid:     "run 'ecorank sources list' to inspect the feed registry",
	Unauthorized:      "pass an API key via 'Authorization: Bearer <key>' or disable auth",
}

// HintFor returns the hint attached to err, or the default hint for its code.
func HintFor(err error) string {
	coded, ok := err.(*Error)
	if !ok {
		return ""
	}
	if coded.Hint != "" {
		return coded.Hint
	}
	return defaultHints[coded.Code]
}
