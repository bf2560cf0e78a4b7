package dto

import (
	"net/http"
	"strings"
)

// domainCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes starting with INVALID_ fall back to 400; anything unmapped is a 500.
var domainCodeHTTPStatus = map[string]int{
	"NOT_FOUND":         http.StatusNotFound,
	"ALREADY_EXISTS":    http.StatusConflict,
	"CONFLICT":          http.StatusConflict,
	"UNAUTHORIZED":      http.StatusUnauthorized,
	"FORBIDDEN":         http.StatusForbidden,
	"INVALID_INPUT":     http.StatusBadRequest,
	"INVALID_REFERENCE": http.StatusBadRequest,
}

// StatusForCode returns the HTTP status for a domain error code
func StatusForCode(code string) int {
	if status, ok := domainCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
