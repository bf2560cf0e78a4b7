// Package dto defines the wire envelopes shared by all HTTP handlers.
package dto

// ErrorResponse is the error envelope. Details carries field-level
// validation failures when present.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// NewErrorResponse creates an error envelope
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// ValidationDetail is one field-level validation failure
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationErrorResponse creates an error envelope with field details
func NewValidationErrorResponse(message string, details []ValidationDetail) ErrorResponse {
	return ErrorResponse{Error: message, Details: details}
}

// Pagination describes one page of a paginated listing
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes pagination metadata; totalPages is the ceiling of
// total/limit
func NewPagination(total int64, page, limit int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int(total) / limit
		if int(total)%limit > 0 {
			totalPages++
		}
	}
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// ListResponse wraps a collection payload
type ListResponse struct {
	Data any `json:"data"`
}

// PageResponse wraps a paginated collection payload
type PageResponse struct {
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewListResponse creates an unpaginated collection envelope
func NewListResponse(data any) ListResponse {
	return ListResponse{Data: data}
}

// NewPageResponse creates a paginated collection envelope
func NewPageResponse(data any, total int64, page, limit int) PageResponse {
	return PageResponse{
		Data:       data,
		Pagination: NewPagination(total, page, limit),
	}
}
