package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusForCode(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"CONFLICT", http.StatusConflict},
		{"UNAUTHORIZED", http.StatusUnauthorized},
		{"FORBIDDEN", http.StatusForbidden},
		{"INVALID_AMOUNT", http.StatusBadRequest},
		{"INVALID_PERIOD", http.StatusBadRequest},
		{"INVALID_REFERENCE", http.StatusBadRequest},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, StatusForCode(tt.code), tt.code)
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(41, 2, 20)
	assert.Equal(t, int64(41), p.Total)
	assert.Equal(t, 3, p.TotalPages)

	p = NewPagination(40, 1, 20)
	assert.Equal(t, 2, p.TotalPages)

	p = NewPagination(0, 1, 20)
	assert.Equal(t, 0, p.TotalPages)
}
