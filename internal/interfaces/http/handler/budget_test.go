package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func budgetTestRouter() *gin.Engine {
	r := newTestRouter()
	h := NewBudgetHandler(nil)
	group := r.Group("/", asUser(uuid.New()))
	h.RegisterRoutes(group)
	return r
}

func TestBudgetUpsert_RequiresAuth(t *testing.T) {
	r := newTestRouter()
	h := NewBudgetHandler(nil)
	h.RegisterRoutes(r.Group("/"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/budgets", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Authentication required"}`, w.Body.String())
}

func TestBudgetUpsert_MissingDates(t *testing.T) {
	r := budgetTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/budgets", strings.NewReader(`{"name":"Groceries"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Validation failed")
}

func TestBudgetUpsert_InvalidPathID(t *testing.T) {
	r := budgetTestRouter()

	body := `{"name":"Groceries","start_date":"2025-06-01T00:00:00Z","end_date":"2025-07-01T00:00:00Z"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/budgets/not-a-uuid", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid id parameter")
}

func TestBudgetDelete_InvalidID(t *testing.T) {
	r := budgetTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/budgets/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid id parameter")
}
