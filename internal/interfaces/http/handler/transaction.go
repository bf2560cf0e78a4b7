package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	ledgerapp "github.com/fintrack/backend/internal/application/ledger"
	"github.com/fintrack/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionHandler serves the transaction ledger endpoints
type TransactionHandler struct {
	service *ledgerapp.TransactionService
}

// NewTransactionHandler creates a transaction handler
func NewTransactionHandler(service *ledgerapp.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// RegisterRoutes registers transaction routes and the aggregate balance
func (h *TransactionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/balance", h.Balance)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.List)
		transactions.POST("", h.Create)
		transactions.GET("/:id", h.GetByID)
		transactions.PUT("/:id", h.Update)
		transactions.DELETE("/:id", h.Delete)
	}
}

// List returns a filtered, paginated page of the owner's transactions
func (h *TransactionHandler) List(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	filter, ok := parseTransactionFilter(c)
	if !ok {
		return
	}

	items, total, err := h.service.List(c.Request.Context(), owner, filter)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(items, total, filter.Page, filter.PageSize))
}

// GetByID returns a single transaction
func (h *TransactionHandler) GetByID(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), owner, id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Create records a new transaction
func (h *TransactionHandler) Create(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req ledgerapp.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	item, err := h.service.Create(c.Request.Context(), owner, req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Update replaces a transaction's mutable fields
func (h *TransactionHandler) Update(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req ledgerapp.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	item, err := h.service.Update(c.Request.Context(), owner, id, req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Delete soft-deletes a transaction
func (h *TransactionHandler) Delete(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), owner, id); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Balance returns the owner's aggregate balance
func (h *TransactionHandler) Balance(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	balance, err := h.service.Balance(c.Request.Context(), owner)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}

func parseTransactionFilter(c *gin.Context) (ledgerapp.TransactionListFilter, bool) {
	filter := ledgerapp.TransactionListFilter{
		Type:      c.Query("type"),
		SortBy:    c.Query("sort"),
		SortOrder: c.Query("order"),
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "limit", 20),
	}

	var ok bool
	if filter.FromDate, ok = queryDate(c, "from"); !ok {
		return filter, false
	}
	if filter.ToDate, ok = queryDate(c, "to"); !ok {
		return filter, false
	}
	if filter.AccountIDs, ok = queryUUIDs(c, "account_id"); !ok {
		return filter, false
	}
	if filter.CategoryIDs, ok = queryUUIDs(c, "category_id"); !ok {
		return filter, false
	}

	return filter, true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func queryDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse("Invalid "+name+" date, expected YYYY-MM-DD"))
		return nil, false
	}
	return &value, true
}

// queryUUIDs accepts a comma-separated list of UUIDs
func queryUUIDs(c *gin.Context, name string) ([]uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}

	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid "+name+" parameter"))
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
