package handler

import (
	"net/http"

	budgetapp "github.com/fintrack/backend/internal/application/budget"
	"github.com/fintrack/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// BudgetHandler serves the budget endpoints
type BudgetHandler struct {
	service *budgetapp.BudgetService
}

// NewBudgetHandler creates a budget handler
func NewBudgetHandler(service *budgetapp.BudgetService) *BudgetHandler {
	return &BudgetHandler{service: service}
}

// RegisterRoutes registers budget routes. PUT upserts: the optional id in the
// body or path selects the budget to update, absence creates one.
func (h *BudgetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	budgets := rg.Group("/budgets")
	{
		budgets.GET("", h.List)
		budgets.PUT("", h.Upsert)
		budgets.GET("/:id", h.GetByID)
		budgets.PUT("/:id", h.Upsert)
		budgets.DELETE("/:id", h.Delete)
	}
}

// List returns all of the owner's budgets with progress annotations
func (h *BudgetHandler) List(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	items, err := h.service.List(c.Request.Context(), owner)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(items))
}

// GetByID returns a budget with its per-line spend breakdown
func (h *BudgetHandler) GetByID(c *gin.Context) {
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

// Upsert creates or updates a budget along with its line allocations
func (h *BudgetHandler) Upsert(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req budgetapp.UpsertBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	// A path id wins over the body's optional id.
	if c.Param("id") != "" {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		req.ID = &id
	}

	item, err := h.service.Upsert(c.Request.Context(), owner, req)
	if err != nil {
		handleError(c, err)
		return
	}

	status := http.StatusOK
	if req.ID == nil {
		status = http.StatusCreated
	}
	c.JSON(status, item)
}

// Delete soft-deletes a budget and its lines
func (h *BudgetHandler) Delete(c *gin.Context) {
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
