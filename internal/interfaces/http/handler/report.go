package handler

import (
	"net/http"
	"time"

	reportapp "github.com/fintrack/backend/internal/application/report"
	"github.com/fintrack/backend/internal/domain/report"
	"github.com/fintrack/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ReportHandler serves the derived report endpoints
type ReportHandler struct {
	service *reportapp.ReportService
}

// NewReportHandler creates a report handler
func NewReportHandler(service *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/income-expense", h.IncomeExpense)
		reports.GET("/expense-by-category", h.ExpenseByCategory)
	}
}

// IncomeExpense returns the income/expense series and category breakdown for
// the period containing the given date
func (h *ReportHandler) IncomeExpense(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	periodDate, ok := reportDate(c)
	if !ok {
		return
	}

	granularity := report.Granularity(c.DefaultQuery("granularity", "month"))

	result, err := h.service.IncomeExpense(c.Request.Context(), owner, periodDate, granularity)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExpenseByCategory returns the per-category expense totals for the month
// containing the given date
func (h *ReportHandler) ExpenseByCategory(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	periodDate, ok := reportDate(c)
	if !ok {
		return
	}

	result, err := h.service.ExpenseByCategory(c.Request.Context(), owner, periodDate)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// reportDate parses the periodDate query parameter (date accepted as an
// alias), defaulting to today
func reportDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("periodDate")
	if raw == "" {
		raw = c.Query("date")
	}
	if raw == "" {
		return time.Now().UTC(), true
	}

	value, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid periodDate, expected YYYY-MM-DD"))
		return time.Time{}, false
	}
	return value, true
}
