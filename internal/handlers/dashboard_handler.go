package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "monetra/internal/errors"
	"monetra/internal/services"
)

// defaultAttentionLimit is how many budgets the attention widget shows.
const defaultAttentionLimit = 5

// DashboardHandler handles dashboard and reports requests.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetBudgetSummary handles the dashboard summary widget.
// @Summary     Get budget summary
// @Description Get month-level budget totals and status buckets
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       period query string false "Month (YYYY-MM), defaults to current"
// @Success     200 {object} budget.Summary "Budget summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/summary [get]
func (h *DashboardHandler) GetBudgetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	period, err := periodFromQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.dashboardService.GetBudgetSummary(userID, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetNeedsAttention handles the needs-attention widget.
// @Summary     Get budgets needing attention
// @Description Get the budgets closest to or past their limit, most consumed first
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       period query string false "Month (YYYY-MM), defaults to current"
// @Param       limit  query int    false "Maximum entries (default 5)"
// @Success     200 {array} budget.Enriched "Budgets ranked by consumption"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/attention [get]
func (h *DashboardHandler) GetNeedsAttention(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	period, err := periodFromQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	limit := defaultAttentionLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = n
	}

	budgets, err := h.dashboardService.GetNeedsAttention(userID, period, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

// GetMonthlyReport handles the monthly reports view.
// @Summary     Get monthly report
// @Description Get the full monthly report: ranked budgets, summary, and income/expense totals
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       period query string false "Month (YYYY-MM), defaults to current"
// @Success     200 {object} services.MonthlyReport "Monthly report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/budgets [get]
func (h *DashboardHandler) GetMonthlyReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	period, err := periodFromQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.dashboardService.GetMonthlyReport(userID, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}
