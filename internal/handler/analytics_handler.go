package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/yourorg/trading-journal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

// analyticsQuery carries the optional date window for analytics requests.
// Dates are calendar days; the end day is inclusive.
type analyticsQuery struct {
	StartDate string `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// AnalyticsHandler handles time-bucketed analytics HTTP requests
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	logger           *zap.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// GetAnalytics handles retrieving the analytics report for an account
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	accountID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID"})
		return
	}

	var query analyticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Struct(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dates must be in YYYY-MM-DD format"})
		return
	}

	var startDate, endDate *time.Time
	if query.StartDate != "" {
		parsed, _ := time.ParseInLocation("2006-01-02", query.StartDate, time.UTC)
		startDate = &parsed
	}
	if query.EndDate != "" {
		parsed, _ := time.ParseInLocation("2006-01-02", query.EndDate, time.UTC)
		endDate = &parsed
	}

	report, err := h.analyticsService.GetAnalytics(c.Request.Context(), accountID, startDate, endDate)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		if errors.Is(err, service.ErrInvalidDateRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to compute analytics",
			zap.Error(err),
			zap.Int("accountID", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}

	c.JSON(http.StatusOK, report)
}
