package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/yourorg/trading-journal/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// smartLimitCheckRequest is the admission-check payload sent by the
// trade-write service before persisting a new trade
type smartLimitCheckRequest struct {
	RiskPercentage float64 `json:"risk_percentage" validate:"gte=0"`
}

// SmartLimitsHandler handles smart-limit HTTP requests
type SmartLimitsHandler struct {
	smartLimitService *service.SmartLimitService
	logger            *zap.Logger
}

// NewSmartLimitsHandler creates a new smart limits handler
func NewSmartLimitsHandler(smartLimitService *service.SmartLimitService, logger *zap.Logger) *SmartLimitsHandler {
	return &SmartLimitsHandler{
		smartLimitService: smartLimitService,
		logger:            logger,
	}
}

// GetStatus handles retrieving the current smart-limit status for UI
// display. No proposed risk is involved, so the risk cap never trips.
func (h *SmartLimitsHandler) GetStatus(c *gin.Context) {
	accountID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID"})
		return
	}

	status, err := h.smartLimitService.CheckLimits(c.Request.Context(), accountID, 0)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		h.logger.Error("Failed to get smart limit status",
			zap.Error(err),
			zap.Int("accountID", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get smart limit status"})
		return
	}

	c.JSON(http.StatusOK, status)
}

// CheckLimits handles the admission check invoked by the trade-write
// service. A blocked trade is a 200 with the block reason in the payload;
// only malformed input and risk-cap breaches are errors.
func (h *SmartLimitsHandler) CheckLimits(c *gin.Context) {
	accountID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID"})
		return
	}

	var request smartLimitCheckRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Struct(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Risk percentage cannot be negative"})
		return
	}

	status, err := h.smartLimitService.CheckLimits(c.Request.Context(), accountID, request.RiskPercentage)
	if err != nil {
		var riskErr *service.RiskLimitError
		if errors.As(err, &riskErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": riskErr.Error()})
			return
		}
		if errors.Is(err, service.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		if errors.Is(err, service.ErrNegativeRisk) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to check smart limits",
			zap.Error(err),
			zap.Int("accountID", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check smart limits"})
		return
	}

	c.JSON(http.StatusOK, status)
}
