package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/yourorg/trading-journal/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DrawdownHandler handles drawdown and compliance HTTP requests
type DrawdownHandler struct {
	drawdownService *service.DrawdownService
	logger          *zap.Logger
}

// NewDrawdownHandler creates a new drawdown handler
func NewDrawdownHandler(drawdownService *service.DrawdownService, logger *zap.Logger) *DrawdownHandler {
	return &DrawdownHandler{
		drawdownService: drawdownService,
		logger:          logger,
	}
}

// GetDrawdown handles retrieving the compliance report for an account
func (h *DrawdownHandler) GetDrawdown(c *gin.Context) {
	accountID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID"})
		return
	}

	report, err := h.drawdownService.CalculateDrawdown(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		h.logger.Error("Failed to calculate drawdown",
			zap.Error(err),
			zap.Int("accountID", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate drawdown"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetObjectivesProgress handles retrieving the challenge objectives
// dashboard view for an account
func (h *DrawdownHandler) GetObjectivesProgress(c *gin.Context) {
	accountID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID"})
		return
	}

	progress, err := h.drawdownService.GetObjectivesProgress(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		h.logger.Error("Failed to get objectives progress",
			zap.Error(err),
			zap.Int("accountID", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get objectives progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"objectives": progress})
}
