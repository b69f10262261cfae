package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/yourorg/trading-journal/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatsHandler handles trading statistics HTTP requests
type StatsHandler struct {
	statsService *service.StatsService
	logger       *zap.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		logger:       logger,
	}
}

// GetAccountStats handles retrieving the statistics report for an account
func (h *StatsHandler) GetAccountStats(c *gin.Context) {
	accountID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID"})
		return
	}

	report, err := h.statsService.GetAccountStats(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		h.logger.Error("Failed to compute account stats",
			zap.Error(err),
			zap.Int("accountID", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetPlaybookStats handles retrieving the statistics report for a playbook
func (h *StatsHandler) GetPlaybookStats(c *gin.Context) {
	playbookID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid playbook ID"})
		return
	}

	report, err := h.statsService.GetPlaybookStats(c.Request.Context(), playbookID)
	if err != nil {
		h.logger.Error("Failed to compute playbook stats",
			zap.Error(err),
			zap.Int("playbookID", playbookID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, report)
}
