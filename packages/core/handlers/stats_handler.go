package handlers

import (
	"log/slog"
	"net/http"

	"core/services"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService *services.StatsService
	logger       *slog.Logger
}

func NewStatsHandler(statsService *services.StatsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		logger:       logger,
	}
}

// GetStats retrieves ladder statistics
// @Summary Get ladder statistics
// @Description Totals of players, games and open challenges, and games played over the last two weeks
// @Tags stats
// @Produce json
// @Success 200 {object} models.Stats
// @Failure 500 {object} ErrorResponse
// @Router /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetStats(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
