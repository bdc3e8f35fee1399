package handlers

import (
	"log/slog"
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	playerService *services.PlayerService
	ladderService *services.LadderService
	logger        *slog.Logger
}

func NewPlayerHandler(playerService *services.PlayerService, ladderService *services.LadderService, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
		ladderService: ladderService,
		logger:        logger,
	}
}

// GetPlayers returns the leaderboard
// @Summary List players
// @Description All players ordered by rating, then games played, then join date
// @Tags players
// @Produce json
// @Success 200 {array} models.PlayerResponse
// @Failure 500 {object} ErrorResponse
// @Router /players [get]
func (h *PlayerHandler) GetPlayers(c *gin.Context) {
	entries, err := h.ladderService.GetLeaderboard(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	players := make([]models.PlayerResponse, len(entries))
	for i, entry := range entries {
		players[i] = models.NewPlayerResponse(entry)
	}

	c.JSON(http.StatusOK, players)
}

// GetPlayer retrieves a player by name
// @Summary Get player by name
// @Description Player with win/loss counts and ladder rank
// @Tags players
// @Produce json
// @Param name path string true "Player name"
// @Success 200 {object} models.PlayerResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /players/{name} [get]
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	entry, err := h.ladderService.GetPlayer(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.NewPlayerResponse(*entry))
}

// CreatePlayer registers a player
// @Summary Register a player
// @Description Adds a player to the ladder. Returns the player name.
// @Tags players
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param player body models.CreatePlayerRequest true "Player"
// @Success 201 {string} string "kumanan"
// @Failure 422 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /players [post]
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	var req models.CreatePlayerRequest
	if err := bindBody(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}

	verr := &services.ValidationError{}
	timeCreated := parseTimestamp(verr, "time_created", req.TimeCreated)
	if err := verr.Err(); err != nil {
		writeError(c, h.logger, err)
		return
	}

	player, err := h.playerService.CreatePlayer(c.Request.Context(), services.CreatePlayerInput{
		Name:        req.Name,
		Rating:      req.Rating,
		TimeCreated: timeCreated,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, player.Name)
}
