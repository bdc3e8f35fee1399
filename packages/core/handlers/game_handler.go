package handlers

import (
	"log/slog"
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	gameService      *services.GameService
	ladderService    *services.LadderService
	logger           *slog.Logger
	defaultGameCount int
}

func NewGameHandler(gameService *services.GameService, ladderService *services.LadderService, logger *slog.Logger, defaultGameCount int) *GameHandler {
	if defaultGameCount < 1 {
		defaultGameCount = services.DefaultGameCount
	}
	return &GameHandler{
		gameService:      gameService,
		ladderService:    ladderService,
		logger:           logger,
		defaultGameCount: defaultGameCount,
	}
}

// GetGames retrieves recent games
// @Summary List recent games
// @Description Most recent games first
// @Tags games
// @Produce json
// @Param count query int false "Number of games (default: 10)"
// @Param player query string false "Only games this player won or lost"
// @Success 200 {array} models.GameResponse
// @Failure 422 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /games [get]
func (h *GameHandler) GetGames(c *gin.Context) {
	verr := &services.ValidationError{}
	count := queryInt(c, verr, "count", h.defaultGameCount)
	if err := verr.Err(); err != nil {
		writeError(c, h.logger, err)
		return
	}

	games, err := h.ladderService.GetRecentGames(c.Request.Context(), count, c.Query("player"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	response := make([]models.GameResponse, len(games))
	for i, g := range games {
		response[i] = models.NewGameResponse(g)
	}

	c.JSON(http.StatusOK, response)
}

// CreateGame registers a played game
// @Summary Register a game
// @Description Records a game, updates both ratings and resolves the open challenge between the players. Returns the game id.
// @Tags games
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param game body models.CreateGameRequest true "Game"
// @Success 201 {integer} integer 1
// @Failure 422 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /games [post]
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req models.CreateGameRequest
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

	id, err := h.gameService.RegisterGame(c.Request.Context(), services.RegisterGameInput{
		Winner:      req.Winner,
		Loser:       req.Loser,
		WinnerScore: *req.WinnerScore,
		LoserScore:  *req.LoserScore,
		TimeCreated: timeCreated,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, id)
}
