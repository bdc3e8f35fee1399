package handlers

import (
	"log/slog"
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type ChallengeHandler struct {
	challengeService *services.ChallengeService
	ladderService    *services.LadderService
	logger           *slog.Logger
}

func NewChallengeHandler(challengeService *services.ChallengeService, ladderService *services.LadderService, logger *slog.Logger) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
		ladderService:    ladderService,
		logger:           logger,
	}
}

// GetChallenges retrieves challenges
// @Summary List challenges
// @Description Open challenges, newest first. Completed ones are included on request.
// @Tags challenges
// @Produce json
// @Param include_completed query bool false "Include completed challenges (default: false)"
// @Param player query string false "Only challenges this player issued or received"
// @Success 200 {array} models.ChallengeResponse
// @Failure 422 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /challenges [get]
func (h *ChallengeHandler) GetChallenges(c *gin.Context) {
	verr := &services.ValidationError{}
	includeCompleted := queryBool(c, verr, "include_completed", false)
	if err := verr.Err(); err != nil {
		writeError(c, h.logger, err)
		return
	}

	challenges, err := h.ladderService.GetChallenges(c.Request.Context(), includeCompleted, c.Query("player"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	response := make([]models.ChallengeResponse, len(challenges))
	for i, ch := range challenges {
		response[i] = models.NewChallengeResponse(ch)
	}

	c.JSON(http.StatusOK, response)
}

// CreateChallenge issues a challenge
// @Summary Issue a challenge
// @Description Only one open challenge may exist between two players. Returns the challenge id.
// @Tags challenges
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param challenge body models.CreateChallengeRequest true "Challenge"
// @Success 201 {integer} integer 1
// @Failure 422 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /challenges [post]
func (h *ChallengeHandler) CreateChallenge(c *gin.Context) {
	var req models.CreateChallengeRequest
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

	id, err := h.challengeService.IssueChallenge(c.Request.Context(), services.IssueChallengeInput{
		Challenger:  req.Challenger,
		Challenged:  req.Challenged,
		TimeCreated: timeCreated,
		GameID:      req.GameID,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, id)
}
