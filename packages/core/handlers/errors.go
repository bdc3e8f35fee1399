package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

// ValidationErrorResponse is the 422 body: messages keyed by field, with
// "_schema" for whole-request failures.
type ValidationErrorResponse struct {
	Errors map[string][]string `json:"errors"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"Player not found"`
}

// writeError maps service errors onto status codes. Anything unrecognised is
// logged and hidden behind a 500.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	var verr *services.ValidationError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{Errors: verr.Messages()})
	case errors.Is(err, models.ErrPlayerNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Player not found"})
	case errors.Is(err, models.ErrGameNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Game not found"})
	default:
		logger.ErrorContext(c.Request.Context(), "request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("request_id", c.GetString(requestIDKey)),
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
