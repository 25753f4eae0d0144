package handler

import (
	"errors"
	"net/http"

	"github.com/gdugdh24/matrimony-backend/internal/domain"
	"github.com/gdugdh24/matrimony-backend/internal/usecase/match"
	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchUseCase *match.MatchUseCase
}

func NewMatchHandler(matchUseCase *match.MatchUseCase) *MatchHandler {
	return &MatchHandler{
		matchUseCase: matchUseCase,
	}
}

// GetMatches handles GET /profile/matches
// @Summary Get matches
// @Description Candidates of the opposite gender inside the caller's partner preferences, newest first. Teaser mode applies default bounds.
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.MatchResult
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/matches [get]
func (h *MatchHandler) GetMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	result, err := h.matchUseCase.GetMatches(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "Please create a basic profile first.",
			})
			return
		}
		internalError(c, err, "failed to get matches")
		return
	}

	c.JSON(http.StatusOK, result)
}
