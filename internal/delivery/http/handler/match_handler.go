package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pappi-team/pappi-matching/internal/usecase/matching"
)

type MatchHandler struct {
	matchingUseCase *matching.UseCase
}

func NewMatchHandler(matchingUseCase *matching.UseCase) *MatchHandler {
	return &MatchHandler{
		matchingUseCase: matchingUseCase,
	}
}

// GetMatches handles GET /matches
// @Summary Get matches
// @Description Get ranked animal matches for the current user
// @Tags matching
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum number of matches"
// @Success 200 {array} domain.Match
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /matches [get]
func (h *MatchHandler) GetMatches(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid limit",
		})
		return
	}

	matches, err := h.matchingUseCase.GetMatches(c.Request.Context(), userID.(int), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to get matches",
		})
		return
	}

	c.JSON(http.StatusOK, matches)
}

// RefreshScores handles POST /matches/refresh
// @Summary Refresh match scores
// @Description Sweep stale scores and recompute matches for active users
// @Tags matching
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /matches/refresh [post]
func (h *MatchHandler) RefreshScores(c *gin.Context) {
	_, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return
	}

	if err := h.matchingUseCase.RefreshScores(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to refresh scores",
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "scores refreshed",
	})
}
