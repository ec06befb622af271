package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pappi-team/pappi-matching/internal/usecase/recommendation"
)

type RecommendationHandler struct {
	recommendationUseCase *recommendation.UseCase
}

func NewRecommendationHandler(recommendationUseCase *recommendation.UseCase) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationUseCase: recommendationUseCase,
	}
}

// GetRecommendations handles GET /recommendations
// @Summary Get recommendations
// @Description Get the blended recommendation feed for the current user
// @Tags recommendations
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum number of recommendations"
// @Success 200 {array} domain.Recommendation
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /recommendations [get]
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
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

	recommendations, err := h.recommendationUseCase.GetRecommendations(c.Request.Context(), userID.(int), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to get recommendations",
		})
		return
	}

	c.JSON(http.StatusOK, recommendations)
}
