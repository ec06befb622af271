package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pappi-team/pappi-matching/internal/domain"
	"github.com/pappi-team/pappi-matching/internal/usecase/interaction"
)

type InteractionHandler struct {
	interactionUseCase *interaction.UseCase
}

func NewInteractionHandler(interactionUseCase *interaction.UseCase) *InteractionHandler {
	return &InteractionHandler{
		interactionUseCase: interactionUseCase,
	}
}

// Record handles POST /interactions
// @Summary Record interaction
// @Description Record a behavioral event for the current user
// @Tags interactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body interaction.RecordRequest true "Interaction data"
// @Success 201 {object} domain.Interaction
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /interactions [post]
func (h *InteractionHandler) Record(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return
	}

	var req interaction.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingError(err))
		return
	}

	recorded, err := h.interactionUseCase.Record(c.Request.Context(), userID.(int), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInteractionType) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "invalid interaction type",
			})
			return
		}
		if errors.Is(err, domain.ErrAnimalNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "animal not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to record interaction",
		})
		return
	}

	c.JSON(http.StatusCreated, recorded)
}
