package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pappi-team/pappi-matching/internal/domain"
	"github.com/pappi-team/pappi-matching/internal/usecase/preference"
)

type PreferenceHandler struct {
	preferenceUseCase *preference.UseCase
}

func NewPreferenceHandler(preferenceUseCase *preference.UseCase) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceUseCase: preferenceUseCase,
	}
}

// GetPreferences handles GET /preferences
// @Summary Get preferences
// @Description Get the current user's matching preferences
// @Tags preferences
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Preferences
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /preferences [get]
func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return
	}

	prefs, err := h.preferenceUseCase.GetPreferences(c.Request.Context(), userID.(int))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to get preferences",
		})
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences handles PUT /preferences
// @Summary Update preferences
// @Description Update the current user's matching preferences
// @Tags preferences
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body preference.UpdatePreferencesRequest true "Preference update data"
// @Success 200 {object} domain.Preferences
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /preferences [put]
func (h *PreferenceHandler) UpdatePreferences(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return
	}

	var req preference.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingError(err))
		return
	}

	prefs, err := h.preferenceUseCase.UpdatePreferences(c.Request.Context(), userID.(int), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAgeRange) || errors.Is(err, domain.ErrInvalidMaxDistance) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to update preferences",
		})
		return
	}

	c.JSON(http.StatusOK, prefs)
}
