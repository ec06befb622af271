package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pappi-team/pappi-matching/internal/domain"
	"github.com/pappi-team/pappi-matching/internal/usecase/lostfound"
)

type LostFoundHandler struct {
	lostFoundUseCase *lostfound.UseCase
}

func NewLostFoundHandler(lostFoundUseCase *lostfound.UseCase) *LostFoundHandler {
	return &LostFoundHandler{
		lostFoundUseCase: lostFoundUseCase,
	}
}

// FindMatches handles GET /lost-found/:report_id/matches
// @Summary Find report matches
// @Description Find probable counterparts for a lost or found report
// @Tags lost-found
// @Security BearerAuth
// @Produce json
// @Param report_id path int true "Report ID"
// @Success 200 {array} domain.LostFoundMatch
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /lost-found/{report_id}/matches [get]
func (h *LostFoundHandler) FindMatches(c *gin.Context) {
	_, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return
	}

	reportID, err := strconv.Atoi(c.Param("report_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid report_id",
		})
		return
	}

	matches, err := h.lostFoundUseCase.FindMatches(c.Request.Context(), reportID)
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "report not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to find matches",
		})
		return
	}

	c.JSON(http.StatusOK, matches)
}
