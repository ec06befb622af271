package http

import (
	"github.com/gin-gonic/gin"
	"github.com/pappi-team/pappi-matching/internal/delivery/http/handler"
	"github.com/pappi-team/pappi-matching/internal/delivery/http/middleware"
)

type Router struct {
	matchHandler          *handler.MatchHandler
	recommendationHandler *handler.RecommendationHandler
	preferenceHandler     *handler.PreferenceHandler
	interactionHandler    *handler.InteractionHandler
	lostFoundHandler      *handler.LostFoundHandler
	authMiddleware        *middleware.AuthMiddleware
}

func NewRouter(
	matchHandler *handler.MatchHandler,
	recommendationHandler *handler.RecommendationHandler,
	preferenceHandler *handler.PreferenceHandler,
	interactionHandler *handler.InteractionHandler,
	lostFoundHandler *handler.LostFoundHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		matchHandler:          matchHandler,
		recommendationHandler: recommendationHandler,
		preferenceHandler:     preferenceHandler,
		interactionHandler:    interactionHandler,
		lostFoundHandler:      lostFoundHandler,
		authMiddleware:        authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()
	router.Use(middleware.RequestID())

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Match routes
			matches := protected.Group("/matches")
			{
				matches.GET("", r.matchHandler.GetMatches)
				matches.POST("/refresh", r.matchHandler.RefreshScores)
			}

			protected.GET("/recommendations", r.recommendationHandler.GetRecommendations)

			// Preference routes
			preferences := protected.Group("/preferences")
			{
				preferences.GET("", r.preferenceHandler.GetPreferences)
				preferences.PUT("", r.preferenceHandler.UpdatePreferences)
			}

			// Interaction routes
			protected.POST("/interactions", r.interactionHandler.Record)

			// Lost and found routes
			protected.GET("/lost-found/:report_id/matches", r.lostFoundHandler.FindMatches)
		}
	}

	return router
}
