package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all API v1 routes
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	authed := api.Group("")
	authed.Use(APIKeyAuthMiddleware(h.cfg, h.logger), UserIdentityMiddleware(h.logger))

	// Incident reporting and trust signals
	incidents := authed.Group("/incidents")
	{
		incidents.POST("", h.createIncident)
		incidents.GET("", h.listIncidents)
		incidents.GET("/:id", h.getIncident)
		incidents.POST("/:id/vote", h.voteIncident)
		incidents.POST("/:id/comments", h.addComment)
		incidents.GET("/:id/comments", h.listComments)
	}

	// Alert subscriptions and feed
	alerts := authed.Group("/alerts")
	{
		alerts.POST("/preferences", h.createAlertPreference)
		alerts.GET("/preferences", h.listAlertPreferences)
		alerts.DELETE("/preferences/:id", h.deleteAlertPreference)
		alerts.GET("/feed", h.alertFeed)
	}

	// Health-check stays outside authentication
	api.GET("/system/health", h.healthCheck)
}
