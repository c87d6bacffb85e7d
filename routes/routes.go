package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"receptionist/handlers"
)

// RegisterWebhookRoutes registers the voice-agent webhook endpoints.
func RegisterWebhookRoutes(r *gin.Engine, wh *handlers.WebhookHandler) {
	webhooks := r.Group("/webhooks")
	{
		webhooks.POST("/check-availability", wh.CheckAvailability)
		webhooks.POST("/confirm-meeting", wh.ConfirmMeeting)
	}
}

// RegisterAPIRoutes registers the frontend-facing endpoints: call
// triggering, snapshot polling, and window availability queries.
func RegisterAPIRoutes(r *gin.Engine, wh *handlers.WebhookHandler, ch *handlers.CallHandler) {
	api := r.Group("/api")
	{
		api.POST("/start-call", ch.StartCall)
		api.GET("/availability", wh.GetAvailability)
		api.GET("/availability/free", wh.FreeSlots)
		api.GET("/last-event", wh.GetLastEvent)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, wh *handlers.WebhookHandler, ch *handlers.CallHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterWebhookRoutes(r, wh)
	RegisterAPIRoutes(r, wh, ch)
}
