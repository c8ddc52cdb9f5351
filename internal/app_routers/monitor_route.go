package approuters

import (
	"net/http"

	"foodhub/internal/configuration"

	"github.com/gin-gonic/gin"
)

// MonitorRouters sets up the live feed and its statistics
func MonitorRouters(router *gin.Engine, container *configuration.Container) {
	mongo := container.Config.Mongo
	known := map[string]bool{
		mongo.UsersCollection:    true,
		mongo.ProductsCollection: true,
		mongo.OrdersCollection:   true,
		mongo.ReviewsCollection:  true,
	}

	// GET /ws/events?resource=products - subscribe to change events
	router.GET("/ws/events", func(c *gin.Context) {
		resource := c.Query("resource")
		if resource != "" && !known[resource] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown resource " + resource})
			return
		}
		container.Hub.ServeWS(c.Writer, c.Request, resource)
	})

	monitorGroup := router.Group("/api/monitor")
	{
		// GET /api/monitor/stats - Get hub statistics
		monitorGroup.GET("/stats", container.Monitor.GetHubStats)
	}
}
