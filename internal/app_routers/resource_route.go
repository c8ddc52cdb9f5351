package approuters

import (
	"foodhub/internal/auth"
	"foodhub/internal/configuration"
	"foodhub/internal/handler"

	"github.com/gin-gonic/gin"
)

// ResourceRouters mounts the four collections. Reads are public, writes
// need a session.
func ResourceRouters(router *gin.Engine, container *configuration.Container) {
	mountResource(router.Group("/users"), container.Users)
	mountResource(router.Group("/products"), container.Products)
	mountResource(router.Group("/orders"), container.Orders)
	mountResource(router.Group("/reviews"), container.Reviews)
}

func mountResource(group *gin.RouterGroup, h handler.ResourceHandler) {
	group.GET("", h.List)
	group.GET("/:id", h.Get)

	guarded := group.Group("", auth.RequireSession())
	{
		guarded.POST("", h.Create)
		guarded.PUT("/:id", h.Update)
		guarded.DELETE("/:id", h.Delete)
	}
}
