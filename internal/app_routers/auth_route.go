package approuters

import (
	"foodhub/internal/configuration"

	"github.com/gin-gonic/gin"
)

func AuthRouters(router *gin.Engine, container *configuration.Container) {
	authRoute := router.Group("/auth")
	{
		authRoute.GET("/login", container.OAuth.Login)
		authRoute.GET("/callback", container.OAuth.Callback)
		authRoute.GET("/logout", container.OAuth.Logout)
		authRoute.GET("/status", container.OAuth.Status)
	}
}
