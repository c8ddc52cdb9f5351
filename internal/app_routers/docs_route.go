package approuters

import (
	"net/http"

	_ "foodhub/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const docsIndex = "/api-docs/index.html"

// DocsRouters serves Swagger UI over the registered OpenAPI document.
func DocsRouters(router *gin.Engine) {
	ui := ginSwagger.WrapHandler(swaggerFiles.Handler)

	router.GET("/api-docs/*any", func(c *gin.Context) {
		if p := c.Param("any"); p == "" || p == "/" {
			c.Redirect(http.StatusFound, docsIndex)
			return
		}
		ui(c)
	})
}
