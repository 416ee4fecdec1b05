package auth

import (
	"github.com/gin-gonic/gin"
)

// registers all authentication routes
func RegisterRoutes(router *gin.RouterGroup, gateway IdentityGateway, directory UserDirectory) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", RegisterHandler(gateway, directory))
		authGroup.POST("/login", LoginHandler(gateway, directory))
		authGroup.POST("/google", GoogleAuthHandler(gateway, directory))
		authGroup.POST("/refresh-token", RefreshHandler(gateway))
	}
}
