package routes

import (
	"communityfix-be/controllers"
	"communityfix-be/middlewares"

	"github.com/gin-gonic/gin"
)

// UserRoutes sets up the profile routes
func UserRoutes(r *gin.Engine) {
	user := r.Group("/api/users")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.PUT("/password", controllers.ChangePassword)
	}
}
