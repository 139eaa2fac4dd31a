package routes

import (
	"communityfix-be/controllers"
	"communityfix-be/middlewares"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue routes
func IssueRoutes(r *gin.Engine) {
	issue := r.Group("/api/issues")
	issue.Use(middlewares.AuthMiddleware())
	{
		issue.POST("", middlewares.IssueRateLimiter(10), controllers.CreateIssue)
		issue.GET("", controllers.GetAllIssues)
		issue.GET("/mine", controllers.GetMyIssues)
		issue.GET("/:id", controllers.GetIssue)
		issue.DELETE("/:id", controllers.DeleteIssue)
		issue.PATCH("/:id/status", middlewares.AdminMiddleware(), controllers.UpdateIssueStatus)
	}
}
