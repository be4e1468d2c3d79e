package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/tasknest-api/internal/middleware"
	"github.com/yukikurage/tasknest-api/internal/models"
)

// TaskAccess resolves the task of a /tasks/:id route for the current user.
// GetTask includes comments; AuthorizeTask does not.
type TaskAccess interface {
	GetTask(taskID, actorID uint64) (*models.Task, error)
	AuthorizeTask(taskID, actorID uint64) (*models.Task, error)
}

// RegisterRoutes mounts the /api routes. Sessions middleware must already be installed on r.
func RegisterRoutes(r gin.IRouter, authHandler *AuthHandler, taskHandler *TaskHandler, tasks TaskAccess) {
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.DELETE("/account", middleware.RequireAuth(), authHandler.DeleteAccount)
		}

		api.GET("/meta", taskHandler.Meta)

		// Task routes (protected)
		tasksGroup := api.Group("/tasks")
		tasksGroup.Use(middleware.RequireAuth())
		{
			tasksGroup.GET("", taskHandler.ListTasks)
			tasksGroup.POST("", taskHandler.CreateTask)
			tasksGroup.POST("/generate", taskHandler.GenerateTasks)

			tasksGroup.GET("/:id", middleware.RequireTaskAccess(tasks.GetTask), taskHandler.GetTask)

			owned := tasksGroup.Group("/:id", middleware.RequireTaskAccess(tasks.AuthorizeTask))
			owned.DELETE("", taskHandler.DeleteTask)
			owned.POST("/toggle", taskHandler.ToggleTask)
			owned.POST("/comments", taskHandler.AddComment)
			owned.GET("/comments", taskHandler.ListComments)
		}

		api.GET("/notifications", middleware.RequireAuth(), taskHandler.Notifications)
		api.GET("/dashboard", middleware.RequireAuth(), taskHandler.Dashboard)
	}
}
