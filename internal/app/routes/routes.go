package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rahulk/studyshare/internal/app/controllers"
	"github.com/rahulk/studyshare/internal/app/models"
	"github.com/rahulk/studyshare/internal/middleware"
)

// Controllers bundles every controller the router needs.
type Controllers struct {
	Auth        *controllers.AuthController
	User        *controllers.UserController
	Application *controllers.ApplicationController
	Resource    *controllers.ResourceController
	Rating      *controllers.RatingController
	Comment     *controllers.CommentController
}

// SetupRoutes registers all API routes on the engine.
func SetupRoutes(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
		auth.POST("/logout", c.Auth.Logout)
	}

	resources := v1.Group("/resources")
	{
		resources.GET("", c.Resource.List)
		resources.GET("/facets", c.Resource.Facets)
		resources.GET("/:id", c.Resource.Get)
		resources.GET("/:id/download", c.Resource.Download)
		resources.GET("/:id/comments", c.Comment.List)
	}

	// Authenticated routes
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/users/me", c.User.GetProfile)
		authenticated.PUT("/users/me", c.User.UpdateProfile)
		authenticated.PUT("/users/me/photo", c.User.UpdatePhoto)

		authenticated.POST("/applications", c.Application.Submit)
		authenticated.GET("/applications/me", c.Application.GetOwn)

		authenticated.POST("/resources", c.Resource.Upload)
		authenticated.GET("/resources/mine", c.Resource.ListMine)
		authenticated.DELETE("/resources/:id", c.Resource.Delete)

		authenticated.PUT("/resources/:id/ratings", c.Rating.Submit)
		authenticated.GET("/resources/:id/ratings/me", c.Rating.GetOwn)

		authenticated.POST("/resources/:id/comments", c.Comment.Add)
		authenticated.DELETE("/comments/:id", c.Comment.Delete)
	}

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/applications", c.Application.List)
		admin.POST("/applications/:id/approve", c.Application.Approve)
		admin.POST("/applications/:id/reject", c.Application.Reject)
		admin.PUT("/users/:id/role", c.User.SetRole)
	}
}
