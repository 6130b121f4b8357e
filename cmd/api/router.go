package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/middleware"
	"blog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
		gzip.Gzip(gzip.DefaultCompression),
	)
	if c.RateLimiter != nil {
		router.Use(middleware.RateLimit(c.RateLimiter))
	}

	auth := middleware.AuthMiddleware(c.JWTManager, c.UserService)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c, auth)
		setupPostRoutes(v1, c, auth)
		setupTagRoutes(v1, c)
		setupSearchRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", c.UserHandler.Register)
		authGroup.POST("/login", c.UserHandler.Login)
		authGroup.POST("/refresh", c.UserHandler.RefreshToken)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	users := v1.Group("/users")
	users.Use(auth)
	{
		users.GET("/me", c.UserHandler.GetProfile)
	}
}

// ========================================
// POST ROUTES
// ========================================
func setupPostRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	posts := v1.Group("/posts")
	{
		// Public
		posts.GET("", c.PostHandler.ListPosts)
		posts.GET("/:id", c.PostHandler.GetPost)

		// Author
		posts.POST("", auth, c.PostHandler.CreatePost)
		posts.PATCH("/:id", auth, c.PostHandler.UpdatePost)
		posts.DELETE("/:id", auth, c.PostHandler.DeletePost)
	}

	me := v1.Group("/me")
	me.Use(auth)
	{
		me.GET("/posts", c.PostHandler.ListMyPosts)
		me.GET("/posts/:id", c.PostHandler.GetMyPost)
	}
}

// ========================================
// TAG ROUTES
// ========================================
func setupTagRoutes(v1 *gin.RouterGroup, c *container.Container) {
	tags := v1.Group("/tags")
	{
		tags.GET("", c.TagHandler.ListTags)
		tags.GET("/:id/posts", c.PostHandler.ListPostsByTag)
	}
}

// ========================================
// SEARCH ROUTES
// ========================================
func setupSearchRoutes(v1 *gin.RouterGroup, c *container.Container) {
	search := v1.Group("/search")
	{
		search.GET("/posts", c.SearchHandler.SearchPosts)
		search.GET("/tags/popular", c.SearchHandler.PopularTags)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil {
			dbStatus = "disconnected"
		} else if err := appCtx.DB.HealthCheck(c.Request.Context()); err != nil {
			dbStatus = "error: " + err.Error()
		} else if stats, err := appCtx.DB.Stats(); err == nil {
			health["database_pool"] = stats
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = "error: " + err.Error()
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			health["status"] = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
