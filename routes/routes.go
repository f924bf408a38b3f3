package routes

import (
	"time"

	"knowshare/handlers"
	"knowshare/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(
	jwtSecret string,
	posts *handlers.PostHandler,
	comments *handlers.CommentHandler,
	interactions *handlers.InteractionHandler,
	taxonomy *handlers.TaxonomyHandler,
	search *handlers.SearchHandler,
) *gin.Engine {
	router := gin.Default()

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Knowshare API is running",
			"time":    time.Now().Unix(),
		})
	})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8080", "http://127.0.0.1:8080", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Public read surface
	router.GET("/api/categories", taxonomy.List)

	// Protected routes group
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware(jwtSecret))

	// Posts
	protected.POST("/posts", posts.Create)
	protected.GET("/posts", posts.List)
	protected.GET("/posts/:id", posts.Get)
	protected.PUT("/posts/:id", posts.Update)
	protected.DELETE("/posts/:id", posts.Delete)

	// Comments
	protected.POST("/posts/:id/comments", comments.Create)
	protected.DELETE("/comments/:id", comments.Delete)

	// Interactions
	protected.POST("/posts/:id/interactions", interactions.Create)

	// Search; rate limited because audio search calls out to transcription
	searchGroup := protected.Group("/search")
	searchGroup.Use(middleware.RateLimitMiddleware(30, time.Minute))
	searchGroup.GET("/text", search.ByText)
	searchGroup.POST("/audio", search.ByAudio)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error": "Endpoint not found",
			"path":  c.Request.URL.Path,
		})
	})

	return router
}
