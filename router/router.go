// router/router.go

package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MichaelGetu-git/Security-Project/controller"
	"github.com/MichaelGetu-git/Security-Project/middleware"
)

// Settings carries the router's middleware configuration.
type Settings struct {
	RateLimitRequests int
	RateLimitDuration time.Duration
	RateLimitStore    middleware.RateLimitStore
	JWTSecret         string
	JWTIssuer         string
	Resolver          middleware.SubjectResolver
}

func SetupRouter(controllers *controller.Controllers, settings Settings) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(settings.RateLimitStore, settings.RateLimitRequests, settings.RateLimitDuration))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(settings.JWTSecret, settings.JWTIssuer, settings.Resolver))

	controllers.Document.RegisterRoutes(api)
	controllers.AccessRequest.RegisterRoutes(api)
	controllers.Policy.RegisterRoutes(api)
	controllers.User.RegisterRoutes(api)
	controllers.Audit.RegisterRoutes(api)

	return router
}
