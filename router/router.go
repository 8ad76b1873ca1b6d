// router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/controller"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/middleware"
)

// Options holds the transport-level settings applied around the
// controllers.
type Options struct {
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

func SetupRouter(
	gatewayController *controller.GatewayController,
	auditController *controller.AuditController,
	opts Options,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RequestID())
	if opts.RateLimitEnabled {
		router.Use(middleware.RateLimiter(opts.RateLimitRequests, opts.RateLimitWindow))
	}

	api := router.Group("/")

	gatewayController.RegisterRoutes(api)
	auditController.RegisterRoutes(api)

	return router
}
