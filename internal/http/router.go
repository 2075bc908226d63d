// Package http assembles the gin engine: middleware chain, route groups and
// the guard placement that mirrors the platform's protected navigation tree.
package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"qfs-ledger-gateway/internal/common/config"
	"qfs-ledger-gateway/internal/common/middleware"
	adminhttp "qfs-ledger-gateway/internal/features/admin/delivery/http"
	adminservice "qfs-ledger-gateway/internal/features/admin/service"
	authhttp "qfs-ledger-gateway/internal/features/auth/delivery/http"
	authservice "qfs-ledger-gateway/internal/features/auth/service"
	"qfs-ledger-gateway/internal/features/card"
	"qfs-ledger-gateway/internal/features/kyc"
	"qfs-ledger-gateway/internal/features/prices"
	sessionmw "qfs-ledger-gateway/internal/features/session/middleware"
	"qfs-ledger-gateway/internal/features/session/store"
	"qfs-ledger-gateway/internal/features/swap"
	wallethttp "qfs-ledger-gateway/internal/features/wallet/delivery/http"
	walletservice "qfs-ledger-gateway/internal/features/wallet/service"
	"qfs-ledger-gateway/internal/platform/redis"
	"qfs-ledger-gateway/internal/upstream"
)

// Deps carries everything the router needs wired in from main.
type Deps struct {
	Config   *config.Config
	Redis    *redis.Client
	Sessions *store.Resolver
	Backend  *upstream.Client
	Prices   *prices.Service
}

func NewRouter(deps Deps) *gin.Engine {
	if !deps.Config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{deps.Config.Server.Origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/health/ready", func(c *gin.Context) {
		ctx := c.Request.Context()
		if err := deps.Redis.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "redis": err.Error()})
			return
		}
		if err := deps.Backend.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "upstream": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	guard := sessionmw.NewGuard(deps.Sessions, deps.Config.Session.CookieName)

	public := router.Group("/api")
	protected := router.Group("/api", guard.RequireSession())
	admin := router.Group("/api/admin", guard.RequireAdmin())
	adminUsers := router.Group("/api", guard.RequireAdmin())

	authSvc := authservice.NewService(deps.Backend, deps.Sessions)
	authhttp.NewHandler(authSvc, guard, deps.Config.Session.CookieName, deps.Config.Session.CookieSecure).
		RegisterRoutes(public, protected)

	walletSvc := walletservice.NewService(deps.Backend)
	wallethttp.NewHandler(walletSvc).RegisterRoutes(protected)

	swap.NewHandler(swap.NewService(deps.Backend)).RegisterRoutes(protected)
	kyc.NewHandler(deps.Backend).RegisterRoutes(protected)
	card.NewHandler(card.NewService(deps.Backend)).RegisterRoutes(protected)
	prices.NewHandler(deps.Prices).RegisterRoutes(public, protected)

	adminSvc := adminservice.NewService(deps.Backend)
	adminhttp.NewHandler(adminSvc).RegisterRoutes(admin, adminUsers)

	return router
}
