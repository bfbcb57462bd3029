package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/peoplehub/user-access-service/internal/infra/config"
	"github.com/peoplehub/user-access-service/internal/transport/http/handlers"
	"github.com/peoplehub/user-access-service/internal/transport/http/middleware"
	"github.com/peoplehub/user-access-service/internal/usecase"
)

// Dependencies carries everything the HTTP router needs.
type Dependencies struct {
	Config      *config.AppConfig
	Logger      *zap.Logger
	Auth        *usecase.AuthService
	Users       *usecase.UserService
	PageAccess  *usecase.PageAccessService
	Enterprises *usecase.EnterpriseService
	RateLimiter *middleware.RateLimiter
	Metrics     *middleware.HTTPMetrics
}

// Register wires middleware and handlers into a gin engine.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config != nil && deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.EnrichContext())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.CORS([]string{"*"}))

	if deps.Metrics != nil {
		router.Use(deps.Metrics.Handler())
	}

	health := handlers.NewHealthHandler()
	router.GET("/healthz", health.Status)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := handlers.NewAuthHandler(deps.Auth, deps.Logger)
	userHandler := handlers.NewUserHandler(deps.Users, deps.Logger)
	pageHandler := handlers.NewPageAccessHandler(deps.PageAccess, deps.Logger)
	enterpriseHandler := handlers.NewEnterpriseHandler(deps.Enterprises, deps.Logger)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		login := auth.Group("")
		if deps.RateLimiter != nil && deps.Config != nil {
			login.Use(deps.RateLimiter.RateLimit(middleware.RateLimitRule{
				Name:       "login",
				Limit:      deps.Config.RateLimit.LoginMaxAttempts,
				Window:     deps.Config.RateLimit.WindowDuration,
				Identifier: middleware.ClientIPIdentifier(),
			}))
		}
		login.POST("/login", authHandler.Login)

		auth.GET("/me", middleware.RequireAuth(deps.Auth), authHandler.Me)
	}

	protected := v1.Group("")
	protected.Use(middleware.RequireAuth(deps.Auth))
	if deps.RateLimiter != nil && deps.Config != nil {
		protected.Use(deps.RateLimiter.RateLimit(middleware.RateLimitRule{
			Name:       "api",
			Limit:      deps.Config.RateLimit.WriteMaxAttempts,
			Window:     deps.Config.RateLimit.WindowDuration,
			Identifier: middleware.ClientIPIdentifier(),
		}))
	}

	users := protected.Group("/users")
	{
		users.POST("", userHandler.Create)
		users.GET("", userHandler.List)
		users.GET("/:id", userHandler.Get)
		users.DELETE("/:id", userHandler.Deactivate)
		users.GET("/:id/reports", userHandler.Reports)
		users.PUT("/:id/manager", userHandler.AssignManager)

		users.GET("/:id/page-access", pageHandler.ListOverrides)
		users.POST("/:id/page-access/grant", pageHandler.Grant)
		users.POST("/:id/page-access/revoke", pageHandler.Revoke)
		users.POST("/:id/page-access/grant-batch", pageHandler.GrantBatch)
		users.POST("/:id/page-access/revoke-batch", pageHandler.RevokeBatch)
	}

	pages := protected.Group("/pages")
	{
		pages.GET("", pageHandler.Catalog)
		pages.GET("/mine", pageHandler.MyPages)
		pages.GET("/overrides/mine", pageHandler.MyOverrides)
		pages.GET("/:page/access", pageHandler.CheckAccess)
	}

	enterprises := protected.Group("/enterprises")
	{
		enterprises.POST("", enterpriseHandler.Create)
		enterprises.GET("", enterpriseHandler.List)
		enterprises.GET("/:id", enterpriseHandler.Get)
	}

	return router
}
