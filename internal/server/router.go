package server

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"daily-diet-api/internal/auth"
	"daily-diet-api/internal/handler"
	"daily-diet-api/internal/hub"
	"daily-diet-api/internal/middleware"
	"daily-diet-api/internal/monitoring"
	"daily-diet-api/internal/service"
)

// Repository is everything the HTTP surface needs from persistence.
type Repository interface {
	service.AccountRepository
	service.MealRepository
	handler.Pinger
}

type Deps struct {
	Store        Repository
	TokenConfig  auth.TokenConfig
	SecureCookie bool
	// AuthLimiter throttles /users/*. The caller owns it and stops it on
	// shutdown; nil disables the limit.
	AuthLimiter *middleware.RateLimiter
	Log         logrus.FieldLogger
}

func NewRouter(deps Deps) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	httpMetrics := monitoring.NewHTTPMetrics()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMetrics.Middleware())
	r.Use(middleware.RequestLogger(log))

	healthHandler := &handler.HealthHandler{DB: deps.Store, Log: log}
	r.GET("/health", healthHandler.Check)
	r.GET("/metrics", gin.WrapH(httpMetrics.Handler()))

	accounts := service.NewAccounts(deps.Store)
	liveFeed := hub.New(log)
	meals := service.NewMeals(deps.Store, liveFeed)

	users := r.Group("/users")
	if deps.AuthLimiter != nil {
		users.Use(middleware.RateLimitMiddleware(deps.AuthLimiter))
	}
	userHandler := &handler.UserHandler{
		Accounts:     accounts,
		TokenConfig:  deps.TokenConfig,
		SecureCookie: deps.SecureCookie,
		Log:          log,
	}
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)

	protected := r.Group("/meals")
	protected.Use(middleware.RequireSession(accounts, deps.TokenConfig, log))

	mealHandler := &handler.MealHandler{Meals: meals, Log: log}
	protected.GET("", mealHandler.List)
	protected.POST("", mealHandler.Create)
	protected.GET("/metrics", mealHandler.Metrics)
	protected.GET("/:id", mealHandler.Get)
	protected.PUT("/:id", mealHandler.Update)
	protected.DELETE("/:id", mealHandler.Delete)

	streamHandler := &handler.StreamHandler{Hub: liveFeed, Log: log}
	protected.GET("/stream", streamHandler.Serve)

	return r
}
