package server

import (
  "strings"
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
  "github.com/sparkbridge/hrms-backend/internal/handlers"
  "github.com/sparkbridge/hrms-backend/internal/middleware"
  "github.com/sparkbridge/hrms-backend/internal/types"
  "github.com/sparkbridge/hrms-backend/internal/utils"
)

type RouterConfig struct {
  AuthHandler             *handlers.AuthHandler
  AuthMiddleware          *middleware.AuthMiddleware
  OfficerHandler          *handlers.OfficerHandler
  ServiceHistoryHandler   *handlers.ServiceHistoryHandler
  MasterDataHandler       *handlers.MasterDataHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()
  router.Use(otelgin.Middleware("hrms-backend"))

  // Cors
  allowOrigins := strings.Split(utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000", nil), ",")
  router.Use(cors.New(cors.Config{
    AllowOrigins:     allowOrigins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/login", cfg.AuthHandler.Login)
  router.POST("/otp/request", cfg.AuthHandler.RequestOTP)
  router.POST("/otp/verify", cfg.AuthHandler.VerifyOTP)
  router.GET("/otp/cooldown", cfg.AuthHandler.OTPCooldown)
  router.POST("/password/strength", cfg.AuthHandler.PasswordStrength)

// ===============
// || Protected ||
// ===============
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)
  protected.POST("/password/change", cfg.AuthHandler.ChangePassword)
  // Officer
  protected.GET("/officer/profile", cfg.OfficerHandler.GetProfile)
  protected.PUT("/officer/profile", cfg.OfficerHandler.UpdateProfile)
  // Service history
  protected.GET("/officer/service-history", cfg.ServiceHistoryHandler.List)
  protected.POST("/officer/service-history", cfg.ServiceHistoryHandler.Create)
  protected.PUT("/officer/service-history/:id", cfg.ServiceHistoryHandler.Update)
  protected.DELETE("/officer/service-history/:id", cfg.ServiceHistoryHandler.Delete)
  // Master data
  protected.GET("/masterdata", cfg.MasterDataHandler.GetAll)

// ===============
// || Operator  ||
// ===============
  operator := protected.Group("/")
  operator.Use(cfg.AuthMiddleware.RequireRole(types.RoleOperator))
  operator.POST("/spark/sync", cfg.OfficerHandler.IngestSparkSync)

  return router
}
