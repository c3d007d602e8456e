package main

import (
  "context"
  "fmt"
  "os"
  "time"
  redisclient "github.com/sparkbridge/hrms-backend/internal/clients/redis"
  "github.com/sparkbridge/hrms-backend/internal/clients/sms"
  "github.com/sparkbridge/hrms-backend/internal/db"
  "github.com/sparkbridge/hrms-backend/internal/handlers"
  "github.com/sparkbridge/hrms-backend/internal/logger"
  "github.com/sparkbridge/hrms-backend/internal/middleware"
  "github.com/sparkbridge/hrms-backend/internal/observability"
  "github.com/sparkbridge/hrms-backend/internal/repos"
  "github.com/sparkbridge/hrms-backend/internal/server"
  "github.com/sparkbridge/hrms-backend/internal/services"
  "github.com/sparkbridge/hrms-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Tracing
  shutdownTracing := observability.InitOTel(context.Background(), log, observability.OtelConfig{
    ServiceName: utils.GetEnv("OTEL_SERVICE_NAME", "hrms-backend", log),
    Environment: utils.GetEnv("APP_ENV", "development", log),
    Version:     utils.GetEnv("APP_VERSION", "dev", log),
  })
  if shutdownTracing != nil {
    defer func() {
      ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
      defer cancel()
      if err := shutdownTracing(ctx); err != nil {
        log.Warn("Tracing shutdown failed", "error", err)
      }
    }()
  }

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
  passwordExpiryDays := utils.GetEnvAsInt("PASSWORD_EXPIRY_DAYS", 90, log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Redis
  store, err := redisclient.NewStore(log)
  if err != nil {
    log.Error("Redis init failed", "error", err)
    os.Exit(1)
  }
  defer store.Close()

  // SMS
  smsClient := sms.NewFromEnv(log)

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  officerRepo := repos.NewOfficerRepo(thePG, log)
  sparkSyncRepo := repos.NewSparkSyncRepo(thePG, log)
  serviceRecordRepo := repos.NewServiceRecordRepo(thePG, log)
  masterDataRepo := repos.NewMasterDataRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  masterDataService := services.NewMasterDataService(thePG, log, masterDataRepo, store)
  authService := services.NewAuthService(
    thePG,
    log,
    userRepo,
    userTokenRepo,
    masterDataRepo,
    store,
    jwtSecretKey,
    time.Duration(accessTokenTTL)*time.Second,
    time.Duration(refreshTokenTTL)*time.Second,
    passwordExpiryDays,
  )
  otpService := services.NewOTPService(log, store, smsClient, authService)
  officerService := services.NewOfficerService(thePG, log, officerRepo, sparkSyncRepo, masterDataService)
  serviceHistoryService := services.NewServiceHistoryService(thePG, log, serviceRecordRepo, sparkSyncRepo, officerRepo)

  if seedPath := utils.GetEnv("MASTER_DATA_SEED", "", log); seedPath != "" {
    if err := masterDataService.SeedFromYAML(context.Background(), seedPath); err != nil {
      log.Warn("Master data seed failed", "error", err)
    }
  }

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService, otpService)
  officerHandler := handlers.NewOfficerHandler(officerService)
  serviceHistoryHandler := handlers.NewServiceHistoryHandler(serviceHistoryService)
  masterDataHandler := handlers.NewMasterDataHandler(masterDataService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:           authHandler,
    AuthMiddleware:        authMiddleware,
    OfficerHandler:        officerHandler,
    ServiceHistoryHandler: serviceHistoryHandler,
    MasterDataHandler:     masterDataHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
