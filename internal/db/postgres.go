package db

import (
  "fmt"
  "gorm.io/driver/postgres"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  "github.com/sparkbridge/hrms-backend/internal/types"
  "github.com/sparkbridge/hrms-backend/internal/utils"
  "github.com/sparkbridge/hrms-backend/internal/logger"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

// NewPostgresService connects to Postgres, or to a local sqlite file when
// POSTGRES_HOST is empty (local development fallback).
func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  postgresHost := utils.GetEnv("POSTGRES_HOST", "", log)
  var dialector gorm.Dialector
  if postgresHost == "" {
    sqlitePath := utils.GetEnv("SQLITE_PATH", "hrms.db", log)
    serviceLog.Warn("POSTGRES_HOST not set, falling back to sqlite", "path", sqlitePath)
    dialector = sqlite.Open(sqlitePath)
  } else {
    postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
    postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
    postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
    postgresName := utils.GetEnv("POSTGRES_NAME", "hrms", log)
    dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)
    dialector = postgres.Open(dsn)
  }

  serviceLog.Info("Connecting to database...")
  gormDB, err := gorm.Open(dialector, &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    serviceLog.Error("Failed to connect to database", "error", err)
    return nil, fmt.Errorf("failed to connect to database: %w", err)
  }

  return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.UserToken{},
    &types.Officer{},
    &types.SparkSync{},
    &types.ServiceRecord{},
    &types.MasterRecord{},
    &types.RolePermission{},
  )
  if err != nil {
    s.log.Error("Auto migration failed", "error", err)
    return err
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
