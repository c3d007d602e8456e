package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/sparkbridge/hrms-backend/internal/logger"
  "github.com/sparkbridge/hrms-backend/internal/types"
)

type SparkSyncRepo interface {
  Upsert(ctx context.Context, tx *gorm.DB, sync *types.SparkSync) error
  GetByOfficerIDs(ctx context.Context, tx *gorm.DB, officerIDs []uuid.UUID) ([]*types.SparkSync, error)
}

type sparkSyncRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSparkSyncRepo(db *gorm.DB, baseLog *logger.Logger) SparkSyncRepo {
  return &sparkSyncRepo{db: db, log: baseLog.With("repo", "SparkSyncRepo")}
}

func (sr *sparkSyncRepo) Upsert(ctx context.Context, tx *gorm.DB, sync *types.SparkSync) error {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  return transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "officer_id"}},
      UpdateAll: true,
    }).
    Create(sync).Error
}

func (sr *sparkSyncRepo) GetByOfficerIDs(ctx context.Context, tx *gorm.DB, officerIDs []uuid.UUID) ([]*types.SparkSync, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  var results []*types.SparkSync
  if len(officerIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("officer_id IN ?", officerIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
