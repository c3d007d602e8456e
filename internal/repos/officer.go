package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/sparkbridge/hrms-backend/internal/logger"
  "github.com/sparkbridge/hrms-backend/internal/types"
)

type OfficerRepo interface {
  Create(ctx context.Context, tx *gorm.DB, officers []*types.Officer) ([]*types.Officer, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Officer, error)
  Update(ctx context.Context, tx *gorm.DB, officer *types.Officer) error
}

type officerRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewOfficerRepo(db *gorm.DB, baseLog *logger.Logger) OfficerRepo {
  return &officerRepo{db: db, log: baseLog.With("repo", "OfficerRepo")}
}

func (or *officerRepo) Create(ctx context.Context, tx *gorm.DB, officers []*types.Officer) ([]*types.Officer, error) {
  transaction := tx
  if transaction == nil {
    transaction = or.db
  }
  if len(officers) == 0 {
    return []*types.Officer{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&officers).Error; err != nil {
    return nil, err
  }
  return officers, nil
}

func (or *officerRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Officer, error) {
  transaction := tx
  if transaction == nil {
    transaction = or.db
  }
  var results []*types.Officer
  if len(ids) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (or *officerRepo) Update(ctx context.Context, tx *gorm.DB, officer *types.Officer) error {
  transaction := tx
  if transaction == nil {
    transaction = or.db
  }
  return transaction.WithContext(ctx).Save(officer).Error
}
