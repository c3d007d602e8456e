package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/sparkbridge/hrms-backend/internal/logger"
  "github.com/sparkbridge/hrms-backend/internal/types"
)

type ServiceRecordRepo interface {
  Create(ctx context.Context, tx *gorm.DB, records []*types.ServiceRecord) ([]*types.ServiceRecord, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ServiceRecord, error)
  GetByOfficerIDs(ctx context.Context, tx *gorm.DB, officerIDs []uuid.UUID) ([]*types.ServiceRecord, error)
  Update(ctx context.Context, tx *gorm.DB, record *types.ServiceRecord) error
  DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type serviceRecordRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewServiceRecordRepo(db *gorm.DB, baseLog *logger.Logger) ServiceRecordRepo {
  return &serviceRecordRepo{db: db, log: baseLog.With("repo", "ServiceRecordRepo")}
}

func (rr *serviceRecordRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.ServiceRecord) ([]*types.ServiceRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  if len(records) == 0 {
    return []*types.ServiceRecord{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
    return nil, err
  }
  return records, nil
}

func (rr *serviceRecordRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ServiceRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  var results []*types.ServiceRecord
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

func (rr *serviceRecordRepo) GetByOfficerIDs(ctx context.Context, tx *gorm.DB, officerIDs []uuid.UUID) ([]*types.ServiceRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  var results []*types.ServiceRecord
  if len(officerIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("officer_id IN ?", officerIDs).
    Order("start_date DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (rr *serviceRecordRepo) Update(ctx context.Context, tx *gorm.DB, record *types.ServiceRecord) error {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  return transaction.WithContext(ctx).Save(record).Error
}

func (rr *serviceRecordRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  if len(ids) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Delete(&types.ServiceRecord{}).Error
}
