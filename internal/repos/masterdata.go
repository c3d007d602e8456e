package repos

import (
  "context"
  "errors"
  "gorm.io/gorm"
  "github.com/sparkbridge/hrms-backend/internal/logger"
  "github.com/sparkbridge/hrms-backend/internal/types"
)

type MasterDataRepo interface {
  ReplaceKind(ctx context.Context, tx *gorm.DB, kind string, records []*types.MasterRecord) error
  GetByKind(ctx context.Context, tx *gorm.DB, kind string) ([]*types.MasterRecord, error)
  GetByKindAndCode(ctx context.Context, tx *gorm.DB, kind, code string) (*types.MasterRecord, error)
  GetPermissions(ctx context.Context, tx *gorm.DB, roleID int, kind string) ([]*types.RolePermission, error)
}

type masterDataRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMasterDataRepo(db *gorm.DB, baseLog *logger.Logger) MasterDataRepo {
  return &masterDataRepo{db: db, log: baseLog.With("repo", "MasterDataRepo")}
}

func (mr *masterDataRepo) ReplaceKind(ctx context.Context, tx *gorm.DB, kind string, records []*types.MasterRecord) error {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }
  return transaction.WithContext(ctx).Transaction(func(inner *gorm.DB) error {
    if err := inner.Where("kind = ?", kind).Delete(&types.MasterRecord{}).Error; err != nil {
      return err
    }
    if len(records) == 0 {
      return nil
    }
    return inner.Create(&records).Error
  })
}

func (mr *masterDataRepo) GetByKind(ctx context.Context, tx *gorm.DB, kind string) ([]*types.MasterRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }
  var results []*types.MasterRecord
  if err := transaction.WithContext(ctx).
    Where("kind = ?", kind).
    Order("sort_order ASC, label ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (mr *masterDataRepo) GetByKindAndCode(ctx context.Context, tx *gorm.DB, kind, code string) (*types.MasterRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }
  var result types.MasterRecord
  err := transaction.WithContext(ctx).
    Where("kind = ? AND code = ?", kind, code).
    First(&result).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (mr *masterDataRepo) GetPermissions(ctx context.Context, tx *gorm.DB, roleID int, kind string) ([]*types.RolePermission, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }
  var results []*types.RolePermission
  if err := transaction.WithContext(ctx).
    Where("role_id = ? AND kind = ?", roleID, kind).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
