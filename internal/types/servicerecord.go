package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// ServiceRecord is one persisted employment period. Indexed columns carry
// the match key (designation, department, start date); the rest of the
// period plus the per-field provenance map live in JSON columns.
type ServiceRecord struct {
  ID               uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
  OfficerID        uuid.UUID           `gorm:"index;not null;column:officer_id" json:"officer_id"`
  Officer          *Officer            `gorm:"constraint:OnDelete:CASCADE;foreignKey:OfficerID;references:ID" json:"-"`
  Designation      string              `gorm:"index;column:designation" json:"designation"`
  Department       string              `gorm:"index;column:department" json:"department"`
  StartDate        string              `gorm:"index;column:start_date" json:"start_date"`
  EndDate          string              `gorm:"column:end_date" json:"end_date"`
  Fields           datatypes.JSONMap   `gorm:"column:fields" json:"fields"`
  FieldSources     datatypes.JSONMap   `gorm:"column:field_sources" json:"field_sources"`
  CreatedAt        time.Time           `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt        time.Time           `gorm:"not null;default:now()" json:"updated_at"`
}

func (ServiceRecord) TableName() string {
  return "service_record"
}
