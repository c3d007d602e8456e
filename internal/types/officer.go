package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// Officer holds the persisted profile for one AIS officer. Field values and
// their provenance tags are stored as JSON maps keyed by the fixed field
// list; operator overrides live in their own bucket so the resolver can
// rank them against SPARK and officer-entered data.
type Officer struct {
  ID               uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
  AISNumber        string              `gorm:"uniqueIndex;column:ais_number" json:"ais_number"`
  Fields           datatypes.JSONMap   `gorm:"column:fields" json:"fields"`
  OperatorFields   datatypes.JSONMap   `gorm:"column:operator_fields" json:"operator_fields"`
  FieldSources     datatypes.JSONMap   `gorm:"column:field_sources" json:"field_sources"`
  ProfileStatus    string              `gorm:"column:profile_status;default:draft" json:"profile_status"`
  CreatedAt        time.Time           `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt        time.Time           `gorm:"not null;default:now()" json:"updated_at"`
}

func (Officer) TableName() string {
  return "officer"
}

// SparkSync is the latest raw payroll feed for an officer: the profile
// portion plus the service_details array, stored as received (dates and
// codes unnormalized).
type SparkSync struct {
  ID               uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
  OfficerID        uuid.UUID           `gorm:"uniqueIndex;not null;column:officer_id" json:"officer_id"`
  Officer          *Officer            `gorm:"constraint:OnDelete:CASCADE;foreignKey:OfficerID;references:ID" json:"-"`
  Profile          datatypes.JSONMap   `gorm:"column:profile" json:"profile"`
  ServiceDetails   datatypes.JSON      `gorm:"column:service_details" json:"service_details"`
  SyncedAt         time.Time           `gorm:"column:synced_at" json:"synced_at"`
}

func (SparkSync) TableName() string {
  return "spark_sync"
}
