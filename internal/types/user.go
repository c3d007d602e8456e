package types

import (
  "time"
  "github.com/google/uuid"
)

// Role IDs are fixed by the RBAC master data.
const (
  RoleOfficer  = 1
  RoleOperator = 2
)

// User is a login account: an AIS officer or a GAD back-office operator.
type User struct {
  ID                  uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Mobile              string      `gorm:"uniqueIndex;not null;column:mobile" json:"mobile"`
  Email               string      `gorm:"index;column:email" json:"email"`
  Password            string      `gorm:"not null;column:password" json:"-"`
  RoleID              int         `gorm:"not null;default:1;column:role_id" json:"role_id"`
  OfficerID           *uuid.UUID  `gorm:"type:uuid;index;column:officer_id" json:"officer_id,omitempty"`
  PasswordChangedAt   time.Time   `gorm:"column:password_changed_at" json:"password_changed_at"`
  CreatedAt           time.Time   `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt           time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string {
  return "user"
}
