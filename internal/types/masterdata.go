package types

// Master-data kinds served by the lookup endpoint.
var MasterKinds = []string{
  "recruitment",
  "cadre",
  "gender",
  "state",
  "district",
  "designation",
  "department",
  "ministry",
}

// MasterRecord is one row of an id-to-label reference table. Kind selects
// the table (gender, state, ...); Code is the SPARK-side short code used
// for feed resolution (gender letter, state abbreviation).
type MasterRecord struct {
  ID         uint     `gorm:"primaryKey;autoIncrement" json:"id"`
  Kind       string   `gorm:"index:idx_master_kind_code,priority:1;not null;column:kind" json:"kind"`
  Code       string   `gorm:"index:idx_master_kind_code,priority:2;column:code" json:"code"`
  Label      string   `gorm:"not null;column:label" json:"label"`
  SortOrder  int      `gorm:"column:sort_order" json:"sort_order"`
}

func (MasterRecord) TableName() string {
  return "master_record"
}

// RolePermission is one RBAC grant; Kind distinguishes the two best-effort
// post-login fetches (menu vs action permissions).
type RolePermission struct {
  ID          uint     `gorm:"primaryKey;autoIncrement" json:"id"`
  RoleID      int      `gorm:"index;not null;column:role_id" json:"role_id"`
  Kind        string   `gorm:"index;not null;column:kind" json:"kind"`
  Permission  string   `gorm:"not null;column:permission" json:"permission"`
}

func (RolePermission) TableName() string {
  return "role_permission"
}
