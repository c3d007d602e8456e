package provenance

import (
  "github.com/sparkbridge/hrms-backend/internal/dates"
)

// ProfileFields is the fixed editable-field list the personal resolver
// walks. Fields outside this list never participate in merging.
var ProfileFields = []string{
  "first_name",
  "last_name",
  "gender_id",
  "date_of_birth",
  "mobile",
  "email",
  "pan_number",
  "pran_number",
  "pf_number",
  "ais_number",
  "aadhaar_number",
  "address_line1",
  "address_line2",
  "state_id",
  "district_id",
  "pincode",
  "cadre_id",
  "recruitment_id",
  "designation_id",
  "date_of_joining",
  "retirement_date",
}

// SparkFields is the fixed passthrough list: fields the payroll sync is
// authoritative for. On save, unchanged values from this list are
// re-confirmed to the backend in the spark_data bucket.
var SparkFields = []string{
  "first_name",
  "last_name",
  "gender_id",
  "date_of_birth",
  "pan_number",
  "pf_number",
  "state_id",
  "designation_id",
  "date_of_joining",
  "retirement_date",
}

var dateFields = map[string]bool{
  "date_of_birth":   true,
  "date_of_joining": true,
  "retirement_date": true,
  "start_date":      true,
  "end_date":        true,
  "order_date":      true,
}

// IsDateField reports whether a field value is normalized as a date before
// comparison or storage.
func IsDateField(field string) bool {
  return dateFields[field]
}

// CodeResolver resolves a raw SPARK coded value (gender letter, state
// abbreviation) against master data. ok=false means the lookup failed and
// the SPARK value is treated as absent for that field.
type CodeResolver func(field, raw string) (string, bool)

// ProfileInput carries the three partial views of one officer profile.
type ProfileInput struct {
  Spark    map[string]string
  Officer  map[string]string
  Operator map[string]string
}

// ResolveProfile walks the fixed field list and picks one value per field:
// a present, resolvable SPARK value wins; otherwise an explicit operator
// override; otherwise the officer's stored value; otherwise empty. The
// merge never fails; unparseable dates resolve to empty strings.
func ResolveProfile(in ProfileInput, fields []string, resolve CodeResolver) (map[string]string, FieldSources) {
  merged := make(map[string]string, len(fields))
  sources := make(FieldSources, len(fields))
  for _, field := range fields {
    val, src := resolveField(field, in, resolve)
    merged[field] = val
    sources[field] = src
  }
  return merged, sources
}

func resolveField(field string, in ProfileInput, resolve CodeResolver) (string, Source) {
  if sparkVal, ok := sparkValue(field, in.Spark, resolve); ok {
    return sparkVal, SourceSpark
  }
  if opVal := cleanValue(field, in.Operator[field]); opVal != "" {
    return opVal, SourceOperator
  }
  if offVal := cleanValue(field, in.Officer[field]); offVal != "" {
    return offVal, SourceOfficer
  }
  return "", SourceUnknown
}

func sparkValue(field string, spark map[string]string, resolve CodeResolver) (string, bool) {
  raw, ok := spark[field]
  if !ok || raw == "" {
    return "", false
  }
  if resolve != nil {
    resolved, found := resolve(field, raw)
    if !found {
      return "", false
    }
    raw = resolved
  }
  val := cleanValue(field, raw)
  if val == "" {
    return "", false
  }
  return val, true
}

func cleanValue(field, raw string) string {
  if IsDateField(field) {
    return dates.Normalize(raw)
  }
  return raw
}

// SplitForSave partitions an edit session into the two backend buckets.
// Fields whose value changed this session belong to user_data; unchanged
// non-empty values from the SPARK passthrough list are re-confirmed via
// spark_data.
func SplitForSave(current, edited map[string]string, sparkFields []string) (map[string]string, map[string]string) {
  userData := map[string]string{}
  for field, val := range edited {
    if IsDateField(field) {
      val = dates.Normalize(val)
    }
    if val != current[field] {
      userData[field] = val
    }
  }
  sparkData := map[string]string{}
  for _, field := range sparkFields {
    if _, touched := userData[field]; touched {
      continue
    }
    if v := current[field]; v != "" {
      sparkData[field] = v
    }
  }
  return userData, sparkData
}
