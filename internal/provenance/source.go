package provenance

// Source tags where a field value came from. SPARK is the payroll sync feed,
// AIS_OFFICER is officer self-entry, GAD_OFFICER is back-office operator
// entry. The string values are the wire/storage representation.
type Source string

const (
  SourceSpark    Source = "SPARK"
  SourceOfficer  Source = "AIS_OFFICER"
  SourceOperator Source = "GAD_OFFICER"
  SourceUnknown  Source = "UNKNOWN"
)

// FieldSources maps field name to the source that won resolution for it.
type FieldSources map[string]Source

// Record-level tags derived from per-field sources.
const (
  TagSpark = "SPARK"
  TagUser  = "USER"
  TagMixed = "MIXED"
)

// DeriveTag collapses a record's field sources into a single display tag.
// Officer and operator entries both count as user data; a record whose
// fields span SPARK and user sources is MIXED. No known sources at all
// defaults to USER.
func DeriveTag(fs FieldSources) string {
  sawSpark := false
  sawUser := false
  for _, src := range fs {
    switch src {
    case SourceSpark:
      sawSpark = true
    case SourceOfficer, SourceOperator:
      sawUser = true
    }
  }
  switch {
  case sawSpark && sawUser:
    return TagMixed
  case sawSpark:
    return TagSpark
  default:
    return TagUser
  }
}

// ParseSource maps a stored string back onto a Source, defaulting to UNKNOWN.
func ParseSource(s string) Source {
  switch Source(s) {
  case SourceSpark, SourceOfficer, SourceOperator:
    return Source(s)
  default:
    return SourceUnknown
  }
}
