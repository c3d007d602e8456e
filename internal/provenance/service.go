package provenance

import (
  "fmt"
  "sort"
  "strings"

  "github.com/sparkbridge/hrms-backend/internal/dates"
)

// ServiceFields is the per-record field set for one employment period.
var ServiceFields = []string{
  "designation",
  "department",
  "ministry",
  "agency",
  "state",
  "district",
  "start_date",
  "end_date",
  "pay",
  "order_number",
  "order_date",
  "additional_charge",
}

// ServiceRecord is one employment period as seen by the resolver: either a
// persisted backend row (IsSaved true) or a pending row synthesized from the
// SPARK service_details feed that the officer still has to confirm.
type ServiceRecord struct {
  ID       string
  Fields   map[string]string
  Sources  FieldSources
  IsSaved  bool
  Conflict bool
}

// Tag returns the record-level source tag (SPARK, USER or MIXED).
func (r ServiceRecord) Tag() string {
  return DeriveTag(r.Sources)
}

// matchKey is the identity of a service period for SPARK-to-backend
// matching: normalized designation + normalized department + exact start
// date after date normalization.
func matchKey(fields map[string]string) string {
  return normalizeName(fields["designation"]) + "|" +
    normalizeName(fields["department"]) + "|" +
    dates.Normalize(fields["start_date"])
}

func normalizeName(s string) string {
  return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

// MergeServiceHistory reconciles the SPARK service_details feed against the
// already persisted records. On a key match the persisted record's values
// win for every field it has provenance for; SPARK fields the persisted
// record never covered are adopted with SPARK provenance. Unmatched SPARK
// entries become pending rows; unmatched persisted records pass through.
// When more than one SPARK entry matches the same persisted record, the
// first merges and the rest surface as conflict rows instead of being
// dropped. The result is de-duplicated by ID and sorted descending by
// start date.
func MergeServiceHistory(sparkEntries []map[string]string, saved []ServiceRecord) []ServiceRecord {
  matched := map[string]bool{}
  byKey := map[string]int{}

  out := make([]ServiceRecord, len(saved))
  for i, rec := range saved {
    out[i] = cloneRecord(rec)
    byKey[matchKey(rec.Fields)] = i
  }

  for idx, entry := range sparkEntries {
    fields := normalizeSparkEntry(entry)
    key := matchKey(fields)
    if i, ok := byKey[key]; ok {
      if !matched[key] {
        matched[key] = true
        absorbSparkFields(&out[i], fields)
        continue
      }
      // Duplicate SPARK entry for an already-merged period: surface it
      // instead of silently dropping.
      rec := pendingRecord(fields, fmt.Sprintf("%s#%d", key, idx))
      rec.Conflict = true
      out = append(out, rec)
      continue
    }
    out = append(out, pendingRecord(fields, key))
  }

  out = dedupeByID(out)
  sortByStartDateDesc(out)
  return out
}

func normalizeSparkEntry(entry map[string]string) map[string]string {
  fields := make(map[string]string, len(ServiceFields))
  for _, f := range ServiceFields {
    val := entry[f]
    if IsDateField(f) {
      val = dates.Normalize(val)
    }
    fields[f] = val
  }
  return fields
}

func absorbSparkFields(rec *ServiceRecord, sparkFields map[string]string) {
  for f, val := range sparkFields {
    if val == "" {
      continue
    }
    if _, covered := rec.Sources[f]; covered {
      continue
    }
    rec.Fields[f] = val
    rec.Sources[f] = SourceSpark
  }
}

func pendingRecord(fields map[string]string, id string) ServiceRecord {
  sources := make(FieldSources, len(fields))
  for f, val := range fields {
    if val != "" {
      sources[f] = SourceSpark
    }
  }
  return ServiceRecord{
    ID:      "spark:" + id,
    Fields:  fields,
    Sources: sources,
    IsSaved: false,
  }
}

func cloneRecord(rec ServiceRecord) ServiceRecord {
  fields := make(map[string]string, len(rec.Fields))
  for k, v := range rec.Fields {
    fields[k] = v
  }
  sources := make(FieldSources, len(rec.Sources))
  for k, v := range rec.Sources {
    sources[k] = v
  }
  rec.Fields = fields
  rec.Sources = sources
  return rec
}

func dedupeByID(records []ServiceRecord) []ServiceRecord {
  seen := map[string]bool{}
  out := records[:0]
  for _, rec := range records {
    if rec.ID != "" && seen[rec.ID] {
      continue
    }
    seen[rec.ID] = true
    out = append(out, rec)
  }
  return out
}

func sortByStartDateDesc(records []ServiceRecord) {
  sort.SliceStable(records, func(i, j int) bool {
    si := records[i].Fields["start_date"]
    sj := records[j].Fields["start_date"]
    if si == sj {
      return records[i].ID < records[j].ID
    }
    if si == "" {
      return false
    }
    if sj == "" {
      return true
    }
    return si > sj
  })
}
