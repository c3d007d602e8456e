package provenance

import (
  "testing"
  "time"
)

func savedRecord(id, designation, department, start, end string) ServiceRecord {
  return ServiceRecord{
    ID: id,
    Fields: map[string]string{
      "designation": designation,
      "department":  department,
      "start_date":  start,
      "end_date":    end,
      "pay":         "56100",
    },
    Sources: FieldSources{
      "designation": SourceOfficer,
      "department":  SourceOfficer,
      "start_date":  SourceOfficer,
      "end_date":    SourceOfficer,
      "pay":         SourceOfficer,
    },
    IsSaved: true,
  }
}

func TestMergeServiceHistoryMatch(t *testing.T) {
  saved := []ServiceRecord{
    savedRecord("rec-1", "Deputy Collector", "Revenue", "2021-03-01", "2022-06-30"),
  }
  spark := []map[string]string{
    {
      "designation":  "DEPUTY  collector",
      "department":   "revenue",
      "start_date":   "01/03/2021",
      "end_date":     "30/06/2022",
      "order_number": "GO(Rt)123/2021",
      "order_date":   "15/02/2021",
    },
  }

  out := MergeServiceHistory(spark, saved)
  if len(out) != 1 {
    t.Fatalf("expected 1 merged record, got %d", len(out))
  }
  rec := out[0]
  if rec.ID != "rec-1" || !rec.IsSaved {
    t.Fatalf("match should keep the persisted record, got %+v", rec)
  }
  // Persisted values win where the record already has provenance.
  if rec.Fields["designation"] != "Deputy Collector" {
    t.Fatalf("designation=%q, backend value should win", rec.Fields["designation"])
  }
  // SPARK fields the record never covered are adopted with SPARK provenance.
  if rec.Fields["order_number"] != "GO(Rt)123/2021" || rec.Sources["order_number"] != SourceSpark {
    t.Fatalf("order_number=%q src=%s, want SPARK-adopted", rec.Fields["order_number"], rec.Sources["order_number"])
  }
  if rec.Fields["order_date"] != "2021-02-15" {
    t.Fatalf("order_date=%q, want normalized", rec.Fields["order_date"])
  }
  if rec.Tag() != TagMixed {
    t.Fatalf("tag=%s, want MIXED", rec.Tag())
  }
}

func TestMergeServiceHistoryDifferentStartDateNeverMerges(t *testing.T) {
  saved := []ServiceRecord{
    savedRecord("rec-1", "Deputy Collector", "Revenue", "2021-03-01", "2022-06-30"),
  }
  spark := []map[string]string{
    {"designation": "Deputy Collector", "department": "Revenue", "start_date": "02/03/2021"},
  }

  out := MergeServiceHistory(spark, saved)
  if len(out) != 2 {
    t.Fatalf("differing start date must stay a separate pending row, got %d records", len(out))
  }
  var pending *ServiceRecord
  for i := range out {
    if !out[i].IsSaved {
      pending = &out[i]
    }
  }
  if pending == nil {
    t.Fatal("expected a pending SPARK row")
  }
  if pending.Sources["designation"] != SourceSpark {
    t.Fatalf("pending row provenance=%s, want SPARK", pending.Sources["designation"])
  }
  if pending.Conflict {
    t.Fatal("non-duplicate pending row must not be flagged as conflict")
  }
}

func TestMergeServiceHistoryDuplicateSparkSurfacesConflict(t *testing.T) {
  saved := []ServiceRecord{
    savedRecord("rec-1", "Deputy Collector", "Revenue", "2021-03-01", "2022-06-30"),
  }
  entry := map[string]string{
    "designation": "Deputy Collector",
    "department":  "Revenue",
    "start_date":  "2021-03-01",
  }
  out := MergeServiceHistory([]map[string]string{entry, entry}, saved)

  if len(out) != 2 {
    t.Fatalf("duplicate SPARK match must not be dropped, got %d records", len(out))
  }
  conflicts := 0
  for _, rec := range out {
    if rec.Conflict {
      conflicts++
    }
  }
  if conflicts != 1 {
    t.Fatalf("expected exactly one conflict row, got %d", conflicts)
  }
}

func TestMergeServiceHistorySortedDescending(t *testing.T) {
  saved := []ServiceRecord{
    savedRecord("old", "Sub Collector", "Revenue", "2018-01-01", "2019-12-31"),
  }
  spark := []map[string]string{
    {"designation": "Deputy Collector", "department": "Revenue", "start_date": "2021-03-01"},
    {"designation": "Collector", "department": "Revenue", "start_date": "2023-05-01"},
  }
  out := MergeServiceHistory(spark, saved)
  if len(out) != 3 {
    t.Fatalf("got %d records, want 3", len(out))
  }
  for i := 0; i+1 < len(out); i++ {
    if out[i].Fields["start_date"] < out[i+1].Fields["start_date"] {
      t.Fatalf("records not sorted descending by start date: %s before %s",
        out[i].Fields["start_date"], out[i+1].Fields["start_date"])
    }
  }
}

func TestComputeGaps(t *testing.T) {
  records := MergeServiceHistory(nil, []ServiceRecord{
    savedRecord("a", "Sub Collector", "Revenue", "2019-01-01", "2020-01-10"),
    savedRecord("b", "Deputy Collector", "Revenue", "2020-01-15", "2021-06-30"),
  })
  today, _ := time.Parse("2006-01-02", "2021-07-10")

  gaps, current := ComputeGaps(records, today)
  if len(gaps) != 1 {
    t.Fatalf("expected 1 gap, got %d", len(gaps))
  }
  if gaps[0].Days != 4 {
    t.Fatalf("gap days=%d, want 4 (2020-01-11 through 2020-01-14)", gaps[0].Days)
  }
  if gaps[0].AfterRecordID != "a" || gaps[0].BeforeRecordID != "b" {
    t.Fatalf("gap endpoints wrong: %+v", gaps[0])
  }
  if current == nil {
    t.Fatal("latest record ended before today, expected a current gap")
  }
  if current.RecordID != "b" || current.Days != 9 {
    t.Fatalf("current gap=%+v, want record b with 9 days", current)
  }
}

func TestComputeGapsNoCurrentGapWhenOngoing(t *testing.T) {
  records := []ServiceRecord{
    savedRecord("a", "Collector", "Revenue", "2023-01-01", ""),
  }
  today, _ := time.Parse("2006-01-02", "2024-01-01")
  _, current := ComputeGaps(records, today)
  if current != nil {
    t.Fatalf("open-ended period must not flag a current gap, got %+v", current)
  }
}
