package provenance

import (
  "time"

  "github.com/sparkbridge/hrms-backend/internal/dates"
)

// Gap is the whole-day hole between two consecutive employment periods,
// exclusive of both boundary dates. Display data only; never persisted.
type Gap struct {
  AfterRecordID  string `json:"after_record_id"`
  BeforeRecordID string `json:"before_record_id"`
  Days           int    `json:"days"`
}

// CurrentGap flags that the most recent period ended before today.
type CurrentGap struct {
  RecordID string `json:"record_id"`
  EndDate  string `json:"end_date"`
  Days     int    `json:"days"`
}

// ComputeGaps walks records sorted descending by start date and reports the
// inter-record gaps between consecutive periods, plus a current gap when
// the latest record has already ended. Records without a parsable start
// date are skipped.
func ComputeGaps(records []ServiceRecord, today time.Time) ([]Gap, *CurrentGap) {
  dated := make([]ServiceRecord, 0, len(records))
  for _, rec := range records {
    if _, ok := dates.Parse(rec.Fields["start_date"]); ok {
      dated = append(dated, rec)
    }
  }

  gaps := []Gap{}
  // dated[0] is the most recent period; walk pairs newest-to-oldest.
  for i := 0; i+1 < len(dated); i++ {
    newer := dated[i]
    older := dated[i+1]
    days := dates.GapDays(older.Fields["end_date"], newer.Fields["start_date"])
    if days > 0 {
      gaps = append(gaps, Gap{
        AfterRecordID:  older.ID,
        BeforeRecordID: newer.ID,
        Days:           days,
      })
    }
  }

  var current *CurrentGap
  if len(dated) > 0 {
    latest := dated[0]
    end := dates.Normalize(latest.Fields["end_date"])
    if end != "" && dates.Before(end, today.Format(dates.Layout)) {
      current = &CurrentGap{
        RecordID: latest.ID,
        EndDate:  end,
        Days:     dates.GapDays(end, today.Format(dates.Layout)),
      }
    }
  }
  return gaps, current
}
