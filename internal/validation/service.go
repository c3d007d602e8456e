package validation

import (
  "time"

  "github.com/sparkbridge/hrms-backend/internal/dates"
  "github.com/sparkbridge/hrms-backend/internal/provenance"
)

// Order number and date became mandatory for periods starting on or after
// this date. Fixed policy cutover, not configurable.
const orderMandatoryCutover = "2020-01-01"

// ServiceBounds are pulled from the officer's personal record; both ends of
// a service period must fall inside them when set.
type ServiceBounds struct {
  DateOfJoining  string
  RetirementDate string
}

// ValidateServiceRecord checks one employment period at submit time.
// Order-date rules are skipped entirely when that field's provenance is
// SPARK; synced data is trusted as-is.
func ValidateServiceRecord(fields map[string]string, sources provenance.FieldSources, bounds ServiceBounds, now time.Time) map[string]string {
  errs := map[string]string{}

  start := dates.Normalize(fields["start_date"])
  end := dates.Normalize(fields["end_date"])

  if start == "" {
    errs["start_date"] = "Start date is required"
  }
  if end != "" && start != "" && dates.Before(end, start) {
    errs["end_date"] = "End date cannot be before start date"
  }

  joining := dates.Normalize(bounds.DateOfJoining)
  retirement := dates.Normalize(bounds.RetirementDate)
  if start != "" && joining != "" && dates.Before(start, joining) {
    errs["start_date"] = "Start date cannot be before date of joining"
  }
  if start != "" && retirement != "" && dates.After(start, retirement) {
    errs["start_date"] = "Start date cannot be after retirement date"
  }
  if end != "" && retirement != "" && dates.After(end, retirement) {
    errs["end_date"] = "End date cannot be after retirement date"
  }

  orderMandatory := start != "" && !dates.Before(start, orderMandatoryCutover)
  if orderMandatory && fields["order_number"] == "" {
    errs["order_number"] = "Order number is required for periods starting on or after 01/01/2020"
  }

  orderDate := dates.Normalize(fields["order_date"])
  if sources["order_date"] != provenance.SourceSpark {
    if orderMandatory && orderDate == "" {
      errs["order_date"] = "Order date is required for periods starting on or after 01/01/2020"
    }
    if orderDate != "" {
      if dates.IsFuture(orderDate, now) {
        errs["order_date"] = "Order date cannot be in the future"
      } else if start != "" && dates.After(orderDate, start) {
        errs["order_date"] = "Order date cannot be after start date"
      }
    }
  }

  return errs
}
