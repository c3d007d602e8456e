package dates

import (
  "strings"
  "time"
)

// Layout is the canonical wire format for every date the service stores or
// returns. SPARK sync payloads arrive in several regional formats and are
// folded into this one before any comparison happens.
const Layout = "2006-01-02"

var sparkLayouts = []string{
  "02/01/2006 15:04:05",
  "02-01-2006",
  "02/01/2006",
  Layout,
}

var fallbackLayouts = []string{
  time.RFC3339,
  "2006-01-02 15:04:05",
  "2006/01/02",
}

// Normalize folds a SPARK or user supplied date string into YYYY-MM-DD.
// Unparseable input yields "" rather than an error; merge is best-effort.
// Normalizing an already normalized value returns it unchanged.
func Normalize(s string) string {
  s = strings.TrimSpace(s)
  if s == "" {
    return ""
  }
  for _, layout := range sparkLayouts {
    if t, err := time.Parse(layout, s); err == nil {
      return t.Format(Layout)
    }
  }
  for _, layout := range fallbackLayouts {
    if t, err := time.Parse(layout, s); err == nil {
      return t.Format(Layout)
    }
  }
  return ""
}

// Parse returns the normalized date as a time.Time, reporting ok=false for
// anything Normalize rejects.
func Parse(s string) (time.Time, bool) {
  norm := Normalize(s)
  if norm == "" {
    return time.Time{}, false
  }
  t, err := time.Parse(Layout, norm)
  if err != nil {
    return time.Time{}, false
  }
  return t, true
}

// Age computes whole years between dob and on, truncating when the birthday
// has not yet been reached in on's calendar year. Invalid dob yields 0.
func Age(dob string, on time.Time) int {
  t, ok := Parse(dob)
  if !ok {
    return 0
  }
  years := on.Year() - t.Year()
  if on.Month() < t.Month() || (on.Month() == t.Month() && on.Day() < t.Day()) {
    years--
  }
  if years < 0 {
    return 0
  }
  return years
}

// GapDays counts the whole days strictly between prevEnd and nextStart,
// exclusive of both boundary dates. Overlapping or adjacent periods yield 0.
func GapDays(prevEnd, nextStart string) int {
  end, okEnd := Parse(prevEnd)
  start, okStart := Parse(nextStart)
  if !okEnd || !okStart {
    return 0
  }
  days := int(start.Sub(end).Hours()/24) - 1
  if days < 0 {
    return 0
  }
  return days
}

// IsFuture reports whether s parses to a date after today (in UTC).
func IsFuture(s string, now time.Time) bool {
  t, ok := Parse(s)
  if !ok {
    return false
  }
  today, _ := time.Parse(Layout, now.Format(Layout))
  return t.After(today)
}

// Before reports a < b for two date strings; false when either is invalid.
func Before(a, b string) bool {
  ta, okA := Parse(a)
  tb, okB := Parse(b)
  if !okA || !okB {
    return false
  }
  return ta.Before(tb)
}

// After reports a > b for two date strings; false when either is invalid.
func After(a, b string) bool {
  ta, okA := Parse(a)
  tb, okB := Parse(b)
  if !okA || !okB {
    return false
  }
  return ta.After(tb)
}
