package dates

import (
  "testing"
  "time"
)

func TestNormalize(t *testing.T) {
  cases := []struct {
    name string
    in   string
    want string
  }{
    {name: "spark_datetime", in: "15/06/2000 10:30:00", want: "2000-06-15"},
    {name: "dash_dmy", in: "15-06-2000", want: "2000-06-15"},
    {name: "slash_dmy", in: "15/06/2000", want: "2000-06-15"},
    {name: "already_normalized", in: "2000-06-15", want: "2000-06-15"},
    {name: "idempotent", in: Normalize("15/06/2000"), want: "2000-06-15"},
    {name: "rfc3339_fallback", in: "2000-06-15T00:00:00Z", want: "2000-06-15"},
    {name: "garbage", in: "not a date", want: ""},
    {name: "empty", in: "", want: ""},
    {name: "whitespace", in: "  2020-01-01  ", want: "2020-01-01"},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      got := Normalize(tc.in)
      if got != tc.want {
        t.Fatalf("Normalize(%q)=%q, want %q", tc.in, got, tc.want)
      }
    })
  }
}

func TestAge(t *testing.T) {
  cases := []struct {
    name string
    dob  string
    on   string
    want int
  }{
    {name: "day_before_birthday", dob: "2000-06-15", on: "2024-06-14", want: 23},
    {name: "on_birthday", dob: "2000-06-15", on: "2024-06-15", want: 24},
    {name: "month_before", dob: "2000-06-15", on: "2024-05-20", want: 23},
    {name: "month_after", dob: "2000-06-15", on: "2024-07-01", want: 24},
    {name: "spark_format_dob", dob: "15/06/2000", on: "2024-06-15", want: 24},
    {name: "invalid_dob", dob: "xx", on: "2024-06-15", want: 0},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      on, err := time.Parse(Layout, tc.on)
      if err != nil {
        t.Fatalf("bad test date %q: %v", tc.on, err)
      }
      got := Age(tc.dob, on)
      if got != tc.want {
        t.Fatalf("Age(%q, %s)=%d, want %d", tc.dob, tc.on, got, tc.want)
      }
    })
  }
}

func TestGapDays(t *testing.T) {
  cases := []struct {
    name  string
    end   string
    start string
    want  int
  }{
    {name: "four_day_gap", end: "2020-01-10", start: "2020-01-15", want: 4},
    {name: "adjacent", end: "2020-01-10", start: "2020-01-11", want: 0},
    {name: "same_day", end: "2020-01-10", start: "2020-01-10", want: 0},
    {name: "overlap", end: "2020-01-15", start: "2020-01-10", want: 0},
    {name: "invalid_end", end: "", start: "2020-01-10", want: 0},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      got := GapDays(tc.end, tc.start)
      if got != tc.want {
        t.Fatalf("GapDays(%q, %q)=%d, want %d", tc.end, tc.start, got, tc.want)
      }
    })
  }
}

func TestIsFuture(t *testing.T) {
  now, _ := time.Parse(Layout, "2024-06-15")
  if !IsFuture("2024-06-16", now) {
    t.Fatal("tomorrow should be future")
  }
  if IsFuture("2024-06-15", now) {
    t.Fatal("today should not be future")
  }
  if IsFuture("garbage", now) {
    t.Fatal("invalid date should not be future")
  }
}
