package provenance

import "testing"

func lookupGenderAndState(field, raw string) (string, bool) {
  switch field {
  case "gender_id":
    if raw == "M" {
      return "1", true
    }
    if raw == "F" {
      return "2", true
    }
    return "", false
  case "state_id":
    if raw == "KL" {
      return "32", true
    }
    return "", false
  default:
    return raw, true
  }
}

func TestResolveProfile(t *testing.T) {
  fields := []string{"first_name", "gender_id", "state_id", "date_of_birth", "mobile"}
  in := ProfileInput{
    Spark: map[string]string{
      "first_name":    "ANITA",
      "gender_id":     "F",
      "state_id":      "XX",
      "date_of_birth": "15/06/1990",
    },
    Officer: map[string]string{
      "first_name": "Anita",
      "state_id":   "32",
      "mobile":     "9876543210",
    },
    Operator: map[string]string{
      "first_name": "Anita K",
      "state_id":   "33",
    },
  }

  merged, sources := ResolveProfile(in, fields, lookupGenderAndState)

  cases := []struct {
    field   string
    wantVal string
    wantSrc Source
  }{
    // SPARK value present and resolvable: wins over operator override.
    {field: "first_name", wantVal: "ANITA", wantSrc: SourceSpark},
    // Gender letter resolved via master data.
    {field: "gender_id", wantVal: "2", wantSrc: SourceSpark},
    // SPARK state code failed lookup, operator override wins next.
    {field: "state_id", wantVal: "33", wantSrc: SourceOperator},
    // SPARK date normalized to canonical format.
    {field: "date_of_birth", wantVal: "1990-06-15", wantSrc: SourceSpark},
    // Only the officer's stored value exists.
    {field: "mobile", wantVal: "9876543210", wantSrc: SourceOfficer},
  }
  for _, tc := range cases {
    t.Run(tc.field, func(t *testing.T) {
      if merged[tc.field] != tc.wantVal {
        t.Fatalf("merged[%s]=%q, want %q", tc.field, merged[tc.field], tc.wantVal)
      }
      if sources[tc.field] != tc.wantSrc {
        t.Fatalf("sources[%s]=%s, want %s", tc.field, sources[tc.field], tc.wantSrc)
      }
    })
  }
}

func TestResolveProfileEmptyEverywhere(t *testing.T) {
  merged, sources := ResolveProfile(ProfileInput{}, []string{"pan_number"}, nil)
  if merged["pan_number"] != "" {
    t.Fatalf("expected empty value, got %q", merged["pan_number"])
  }
  if sources["pan_number"] != SourceUnknown {
    t.Fatalf("expected UNKNOWN source, got %s", sources["pan_number"])
  }
}

func TestResolveProfileInvalidDateResolvesEmpty(t *testing.T) {
  in := ProfileInput{Spark: map[string]string{"date_of_birth": "31/31/1990"}}
  merged, sources := ResolveProfile(in, []string{"date_of_birth"}, nil)
  if merged["date_of_birth"] != "" {
    t.Fatalf("invalid date should merge to empty, got %q", merged["date_of_birth"])
  }
  if sources["date_of_birth"] != SourceUnknown {
    t.Fatalf("invalid SPARK date should not claim SPARK provenance, got %s", sources["date_of_birth"])
  }
}

func TestSplitForSave(t *testing.T) {
  current := map[string]string{
    "first_name":    "Anita",
    "pan_number":    "ABCDE1234F",
    "mobile":        "9876543210",
    "date_of_birth": "1990-06-15",
  }
  edited := map[string]string{
    "first_name":    "Anita",
    "pan_number":    "ABCDE1234F",
    "mobile":        "9000000000",
    "date_of_birth": "15/06/1990",
  }
  sparkFields := []string{"first_name", "pan_number", "date_of_birth", "pf_number"}

  userData, sparkData := SplitForSave(current, edited, sparkFields)

  if len(userData) != 1 || userData["mobile"] != "9000000000" {
    t.Fatalf("userData=%v, want only edited mobile", userData)
  }
  if _, ok := sparkData["mobile"]; ok {
    t.Fatal("edited field must not appear in spark_data")
  }
  if sparkData["first_name"] != "Anita" || sparkData["pan_number"] != "ABCDE1234F" {
    t.Fatalf("unchanged spark fields should pass through, got %v", sparkData)
  }
  // Date edit that normalizes to the same value is not a change.
  if _, ok := userData["date_of_birth"]; ok {
    t.Fatal("normalized-equal date should not count as edited")
  }
  if sparkData["date_of_birth"] != "1990-06-15" {
    t.Fatalf("sparkData date=%q, want 1990-06-15", sparkData["date_of_birth"])
  }
  // Empty spark passthrough fields are dropped.
  if _, ok := sparkData["pf_number"]; ok {
    t.Fatal("empty spark field must not be sent")
  }
}

func TestDeriveTag(t *testing.T) {
  cases := []struct {
    name string
    fs   FieldSources
    want string
  }{
    {name: "all_spark", fs: FieldSources{"a": SourceSpark, "b": SourceSpark}, want: TagSpark},
    {name: "all_officer", fs: FieldSources{"a": SourceOfficer}, want: TagUser},
    {name: "officer_and_operator_still_user", fs: FieldSources{"a": SourceOfficer, "b": SourceOperator}, want: TagUser},
    {name: "spark_and_user", fs: FieldSources{"a": SourceSpark, "b": SourceOperator}, want: TagMixed},
    {name: "empty_defaults_user", fs: FieldSources{}, want: TagUser},
    {name: "unknown_only_defaults_user", fs: FieldSources{"a": SourceUnknown}, want: TagUser},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      if got := DeriveTag(tc.fs); got != tc.want {
        t.Fatalf("DeriveTag=%s, want %s", got, tc.want)
      }
    })
  }
}
