package validation

import (
  "testing"
  "time"
)

func testNow(t *testing.T) time.Time {
  t.Helper()
  now, err := time.Parse("2006-01-02", "2024-06-15")
  if err != nil {
    t.Fatal(err)
  }
  return now
}

func validProfile() map[string]string {
  return map[string]string{
    "first_name":      "Anita",
    "gender_id":       "2",
    "date_of_birth":   "1990-06-15",
    "mobile":          "9876543210",
    "email":           "anita@example.gov.in",
    "pan_number":      "ABCDE1234F",
    "pincode":         "695001",
    "pran_number":     "110012345678",
    "ais_number":      "KL123456",
    "date_of_joining":  "2015-07-01",
  }
}

func TestValidateProfileValid(t *testing.T) {
  errs := ValidateProfile(validProfile(), testNow(t))
  if len(errs) != 0 {
    t.Fatalf("expected no errors, got %v", errs)
  }
}

func TestValidateProfile(t *testing.T) {
  cases := []struct {
    name      string
    mutate    func(map[string]string)
    wantField string
  }{
    {name: "missing_first_name", mutate: func(f map[string]string) { f["first_name"] = "" }, wantField: "first_name"},
    {name: "missing_mobile", mutate: func(f map[string]string) { f["mobile"] = "" }, wantField: "mobile"},
    {name: "bad_pan", mutate: func(f map[string]string) { f["pan_number"] = "1234ABCDE" }, wantField: "pan_number"},
    {name: "bad_mobile_prefix", mutate: func(f map[string]string) { f["mobile"] = "1234567890" }, wantField: "mobile"},
    {name: "bad_pincode", mutate: func(f map[string]string) { f["pincode"] = "0695" }, wantField: "pincode"},
    {name: "bad_pran", mutate: func(f map[string]string) { f["pran_number"] = "12345" }, wantField: "pran_number"},
    {name: "bad_ais_number", mutate: func(f map[string]string) { f["ais_number"] = "K1234567" }, wantField: "ais_number"},
    {name: "bad_email", mutate: func(f map[string]string) { f["email"] = "not-an-email" }, wantField: "email"},
    {name: "underage", mutate: func(f map[string]string) { f["date_of_birth"] = "2010-01-01" }, wantField: "date_of_birth"},
    {name: "unparseable_dob", mutate: func(f map[string]string) { f["date_of_birth"] = "99/99/9999" }, wantField: "date_of_birth"},
    {name: "future_joining", mutate: func(f map[string]string) { f["date_of_joining"] = "2030-01-01" }, wantField: "date_of_joining"},
    {name: "joined_under_18", mutate: func(f map[string]string) { f["date_of_joining"] = "2005-01-01" }, wantField: "date_of_joining"},
    {name: "future_retirement", mutate: func(f map[string]string) { f["retirement_date"] = "2030-01-01" }, wantField: "retirement_date"},
    {name: "retirement_before_joining", mutate: func(f map[string]string) { f["retirement_date"] = "2010-01-01" }, wantField: "retirement_date"},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      fields := validProfile()
      tc.mutate(fields)
      errs := ValidateProfile(fields, testNow(t))
      if errs[tc.wantField] == "" {
        t.Fatalf("expected error on %s, got %v", tc.wantField, errs)
      }
    })
  }
}

func TestValidateProfileEmptyOptionalFormatsPass(t *testing.T) {
  fields := validProfile()
  fields["pan_number"] = ""
  fields["pran_number"] = ""
  fields["email"] = ""
  errs := ValidateProfile(fields, testNow(t))
  if len(errs) != 0 {
    t.Fatalf("empty optional fields must not fail format checks, got %v", errs)
  }
}
