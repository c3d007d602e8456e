package validation

import (
  "regexp"
  "time"

  "github.com/sparkbridge/hrms-backend/internal/dates"
)

const (
  minJoiningAge = 18
  maxJoiningAge = 60
)

var requiredProfileFields = map[string]string{
  "first_name":    "First name is required",
  "gender_id":     "Gender is required",
  "date_of_birth": "Date of birth is required",
  "mobile":        "Mobile number is required",
}

var profileFormats = map[string]struct {
  re  *regexp.Regexp
  msg string
}{
  "pan_number":    {regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`), "PAN must match AAAAA9999A"},
  "mobile":        {regexp.MustCompile(`^[6-9][0-9]{9}$`), "Mobile must be a 10-digit number starting with 6-9"},
  "pincode":       {regexp.MustCompile(`^[1-9][0-9]{5}$`), "Pincode must be a 6-digit number"},
  "pran_number":   {regexp.MustCompile(`^[0-9]{12}$`), "PRAN must be a 12-digit number"},
  "pf_number":     {regexp.MustCompile(`^[A-Z0-9/\-]{4,20}$`), "PF number format is invalid"},
  "ais_number":    {regexp.MustCompile(`^[A-Z]{2}[0-9]{6}$`), "AIS number must match AA999999"},
  "email":         {regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`), "Email address is invalid"},
}

// ValidateProfile is the single submit-time rule set over a merged officer
// profile. It never mutates its input and returns a field-to-message map;
// a save is blocked while the map is non-empty. Format checks apply only to
// non-empty values so the merge itself stays best-effort.
func ValidateProfile(fields map[string]string, now time.Time) map[string]string {
  errs := map[string]string{}

  for field, msg := range requiredProfileFields {
    if fields[field] == "" {
      errs[field] = msg
    }
  }

  for field, format := range profileFormats {
    val := fields[field]
    if val == "" {
      continue
    }
    if !format.re.MatchString(val) {
      errs[field] = format.msg
    }
  }

  dob := fields["date_of_birth"]
  if dob != "" {
    if _, ok := dates.Parse(dob); !ok {
      errs["date_of_birth"] = "Date of birth is not a valid date"
    } else if dates.Age(dob, now) < 18 {
      errs["date_of_birth"] = "Officer must be at least 18 years old"
    }
  }

  joining := fields["date_of_joining"]
  if joining != "" {
    joinDate, ok := dates.Parse(joining)
    switch {
    case !ok:
      errs["date_of_joining"] = "Date of joining is not a valid date"
    case dates.IsFuture(joining, now):
      errs["date_of_joining"] = "Date of joining cannot be in the future"
    case dob != "" && errs["date_of_birth"] == "":
      age := dates.Age(dob, joinDate)
      if age < minJoiningAge || age > maxJoiningAge {
        errs["date_of_joining"] = "Age at joining must be between 18 and 60"
      }
    }
  }

  retirement := fields["retirement_date"]
  if retirement != "" {
    if _, ok := dates.Parse(retirement); !ok {
      errs["retirement_date"] = "Retirement date is not a valid date"
    } else if dates.IsFuture(retirement, now) {
      errs["retirement_date"] = "Retirement date cannot be in the future"
    } else if joining != "" && dates.Before(retirement, joining) {
      errs["retirement_date"] = "Retirement date cannot be before date of joining"
    }
  }

  return errs
}
