package validation

import (
  "strings"
  "unicode"
)

const (
  passwordMinLen = 8
  passwordMaxLen = 20
  specialSet     = "@$!%*?&"
)

// Strength buckets, informational only.
const (
  StrengthWeak   = "Weak"
  StrengthMedium = "Medium"
  StrengthStrong = "Strong"
)

// ValidatePassword runs the full password rule set over a candidate. Every
// check runs; messages accumulate with no short-circuiting. An empty slice
// means the candidate is acceptable.
func ValidatePassword(current, candidate, confirm string) []string {
  msgs := []string{}
  for _, check := range passwordChecks {
    if !check.pass(candidate) {
      msgs = append(msgs, check.msg)
    }
  }
  if candidate == current {
    msgs = append(msgs, "New password must be different from the current password")
  }
  if candidate != confirm {
    msgs = append(msgs, "New password and confirmation do not match")
  }
  return msgs
}

// PasswordStrength scores a candidate as passed-checks/6 x 100, bucketed
// for UI feedback. Not a security control.
func PasswordStrength(candidate string) (int, string) {
  passed := 0
  for _, check := range passwordChecks {
    if check.pass(candidate) {
      passed++
    }
  }
  score := passed * 100 / len(passwordChecks)
  switch {
  case score >= 80:
    return score, StrengthStrong
  case score >= 60:
    return score, StrengthMedium
  default:
    return score, StrengthWeak
  }
}

type passwordCheck struct {
  msg  string
  pass func(string) bool
}

var passwordChecks = []passwordCheck{
  {
    msg: "Password must be 8 to 20 characters long",
    pass: func(s string) bool {
      return len(s) >= passwordMinLen && len(s) <= passwordMaxLen
    },
  },
  {
    msg:  "Password must contain at least one uppercase letter",
    pass: func(s string) bool { return strings.IndexFunc(s, unicode.IsUpper) >= 0 },
  },
  {
    msg:  "Password must contain at least one lowercase letter",
    pass: func(s string) bool { return strings.IndexFunc(s, unicode.IsLower) >= 0 },
  },
  {
    msg:  "Password must contain at least one digit",
    pass: func(s string) bool { return strings.IndexFunc(s, unicode.IsDigit) >= 0 },
  },
  {
    msg:  "Password must contain at least one special character (@$!%*?&)",
    pass: func(s string) bool { return strings.ContainsAny(s, specialSet) },
  },
  {
    msg:  "Password must not contain spaces",
    pass: func(s string) bool { return strings.IndexFunc(s, unicode.IsSpace) < 0 },
  },
}
