package validation

import "testing"

func TestValidatePassword(t *testing.T) {
  cases := []struct {
    name      string
    current   string
    candidate string
    confirm   string
    wantMsgs  int
  }{
    {name: "valid", current: "Old@pass1", candidate: "New@pass1", confirm: "New@pass1", wantMsgs: 0},
    {name: "too_short", current: "Old@pass1", candidate: "N@1a", confirm: "N@1a", wantMsgs: 1},
    {name: "too_long", current: "Old@pass1", candidate: "Aa1@Aa1@Aa1@Aa1@Aa1@X", confirm: "Aa1@Aa1@Aa1@Aa1@Aa1@X", wantMsgs: 1},
    {name: "no_uppercase", current: "Old@pass1", candidate: "new@pass1", confirm: "new@pass1", wantMsgs: 1},
    {name: "no_lowercase", current: "Old@pass1", candidate: "NEW@PASS1", confirm: "NEW@PASS1", wantMsgs: 1},
    {name: "no_digit", current: "Old@pass1", candidate: "New@passx", confirm: "New@passx", wantMsgs: 1},
    {name: "no_special", current: "Old@pass1", candidate: "Newpass11", confirm: "Newpass11", wantMsgs: 1},
    {name: "whitespace", current: "Old@pass1", candidate: "New @pas1", confirm: "New @pas1", wantMsgs: 1},
    {name: "same_as_current", current: "New@pass1", candidate: "New@pass1", confirm: "New@pass1", wantMsgs: 1},
    {name: "confirm_mismatch", current: "Old@pass1", candidate: "New@pass1", confirm: "New@pass2", wantMsgs: 1},
    {name: "accumulates_all_failures", current: "ab", candidate: "ab", confirm: "cd", wantMsgs: 6},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      msgs := ValidatePassword(tc.current, tc.candidate, tc.confirm)
      if len(msgs) != tc.wantMsgs {
        t.Fatalf("got %d messages %v, want %d", len(msgs), msgs, tc.wantMsgs)
      }
    })
  }
}

func TestPasswordStrength(t *testing.T) {
  cases := []struct {
    name       string
    candidate  string
    wantScore  int
    wantBucket string
  }{
    {name: "all_checks", candidate: "New@pass1", wantScore: 100, wantBucket: StrengthStrong},
    {name: "five_of_six", candidate: "Newpass11", wantScore: 83, wantBucket: StrengthStrong},
    {name: "four_of_six", candidate: "newpass11", wantScore: 66, wantBucket: StrengthMedium},
    {name: "three_of_six", candidate: "newpassxx", wantScore: 50, wantBucket: StrengthWeak},
    {name: "empty_passes_only_whitespace", candidate: "", wantScore: 16, wantBucket: StrengthWeak},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      score, bucket := PasswordStrength(tc.candidate)
      if score != tc.wantScore || bucket != tc.wantBucket {
        t.Fatalf("PasswordStrength(%q)=(%d,%s), want (%d,%s)", tc.candidate, score, bucket, tc.wantScore, tc.wantBucket)
      }
    })
  }
}
