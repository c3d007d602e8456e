package services

import (
  "errors"
  "fmt"
)

// OTP failure classes. The handler maps these onto the HTTP statuses the
// login flow distinguishes: malformed input → 400, wrong code → 401,
// expired or consumed code → 410 (the client must request a fresh code).
var (
  ErrOTPMalformed = errors.New("otp must be a 6-digit code")
  ErrOTPInvalid   = errors.New("incorrect otp")
  ErrOTPExpired   = errors.New("otp expired or not requested")
  ErrOTPConsumed  = errors.New("too many attempts, otp invalidated")
  ErrOTPCooldown  = errors.New("otp recently sent, wait before requesting again")
)

var (
  ErrInvalidCredentials = errors.New("invalid mobile number or password")
  ErrUserNotFound       = errors.New("user not found")
  ErrNotAuthorized      = errors.New("not authorized")
)

// ValidationError carries the field-to-message map produced by submit-time
// validation. Submission is blocked while any entry exists.
type ValidationError struct {
  Fields map[string]string
}

func (ve *ValidationError) Error() string {
  return fmt.Sprintf("validation failed for %d field(s)", len(ve.Fields))
}

// PasswordPolicyError carries the accumulated password rule messages.
type PasswordPolicyError struct {
  Messages []string
}

func (pe *PasswordPolicyError) Error() string {
  return fmt.Sprintf("password policy failed %d check(s)", len(pe.Messages))
}
