package services

import (
  "context"
  "crypto/rand"
  "crypto/subtle"
  "fmt"
  "math/big"
  "time"

  redisclient "github.com/sparkbridge/hrms-backend/internal/clients/redis"
  "github.com/sparkbridge/hrms-backend/internal/clients/sms"
  "github.com/sparkbridge/hrms-backend/internal/logger"
)

const (
  otpLength      = 6
  otpTTL         = 5 * time.Minute
  // Fixed resend cooldown; runs regardless of delivery success or failure.
  otpResendCooldown = 60 * time.Second
  otpMaxAttempts    = 5
)

type OTPService interface {
  RequestOTP(ctx context.Context, mobile string) error
  VerifyOTP(ctx context.Context, mobile, code string) (*LoginResult, error)
  CooldownRemaining(ctx context.Context, mobile string) (int, error)
}

type otpService struct {
  log     *logger.Logger
  store   redisclient.Store
  sender  sms.Client
  auth    AuthService
}

func NewOTPService(log *logger.Logger, store redisclient.Store, sender sms.Client, auth AuthService) OTPService {
  return &otpService{
    log:    log.With("service", "OTPService"),
    store:  store,
    sender: sender,
    auth:   auth,
  }
}

func otpCodeKey(mobile string) string     { return "otp:code:" + mobile }
func otpCooldownKey(mobile string) string { return "otp:cooldown:" + mobile }
func otpAttemptsKey(mobile string) string { return "otp:attempts:" + mobile }

func (ot *otpService) RequestOTP(ctx context.Context, mobile string) error {
  if _, err := ot.auth.GetUserByMobile(ctx, mobile); err != nil {
    return err
  }

  if remaining, err := ot.CooldownRemaining(ctx, mobile); err != nil {
    return fmt.Errorf("check cooldown: %w", err)
  } else if remaining > 0 {
    return ErrOTPCooldown
  }

  code, err := generateOTP()
  if err != nil {
    return fmt.Errorf("generate otp: %w", err)
  }
  if err := ot.store.Set(ctx, otpCodeKey(mobile), code, otpTTL); err != nil {
    return fmt.Errorf("store otp: %w", err)
  }
  _ = ot.store.Delete(ctx, otpAttemptsKey(mobile))
  // The cooldown starts now whether or not delivery succeeds.
  if err := ot.store.Set(ctx, otpCooldownKey(mobile), "1", otpResendCooldown); err != nil {
    ot.log.Warn("Cooldown key set failed", "error", err)
  }

  if err := ot.sender.SendSMS(ctx, mobile, fmt.Sprintf("Your login OTP is %s. It is valid for 5 minutes.", code)); err != nil {
    ot.log.Warn("OTP delivery failed", "mobile", mobile, "error", err)
    return fmt.Errorf("otp delivery failed: %w", err)
  }
  return nil
}

func (ot *otpService) VerifyOTP(ctx context.Context, mobile, code string) (*LoginResult, error) {
  if !isSixDigits(code) {
    return nil, ErrOTPMalformed
  }

  stored, ok, err := ot.store.Get(ctx, otpCodeKey(mobile))
  if err != nil {
    return nil, fmt.Errorf("fetch otp: %w", err)
  }
  if !ok {
    return nil, ErrOTPExpired
  }

  attempts, err := ot.store.Incr(ctx, otpAttemptsKey(mobile), otpTTL)
  if err != nil {
    return nil, fmt.Errorf("count attempt: %w", err)
  }
  if attempts > otpMaxAttempts {
    _ = ot.store.Delete(ctx, otpCodeKey(mobile), otpAttemptsKey(mobile))
    return nil, ErrOTPConsumed
  }

  if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
    return nil, ErrOTPInvalid
  }

  _ = ot.store.Delete(ctx, otpCodeKey(mobile), otpAttemptsKey(mobile))

  user, err := ot.auth.GetUserByMobile(ctx, mobile)
  if err != nil {
    return nil, err
  }
  return ot.auth.IssueTokens(ctx, user)
}

func (ot *otpService) CooldownRemaining(ctx context.Context, mobile string) (int, error) {
  ttl, err := ot.store.TTL(ctx, otpCooldownKey(mobile))
  if err != nil {
    return 0, err
  }
  return int(ttl.Round(time.Second).Seconds()), nil
}

func generateOTP() (string, error) {
  max := big.NewInt(1000000)
  n, err := rand.Int(rand.Reader, max)
  if err != nil {
    return "", err
  }
  return fmt.Sprintf("%06d", n.Int64()), nil
}

func isSixDigits(s string) bool {
  if len(s) != otpLength {
    return false
  }
  for _, r := range s {
    if r < '0' || r > '9' {
      return false
    }
  }
  return true
}
