package services

import (
  "context"
  "errors"
  "testing"
  "time"

  "github.com/sparkbridge/hrms-backend/internal/logger"
  "github.com/sparkbridge/hrms-backend/internal/types"
)

type fakeStore struct {
  values  map[string]string
  ttls    map[string]time.Duration
  counts  map[string]int64
}

func newFakeStore() *fakeStore {
  return &fakeStore{
    values: map[string]string{},
    ttls:   map[string]time.Duration{},
    counts: map[string]int64{},
  }
}

func (fs *fakeStore) Set(ctx context.Context, key, val string, ttl time.Duration) error {
  fs.values[key] = val
  fs.ttls[key] = ttl
  return nil
}

func (fs *fakeStore) Get(ctx context.Context, key string) (string, bool, error) {
  val, ok := fs.values[key]
  return val, ok, nil
}

func (fs *fakeStore) Delete(ctx context.Context, keys ...string) error {
  for _, key := range keys {
    delete(fs.values, key)
    delete(fs.ttls, key)
    delete(fs.counts, key)
  }
  return nil
}

func (fs *fakeStore) TTL(ctx context.Context, key string) (time.Duration, error) {
  return fs.ttls[key], nil
}

func (fs *fakeStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
  fs.counts[key]++
  return fs.counts[key], nil
}

func (fs *fakeStore) Close() error { return nil }

type fakeSender struct {
  sent     []string
  sendErr  error
}

func (fsd *fakeSender) SendSMS(ctx context.Context, to, body string) error {
  if fsd.sendErr != nil {
    return fsd.sendErr
  }
  fsd.sent = append(fsd.sent, to)
  return nil
}

type fakeAuth struct {
  user    *types.User
  issued  int
}

func (fa *fakeAuth) LoginWithPassword(ctx context.Context, mobile, password string) (*LoginResult, error) {
  return nil, errors.New("not implemented")
}

func (fa *fakeAuth) IssueTokens(ctx context.Context, user *types.User) (*LoginResult, error) {
  fa.issued++
  return &LoginResult{AccessToken: "access", RefreshToken: "refresh", RoleID: user.RoleID}, nil
}

func (fa *fakeAuth) RefreshUser(ctx context.Context) (string, string, error) {
  return "", "", errors.New("not implemented")
}

func (fa *fakeAuth) LogoutUser(ctx context.Context) error { return nil }

func (fa *fakeAuth) ChangePassword(ctx context.Context, current, candidate, confirm string) error {
  return errors.New("not implemented")
}

func (fa *fakeAuth) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  return ctx, nil
}

func (fa *fakeAuth) GetUserByMobile(ctx context.Context, mobile string) (*types.User, error) {
  if fa.user == nil || fa.user.Mobile != mobile {
    return nil, ErrUserNotFound
  }
  return fa.user, nil
}

func (fa *fakeAuth) GetAccessTTL() time.Duration { return time.Hour }

func newOTPFixture(t *testing.T) (OTPService, *fakeStore, *fakeSender, *fakeAuth) {
  t.Helper()
  log, err := logger.New("production")
  if err != nil {
    t.Fatalf("logger.New: %v", err)
  }
  store := newFakeStore()
  sender := &fakeSender{}
  auth := &fakeAuth{user: &types.User{Mobile: "9876543210", RoleID: types.RoleOfficer}}
  return NewOTPService(log, store, sender, auth), store, sender, auth
}

func TestRequestOTPStoresCodeAndCooldown(t *testing.T) {
  svc, store, sender, _ := newOTPFixture(t)
  ctx := context.Background()

  if err := svc.RequestOTP(ctx, "9876543210"); err != nil {
    t.Fatalf("RequestOTP: %v", err)
  }
  code, ok := store.values["otp:code:9876543210"]
  if !ok || !isSixDigits(code) {
    t.Fatalf("stored code = %q, want six digits", code)
  }
  if store.ttls["otp:code:9876543210"] != otpTTL {
    t.Errorf("code ttl = %v, want %v", store.ttls["otp:code:9876543210"], otpTTL)
  }
  if _, ok := store.values["otp:cooldown:9876543210"]; !ok {
    t.Error("cooldown key not set")
  }
  if len(sender.sent) != 1 {
    t.Errorf("sms sent %d times, want 1", len(sender.sent))
  }
}

func TestRequestOTPUnknownMobile(t *testing.T) {
  svc, _, _, _ := newOTPFixture(t)
  if err := svc.RequestOTP(context.Background(), "9999999999"); !errors.Is(err, ErrUserNotFound) {
    t.Fatalf("err = %v, want ErrUserNotFound", err)
  }
}

func TestRequestOTPCooldownRejectsResend(t *testing.T) {
  svc, _, _, _ := newOTPFixture(t)
  ctx := context.Background()

  if err := svc.RequestOTP(ctx, "9876543210"); err != nil {
    t.Fatalf("first RequestOTP: %v", err)
  }
  if err := svc.RequestOTP(ctx, "9876543210"); !errors.Is(err, ErrOTPCooldown) {
    t.Fatalf("second RequestOTP err = %v, want ErrOTPCooldown", err)
  }
}

func TestRequestOTPCooldownSurvivesDeliveryFailure(t *testing.T) {
  svc, store, sender, _ := newOTPFixture(t)
  sender.sendErr = errors.New("gateway down")
  ctx := context.Background()

  if err := svc.RequestOTP(ctx, "9876543210"); err == nil {
    t.Fatal("expected delivery error")
  }
  if _, ok := store.values["otp:cooldown:9876543210"]; !ok {
    t.Error("cooldown key must be set even when delivery fails")
  }
}

func TestVerifyOTP(t *testing.T) {
  cases := []struct {
    name     string
    setup    func(store *fakeStore)
    code     string
    wantErr  error
  }{
    {
      name:    "malformed_short",
      code:    "123",
      wantErr: ErrOTPMalformed,
    },
    {
      name:    "malformed_alpha",
      code:    "12a456",
      wantErr: ErrOTPMalformed,
    },
    {
      name:    "expired_or_missing",
      code:    "123456",
      wantErr: ErrOTPExpired,
    },
    {
      name: "wrong_code",
      setup: func(store *fakeStore) {
        store.values["otp:code:9876543210"] = "654321"
      },
      code:    "123456",
      wantErr: ErrOTPInvalid,
    },
    {
      name: "correct_code",
      setup: func(store *fakeStore) {
        store.values["otp:code:9876543210"] = "123456"
      },
      code:    "123456",
      wantErr: nil,
    },
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      svc, store, _, auth := newOTPFixture(t)
      if tc.setup != nil {
        tc.setup(store)
      }
      result, err := svc.VerifyOTP(context.Background(), "9876543210", tc.code)
      if tc.wantErr != nil {
        if !errors.Is(err, tc.wantErr) {
          t.Fatalf("err = %v, want %v", err, tc.wantErr)
        }
        return
      }
      if err != nil {
        t.Fatalf("VerifyOTP: %v", err)
      }
      if result == nil || result.AccessToken == "" {
        t.Fatal("expected tokens on success")
      }
      if auth.issued != 1 {
        t.Errorf("tokens issued %d times, want 1", auth.issued)
      }
      if _, ok := store.values["otp:code:9876543210"]; ok {
        t.Error("code must be consumed after successful verify")
      }
    })
  }
}

func TestVerifyOTPAttemptLimit(t *testing.T) {
  svc, store, _, _ := newOTPFixture(t)
  ctx := context.Background()
  store.values["otp:code:9876543210"] = "654321"

  for i := 0; i < otpMaxAttempts; i++ {
    if _, err := svc.VerifyOTP(ctx, "9876543210", "123456"); !errors.Is(err, ErrOTPInvalid) {
      t.Fatalf("attempt %d err = %v, want ErrOTPInvalid", i+1, err)
    }
  }
  if _, err := svc.VerifyOTP(ctx, "9876543210", "123456"); !errors.Is(err, ErrOTPConsumed) {
    t.Fatalf("err = %v, want ErrOTPConsumed", err)
  }
  if _, ok := store.values["otp:code:9876543210"]; ok {
    t.Error("code must be discarded once the attempt limit is hit")
  }
}
