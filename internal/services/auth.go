package services

import (
  "context"
  "encoding/json"
  "fmt"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "golang.org/x/crypto/bcrypt"
  "gorm.io/gorm"

  redisclient "github.com/sparkbridge/hrms-backend/internal/clients/redis"
  "github.com/sparkbridge/hrms-backend/internal/logger"
  "github.com/sparkbridge/hrms-backend/internal/repos"
  "github.com/sparkbridge/hrms-backend/internal/requestdata"
  "github.com/sparkbridge/hrms-backend/internal/types"
  "github.com/sparkbridge/hrms-backend/internal/validation"
)

type JWTClaims struct {
  RoleID int `json:"role_id"`
  jwt.RegisteredClaims
}

// LoginResult is what both credential flows (password and OTP) hand back.
// PasswordExpired forces a rotation before the client proceeds.
type LoginResult struct {
  AccessToken        string      `json:"access_token"`
  RefreshToken       string      `json:"refresh_token"`
  ExpiresIn          int         `json:"expires_in"`
  RoleID             int         `json:"role_id"`
  OfficerID          *uuid.UUID  `json:"officer_id,omitempty"`
  PasswordExpired    bool        `json:"password_expired"`
  MenuPermissions    []string    `json:"menu_permissions"`
  ActionPermissions  []string    `json:"action_permissions"`
}

type AuthService interface {
  LoginWithPassword(ctx context.Context, mobile, password string) (*LoginResult, error)
  IssueTokens(ctx context.Context, user *types.User) (*LoginResult, error)
  RefreshUser(ctx context.Context) (string, string, error)
  LogoutUser(ctx context.Context) error
  ChangePassword(ctx context.Context, current, candidate, confirm string) error
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
  GetUserByMobile(ctx context.Context, mobile string) (*types.User, error)
  GetAccessTTL() time.Duration
}

type authService struct {
  db              *gorm.DB
  log             *logger.Logger
  userRepo        repos.UserRepo
  userTokenRepo   repos.UserTokenRepo
  masterDataRepo  repos.MasterDataRepo
  sessions        redisclient.Store
  jwtSecretKey    string
  accessTTL       time.Duration
  refreshTTL      time.Duration
  passwordExpiry  time.Duration
}

func NewAuthService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  userTokenRepo repos.UserTokenRepo,
  masterDataRepo repos.MasterDataRepo,
  sessions redisclient.Store,
  jwtSecretKey string,
  accessTTL time.Duration,
  refreshTTL time.Duration,
  passwordExpiryDays int,
) AuthService {
  return &authService{
    db:             db,
    log:            log.With("service", "AuthService"),
    userRepo:       userRepo,
    userTokenRepo:  userTokenRepo,
    masterDataRepo: masterDataRepo,
    sessions:       sessions,
    jwtSecretKey:   jwtSecretKey,
    accessTTL:      accessTTL,
    refreshTTL:     refreshTTL,
    passwordExpiry: time.Duration(passwordExpiryDays) * 24 * time.Hour,
  }
}

func (as *authService) GetUserByMobile(ctx context.Context, mobile string) (*types.User, error) {
  users, err := as.userRepo.GetByMobiles(ctx, nil, []string{mobile})
  if err != nil {
    return nil, fmt.Errorf("fetch user by mobile: %w", err)
  }
  if len(users) == 0 {
    return nil, ErrUserNotFound
  }
  return users[0], nil
}

func (as *authService) LoginWithPassword(ctx context.Context, mobile, password string) (*LoginResult, error) {
  user, err := as.GetUserByMobile(ctx, mobile)
  if err != nil {
    if err == ErrUserNotFound {
      return nil, ErrInvalidCredentials
    }
    return nil, err
  }
  if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
    return nil, ErrInvalidCredentials
  }
  return as.IssueTokens(ctx, user)
}

// IssueTokens opens a fresh session for the user: any previous token rows
// are replaced, a session entry lands in Redis, and the two RBAC permission
// fetches run best-effort (a failed fetch degrades to an empty set and a
// warning; it never blocks the login).
func (as *authService) IssueTokens(ctx context.Context, user *types.User) (*LoginResult, error) {
  var accessToken, refreshToken string
  err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := as.userTokenRepo.DeleteByUserIDs(ctx, tx, []uuid.UUID{user.ID}); err != nil {
      return fmt.Errorf("clear previous tokens: %w", err)
    }
    tok, genErr := as.generateAccessToken(user)
    if genErr != nil {
      return fmt.Errorf("generate access token: %w", genErr)
    }
    accessToken = tok
    refreshToken = uuid.New().String()
    userToken := types.UserToken{
      ID:           uuid.New(),
      UserID:       user.ID,
      AccessToken:  accessToken,
      RefreshToken: refreshToken,
      ExpiresAt:    time.Now().Add(as.refreshTTL),
    }
    if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&userToken}); err != nil {
      return fmt.Errorf("create user token: %w", err)
    }
    return nil
  })
  if err != nil {
    return nil, err
  }

  as.storeSession(ctx, user)

  result := &LoginResult{
    AccessToken:       accessToken,
    RefreshToken:      refreshToken,
    ExpiresIn:         int(as.accessTTL.Seconds()),
    RoleID:            user.RoleID,
    OfficerID:         user.OfficerID,
    PasswordExpired:   as.passwordExpired(user),
    MenuPermissions:   as.loadPermissions(ctx, user.RoleID, "menu"),
    ActionPermissions: as.loadPermissions(ctx, user.RoleID, "action"),
  }
  return result, nil
}

func (as *authService) passwordExpired(user *types.User) bool {
  if user.PasswordChangedAt.IsZero() {
    return true
  }
  return time.Since(user.PasswordChangedAt) > as.passwordExpiry
}

func (as *authService) loadPermissions(ctx context.Context, roleID int, kind string) []string {
  perms, err := as.masterDataRepo.GetPermissions(ctx, nil, roleID, kind)
  if err != nil {
    as.log.Warn("Permission fetch failed, degrading to empty set", "kind", kind, "role_id", roleID, "error", err)
    return []string{}
  }
  out := make([]string, 0, len(perms))
  for _, p := range perms {
    out = append(out, p.Permission)
  }
  return out
}

func (as *authService) storeSession(ctx context.Context, user *types.User) {
  if as.sessions == nil {
    return
  }
  payload, err := json.Marshal(map[string]interface{}{
    "role_id":    user.RoleID,
    "officer_id": user.OfficerID,
  })
  if err != nil {
    return
  }
  if err := as.sessions.Set(ctx, "session:"+user.ID.String(), string(payload), as.refreshTTL); err != nil {
    as.log.Warn("Session store failed", "error", err)
  }
}

func (as *authService) RefreshUser(ctx context.Context) (string, string, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.RefreshToken == "" {
    return "", "", fmt.Errorf("no refresh token in request context")
  }

  var accessToken, newRefreshToken string
  err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    foundTokens, ftErr := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{rd.RefreshToken})
    if ftErr != nil {
      return fmt.Errorf("fetch refresh token: %w", ftErr)
    }
    if len(foundTokens) == 0 {
      return fmt.Errorf("refresh token not found")
    }
    existing := foundTokens[0]
    if existing.ExpiresAt.Before(time.Now()) {
      if dErr := as.userTokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); dErr != nil {
        return fmt.Errorf("delete expired refresh token: %w", dErr)
      }
      return fmt.Errorf("refresh token expired")
    }
    users, uErr := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{existing.UserID})
    if uErr != nil || len(users) == 0 {
      return fmt.Errorf("load user for refresh: %w", uErr)
    }
    user := users[0]
    tok, genErr := as.generateAccessToken(user)
    if genErr != nil {
      return fmt.Errorf("generate access token: %w", genErr)
    }
    accessToken = tok
    newRefreshToken = uuid.New().String()
    newToken := types.UserToken{
      ID:           uuid.New(),
      UserID:       user.ID,
      AccessToken:  accessToken,
      RefreshToken: newRefreshToken,
      ExpiresAt:    time.Now().Add(as.refreshTTL),
    }
    if _, cErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&newToken}); cErr != nil {
      return fmt.Errorf("create rotated token: %w", cErr)
    }
    return as.userTokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existing.ID})
  })
  if err != nil {
    return "", "", err
  }
  return accessToken, newRefreshToken, nil
}

// LogoutUser tears the whole session down: token rows and the Redis session
// entry are cleared wholesale, mirroring the client's storage wipe.
func (as *authService) LogoutUser(ctx context.Context) error {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.TokenString == "" {
    return fmt.Errorf("no access token in request context")
  }
  if as.sessions != nil {
    _ = as.sessions.Delete(ctx, "session:"+rd.UserID.String())
  }
  return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return as.userTokenRepo.DeleteByUserIDs(ctx, tx, []uuid.UUID{rd.UserID})
  })
}

func (as *authService) ChangePassword(ctx context.Context, current, candidate, confirm string) error {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return ErrNotAuthorized
  }
  users, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
  if err != nil || len(users) == 0 {
    return ErrUserNotFound
  }
  user := users[0]
  if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
    return ErrInvalidCredentials
  }
  if msgs := validation.ValidatePassword(current, candidate, confirm); len(msgs) > 0 {
    return &PasswordPolicyError{Messages: msgs}
  }
  hash, err := bcrypt.GenerateFromPassword([]byte(candidate), bcrypt.DefaultCost)
  if err != nil {
    return fmt.Errorf("hash password: %w", err)
  }
  return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := as.userRepo.UpdatePassword(ctx, tx, user.ID, string(hash), time.Now()); err != nil {
      return fmt.Errorf("update password: %w", err)
    }
    // Rotation invalidates every open session.
    return as.userTokenRepo.DeleteByUserIDs(ctx, tx, []uuid.UUID{user.ID})
  })
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
  claims := JWTClaims{
    RoleID: user.RoleID,
    RegisteredClaims: jwt.RegisteredClaims{
      Subject:   user.ID.String(),
      ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
      IssuedAt:  jwt.NewNumericDate(time.Now()),
    },
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  if tokenString == "" {
    return ctx, fmt.Errorf("empty token")
  }
  parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil {
    return ctx, fmt.Errorf("parse token: %w", err)
  }
  claims, ok := parsedToken.Claims.(*JWTClaims)
  if !ok || !parsedToken.Valid {
    return ctx, fmt.Errorf("invalid or expired token")
  }
  userID, err := uuid.Parse(claims.Subject)
  if err != nil {
    return ctx, fmt.Errorf("invalid user id in token: %w", err)
  }

  foundTokens, ftErr := as.userTokenRepo.GetByAccessTokens(ctx, nil, []string{tokenString})
  if ftErr != nil {
    return ctx, fmt.Errorf("fetch token row: %w", ftErr)
  }
  if len(foundTokens) == 0 {
    return ctx, fmt.Errorf("token revoked")
  }

  rd := &requestdata.RequestData{
    TokenString:  tokenString,
    RefreshToken: foundTokens[0].RefreshToken,
    UserID:       userID,
    RoleID:       claims.RoleID,
  }
  users, uErr := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if uErr == nil && len(users) > 0 && users[0].OfficerID != nil {
    rd.OfficerID = *users[0].OfficerID
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
  return as.accessTTL
}
