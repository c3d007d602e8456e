package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/sparkbridge/hrms-backend/internal/services"
  "github.com/sparkbridge/hrms-backend/internal/validation"
)

type AuthHandler struct {
  authService  services.AuthService
  otpService   services.OTPService
}

func NewAuthHandler(authService services.AuthService, otpService services.OTPService) *AuthHandler {
  return &AuthHandler{authService: authService, otpService: otpService}
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req struct {
    Mobile    string    `json:"mobile"`
    Password  string    `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    respondError(c, http.StatusBadRequest, "invalid request body")
    return
  }
  result, err := ah.authService.LoginWithPassword(c.Request.Context(), req.Mobile, req.Password)
  if err != nil {
    respondServiceError(c, err)
    return
  }
  respondOK(c, result)
}

func (ah *AuthHandler) RequestOTP(c *gin.Context) {
  var req struct {
    Mobile    string    `json:"mobile"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    respondError(c, http.StatusBadRequest, "invalid request body")
    return
  }
  if err := ah.otpService.RequestOTP(c.Request.Context(), req.Mobile); err != nil {
    respondServiceError(c, err)
    return
  }
  respondOK(c, gin.H{"message": "otp sent"})
}

func (ah *AuthHandler) VerifyOTP(c *gin.Context) {
  var req struct {
    Mobile    string    `json:"mobile"`
    OTP       string    `json:"otp"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    respondError(c, http.StatusBadRequest, "invalid request body")
    return
  }
  result, err := ah.otpService.VerifyOTP(c.Request.Context(), req.Mobile, req.OTP)
  if err != nil {
    respondServiceError(c, err)
    return
  }
  respondOK(c, result)
}

func (ah *AuthHandler) OTPCooldown(c *gin.Context) {
  mobile := c.Query("mobile")
  if mobile == "" {
    respondError(c, http.StatusBadRequest, "mobile is required")
    return
  }
  remaining, err := ah.otpService.CooldownRemaining(c.Request.Context(), mobile)
  if err != nil {
    respondServiceError(c, err)
    return
  }
  respondOK(c, gin.H{"cooldown_seconds": remaining, "can_request": remaining == 0})
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
  accessToken, refreshToken, err := ah.authService.RefreshUser(c.Request.Context())
  if err != nil {
    respondError(c, http.StatusUnauthorized, err.Error())
    return
  }
  respondOK(c, gin.H{
    "access_token":  accessToken,
    "refresh_token": refreshToken,
    "expires_in":    int(ah.authService.GetAccessTTL().Seconds()),
  })
}

func (ah *AuthHandler) Logout(c *gin.Context) {
  if err := ah.authService.LogoutUser(c.Request.Context()); err != nil {
    respondError(c, http.StatusBadRequest, err.Error())
    return
  }
  respondOK(c, gin.H{"message": "logged out"})
}

func (ah *AuthHandler) ChangePassword(c *gin.Context) {
  var req struct {
    CurrentPassword  string    `json:"current_password"`
    NewPassword      string    `json:"new_password"`
    ConfirmPassword  string    `json:"confirm_password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    respondError(c, http.StatusBadRequest, "invalid request body")
    return
  }
  if err := ah.authService.ChangePassword(c.Request.Context(), req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
    respondServiceError(c, err)
    return
  }
  respondOK(c, gin.H{"message": "password changed"})
}

// PasswordStrength lets clients render live feedback from the same rule
// set the server enforces.
func (ah *AuthHandler) PasswordStrength(c *gin.Context) {
  var req struct {
    Password  string    `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    respondError(c, http.StatusBadRequest, "invalid request body")
    return
  }
  score, bucket := validation.PasswordStrength(req.Password)
  respondOK(c, gin.H{"score": score, "strength": bucket})
}
