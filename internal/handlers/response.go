package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/sparkbridge/hrms-backend/internal/services"
)

// Response envelope shared by every endpoint.
func respondOK(c *gin.Context, data interface{}) {
  c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, status int, detail string) {
  c.JSON(status, gin.H{"success": false, "detail": detail})
}

// respondServiceError maps service-layer failures onto the statuses the
// client flows distinguish. Validation failures carry their field map in
// data so forms can annotate inline.
func respondServiceError(c *gin.Context, err error) {
  var ve *services.ValidationError
  if errors.As(err, &ve) {
    c.JSON(http.StatusBadRequest, gin.H{"success": false, "detail": "validation failed", "data": gin.H{"errors": ve.Fields}})
    return
  }
  var pe *services.PasswordPolicyError
  if errors.As(err, &pe) {
    c.JSON(http.StatusBadRequest, gin.H{"success": false, "detail": "password policy failed", "data": gin.H{"messages": pe.Messages}})
    return
  }
  switch {
  case errors.Is(err, services.ErrOTPMalformed):
    respondError(c, http.StatusBadRequest, err.Error())
  case errors.Is(err, services.ErrOTPInvalid):
    respondError(c, http.StatusUnauthorized, err.Error())
  case errors.Is(err, services.ErrOTPExpired), errors.Is(err, services.ErrOTPConsumed):
    respondError(c, http.StatusGone, err.Error())
  case errors.Is(err, services.ErrOTPCooldown):
    respondError(c, http.StatusTooManyRequests, err.Error())
  case errors.Is(err, services.ErrInvalidCredentials):
    respondError(c, http.StatusUnauthorized, err.Error())
  case errors.Is(err, services.ErrUserNotFound):
    respondError(c, http.StatusNotFound, err.Error())
  case errors.Is(err, services.ErrNotAuthorized):
    respondError(c, http.StatusForbidden, err.Error())
  default:
    respondError(c, http.StatusInternalServerError, "something went wrong, please try again")
  }
}
