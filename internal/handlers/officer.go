package handlers

import (
  "encoding/json"
  "net/http"
  "time"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "github.com/sparkbridge/hrms-backend/internal/requestdata"
  "github.com/sparkbridge/hrms-backend/internal/services"
  "github.com/sparkbridge/hrms-backend/internal/types"
)

type OfficerHandler struct {
  officerService  services.OfficerService
}

func NewOfficerHandler(officerService services.OfficerService) *OfficerHandler {
  return &OfficerHandler{officerService: officerService}
}

// targetOfficer resolves which officer a request operates on: officers act
// on their own record; operators pass an explicit officer_id.
func targetOfficer(c *gin.Context) (uuid.UUID, int, bool) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    respondError(c, http.StatusUnauthorized, "missing request context")
    return uuid.Nil, 0, false
  }
  if rd.RoleID == types.RoleOperator {
    if raw := c.Query("officer_id"); raw != "" {
      id, err := uuid.Parse(raw)
      if err != nil {
        respondError(c, http.StatusBadRequest, "invalid officer_id")
        return uuid.Nil, 0, false
      }
      return id, rd.RoleID, true
    }
  }
  if rd.OfficerID == uuid.Nil {
    respondError(c, http.StatusForbidden, "no officer record linked to this account")
    return uuid.Nil, 0, false
  }
  return rd.OfficerID, rd.RoleID, true
}

func (oh *OfficerHandler) GetProfile(c *gin.Context) {
  officerID, roleID, ok := targetOfficer(c)
  if !ok {
    return
  }
  view, err := oh.officerService.GetProfile(c.Request.Context(), officerID, roleID)
  if err != nil {
    respondServiceError(c, err)
    return
  }
  respondOK(c, view)
}

func (oh *OfficerHandler) UpdateProfile(c *gin.Context) {
  officerID, roleID, ok := targetOfficer(c)
  if !ok {
    return
  }
  var req struct {
    Fields    map[string]string    `json:"fields"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    respondError(c, http.StatusBadRequest, "invalid request body")
    return
  }
  view, err := oh.officerService.UpdateProfile(c.Request.Context(), officerID, roleID, req.Fields)
  if err != nil {
    respondServiceError(c, err)
    return
  }
  respondOK(c, view)
}

// IngestSparkSync accepts the latest payroll feed for an officer.
// Operator-only; the router enforces the role.
func (oh *OfficerHandler) IngestSparkSync(c *gin.Context) {
  var req struct {
    OfficerID       string                  `json:"officer_id"`
    Profile         map[string]interface{}  `json:"profile"`
    ServiceDetails  []map[string]string     `json:"service_details"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    respondError(c, http.StatusBadRequest, "invalid request body")
    return
  }
  officerID, err := uuid.Parse(req.OfficerID)
  if err != nil {
    respondError(c, http.StatusBadRequest, "invalid officer_id")
    return
  }
  details, err := datatypesJSON(req.ServiceDetails)
  if err != nil {
    respondError(c, http.StatusBadRequest, "invalid service_details")
    return
  }
  sync := &types.SparkSync{
    OfficerID:      officerID,
    Profile:        req.Profile,
    ServiceDetails: details,
    SyncedAt:       time.Now(),
  }
  if err := oh.officerService.IngestSparkSync(c.Request.Context(), sync); err != nil {
    respondServiceError(c, err)
    return
  }
  respondOK(c, gin.H{"message": "sync stored"})
}

func datatypesJSON(v interface{}) (datatypes.JSON, error) {
  raw, err := json.Marshal(v)
  if err != nil {
    return nil, err
  }
  return datatypes.JSON(raw), nil
}
