package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/sparkbridge/hrms-backend/internal/services"
)

type ServiceHistoryHandler struct {
  historyService  services.ServiceHistoryService
}

func NewServiceHistoryHandler(historyService services.ServiceHistoryService) *ServiceHistoryHandler {
  return &ServiceHistoryHandler{historyService: historyService}
}

func (sh *ServiceHistoryHandler) List(c *gin.Context) {
  officerID, _, ok := targetOfficer(c)
  if !ok {
    return
  }
  view, err := sh.historyService.List(c.Request.Context(), officerID)
  if err != nil {
    respondServiceError(c, err)
    return
  }
  respondOK(c, view)
}

func (sh *ServiceHistoryHandler) Create(c *gin.Context) {
  officerID, roleID, ok := targetOfficer(c)
  if !ok {
    return
  }
  var req struct {
    Fields        map[string]string    `json:"fields"`
    FieldSources  map[string]string    `json:"field_sources"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    respondError(c, http.StatusBadRequest, "invalid request body")
    return
  }
  record, err := sh.historyService.Create(c.Request.Context(), officerID, roleID, req.Fields, req.FieldSources)
  if err != nil {
    respondServiceError(c, err)
    return
  }
  respondOK(c, record)
}

func (sh *ServiceHistoryHandler) Update(c *gin.Context) {
  officerID, roleID, ok := targetOfficer(c)
  if !ok {
    return
  }
  recordID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    respondError(c, http.StatusBadRequest, "invalid record id")
    return
  }
  var req struct {
    Fields    map[string]string    `json:"fields"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    respondError(c, http.StatusBadRequest, "invalid request body")
    return
  }
  record, err := sh.historyService.Update(c.Request.Context(), officerID, recordID, roleID, req.Fields)
  if err != nil {
    respondServiceError(c, err)
    return
  }
  respondOK(c, record)
}

func (sh *ServiceHistoryHandler) Delete(c *gin.Context) {
  officerID, _, ok := targetOfficer(c)
  if !ok {
    return
  }
  recordID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    respondError(c, http.StatusBadRequest, "invalid record id")
    return
  }
  if err := sh.historyService.Delete(c.Request.Context(), officerID, recordID); err != nil {
    respondServiceError(c, err)
    return
  }
  respondOK(c, gin.H{"message": "record deleted"})
}
