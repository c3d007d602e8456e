package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/sparkbridge/hrms-backend/internal/services"
)

type MasterDataHandler struct {
  masterDataService  services.MasterDataService
}

func NewMasterDataHandler(masterDataService services.MasterDataService) *MasterDataHandler {
  return &MasterDataHandler{masterDataService: masterDataService}
}

// GetAll returns every reference table in one payload; tables that failed
// to load come back as empty lists.
func (mh *MasterDataHandler) GetAll(c *gin.Context) {
  tables, err := mh.masterDataService.GetAll(c.Request.Context())
  if err != nil {
    respondServiceError(c, err)
    return
  }
  respondOK(c, tables)
}
