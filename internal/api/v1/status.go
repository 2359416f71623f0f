package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 시스템 상태
type StatusResponse struct {
	Templates     int    `json:"templates"`
	SheetSchemas  int    `json:"sheetSchemas"`
	DefaultPeriod string `json:"defaultPeriod"`
	LastFillTime  string `json:"lastFillTime"`
	MissingValue  string `json:"missingValue"`
}

// GetStatus 시스템 상태
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{MissingValue: h.opts.Format.Missing}

	if list, err := h.store.ListTemplates(); err == nil {
		resp.Templates = len(list)
	}
	if merged, err := h.store.MergedSchemas(h.schemas); err == nil {
		resp.SheetSchemas = len(merged.Sheets)
	}
	if p, err := h.store.GetDefaultPeriod(); err == nil {
		resp.DefaultPeriod = p.String()
	}
	if logs, err := h.store.ListFillLogs(1); err == nil && len(logs) > 0 {
		resp.LastFillTime = logs[0].CreatedAt.Format("2006-01-02 15:04:05")
	}

	c.JSON(http.StatusOK, resp)
}
