package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"regionreport/internal/model"
)

// ListSchemas 파일 스키마와 저장된 덮어쓰기를 합친 결과
// GET /api/schemas
func (h *Handler) ListSchemas(c *gin.Context) {
	merged, err := h.store.MergedSchemas(h.schemas)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if merged.Sheets == nil {
		merged.Sheets = []model.SheetSchema{}
	}
	c.JSON(http.StatusOK, merged)
}

// GetSchema 시트 스키마 (덮어쓰기 우선)
// GET /api/schemas/:sheet
func (h *Handler) GetSchema(c *gin.Context) {
	sheet := c.Param("sheet")
	merged, err := h.store.MergedSchemas(h.schemas)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	schema := merged.Lookup(sheet)
	if schema == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "시트 스키마가 없습니다: " + sheet})
		return
	}
	c.JSON(http.StatusOK, schema)
}

// SaveSchema 시트 스키마 덮어쓰기 저장. 이름은 경로 값을 쓴다.
// PUT /api/schemas/:sheet
func (h *Handler) SaveSchema(c *gin.Context) {
	var schema model.SheetSchema
	if err := c.ShouldBindJSON(&schema); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "잘못된 스키마입니다: " + err.Error()})
		return
	}
	schema.Name = c.Param("sheet")
	if err := h.store.SaveSheetSchema(schema); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger.Info().Str("sheet", schema.Name).Msg("sheet schema saved")
	c.JSON(http.StatusOK, schema)
}

// DeleteSchema 덮어쓰기 제거 (파일 스키마는 남는다)
// DELETE /api/schemas/:sheet
func (h *Handler) DeleteSchema(c *gin.Context) {
	sheet := c.Param("sheet")
	if err := h.store.DeleteSheetSchema(sheet); err != nil {
		storeError(c, err, "저장된 시트 스키마가 없습니다: "+sheet)
		return
	}
	c.Status(http.StatusNoContent)
}
