package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"regionreport/internal/model"
)

// SaveTemplateRequest 템플릿 저장 요청
type SaveTemplateRequest struct {
	Description string `json:"description"`
	Body        string `json:"body" binding:"required"`
}

// ListTemplates 템플릿 목록 (본문 제외)
// GET /api/templates
func (h *Handler) ListTemplates(c *gin.Context) {
	list, err := h.store.ListTemplates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if list == nil {
		list = []model.Template{}
	}
	c.JSON(http.StatusOK, gin.H{"templates": list})
}

// GetTemplate 템플릿 조회
// GET /api/templates/:name
func (h *Handler) GetTemplate(c *gin.Context) {
	name := c.Param("name")
	t, err := h.store.GetTemplate(name)
	if err != nil {
		storeError(c, err, "템플릿을 찾을 수 없습니다: "+name)
		return
	}
	c.JSON(http.StatusOK, t)
}

// SaveTemplate 템플릿 생성/수정
// PUT /api/templates/:name
func (h *Handler) SaveTemplate(c *gin.Context) {
	var req SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "템플릿 본문이 필요합니다"})
		return
	}
	t := &model.Template{
		Name:        c.Param("name"),
		Description: req.Description,
		Body:        req.Body,
	}
	if err := h.store.SaveTemplate(t); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.logger.Info().Str("template", t.Name).Str("id", t.ID).Msg("template saved")
	c.JSON(http.StatusOK, t)
}

// DeleteTemplate 템플릿 삭제
// DELETE /api/templates/:name
func (h *Handler) DeleteTemplate(c *gin.Context) {
	name := c.Param("name")
	if err := h.store.DeleteTemplate(name); err != nil {
		storeError(c, err, "템플릿을 찾을 수 없습니다: "+name)
		return
	}
	c.Status(http.StatusNoContent)
}
