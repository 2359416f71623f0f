package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"regionreport/internal/model"
	"regionreport/internal/store"
)

// PeriodRequest 기본 기간 설정 요청
type PeriodRequest struct {
	Year    int `json:"year" binding:"required,gte=1900,lte=2999"`
	Quarter int `json:"quarter" binding:"required,gte=1,lte=4"`
}

// GetDefaultPeriod 기본 기간 조회. 설정되지 않았으면 configured=false.
// GET /api/config/period
func (h *Handler) GetDefaultPeriod(c *gin.Context) {
	p, err := h.store.GetDefaultPeriod()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"configured": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"configured": true, "period": p, "label": p.String()})
}

// SetDefaultPeriod 기본 기간 저장
// PUT /api/config/period
func (h *Handler) SetDefaultPeriod(c *gin.Context) {
	var req PeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year 와 quarter(1~4) 가 필요합니다"})
		return
	}
	p := model.Period{Year: req.Year, Quarter: req.Quarter}
	if err := h.store.SetDefaultPeriod(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"configured": true, "period": p, "label": p.String()})
}
