// Package v1 보고서 채우기 HTTP API
package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ternarybob/arbor"

	"regionreport/internal/model"
	"regionreport/internal/service/filler"
	"regionreport/internal/store"
)

// Handler V1 API 처리기
type Handler struct {
	store      *store.Store
	schemas    *model.SchemaSet
	opts       filler.Options
	reportsDir string
	logger     arbor.ILogger
	downloads  *reportDownloadStore
}

// NewHandler 처리기 생성. schemas 는 파일에서 읽은 기본 스키마, 저장소 덮어쓰기는 요청마다 합친다.
func NewHandler(st *store.Store, schemas *model.SchemaSet, opts filler.Options, reportsDir string, logger arbor.ILogger) *Handler {
	if logger == nil {
		logger = arbor.NewNoOpLogger()
	}
	return &Handler{
		store:      st,
		schemas:    schemas,
		opts:       opts,
		reportsDir: reportsDir,
		logger:     logger,
		downloads:  newReportDownloadStore(),
	}
}

// RegisterRoutes 라우트 등록
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	// 기본 기간
	router.GET("/config/period", h.GetDefaultPeriod)
	router.PUT("/config/period", h.SetDefaultPeriod)

	// 채우기
	router.POST("/fill", h.Fill)
	router.GET("/fill/download/:token", h.DownloadReport)
	router.POST("/periods", h.Periods)
	router.POST("/validate", h.Validate)
	router.GET("/history", h.ListHistory)

	// 템플릿
	router.GET("/templates", h.ListTemplates)
	router.GET("/templates/:name", h.GetTemplate)
	router.PUT("/templates/:name", h.SaveTemplate)
	router.DELETE("/templates/:name", h.DeleteTemplate)

	// 시트 스키마
	router.GET("/schemas", h.ListSchemas)
	router.GET("/schemas/:sheet", h.GetSchema)
	router.PUT("/schemas/:sheet", h.SaveSchema)
	router.DELETE("/schemas/:sheet", h.DeleteSchema)
}

// newFiller 저장된 스키마 덮어쓰기를 반영한 Filler
func (h *Handler) newFiller() (*filler.Filler, error) {
	schemas, err := h.store.MergedSchemas(h.schemas)
	if err != nil {
		return nil, err
	}
	return filler.New(schemas, h.opts, h.logger), nil
}

func storeError(c *gin.Context, err error, notFound string) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
