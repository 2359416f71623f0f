package v1

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"regionreport/internal/model"
	"regionreport/internal/service/excel"
	"regionreport/internal/service/filler"
	"regionreport/internal/store"
)

// fillForm 채우기/검증 요청 (multipart). 워크북은 "file" 필드.
type fillForm struct {
	Template     string `form:"template"`
	TemplateName string `form:"templateName"`
	Year         int    `form:"year" binding:"omitempty,gte=1900,lte=2999"`
	Quarter      int    `form:"quarter" binding:"omitempty,gte=1,lte=4"`
}

// FillResponse 채우기 응답
type FillResponse struct {
	Report        *model.FillReport `json:"report"`
	Resolved      int               `json:"resolved"`
	DownloadToken string            `json:"downloadToken,omitempty"`
}

// Fill 업로드한 워크북으로 템플릿 채우기
// POST /api/fill
func (h *Handler) Fill(c *gin.Context) {
	form, ok := h.bindFillForm(c)
	if !ok {
		return
	}
	tmpl, templateName, ok := h.templateFor(c, form)
	if !ok {
		return
	}
	period, ok := h.periodFor(c, form)
	if !ok {
		return
	}
	wb, workbookName, ok := openUpload(c)
	if !ok {
		return
	}
	defer wb.Close()

	f, err := h.newFiller()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	report, err := f.Fill(wb, filler.Request{Template: tmpl, Period: period})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.CreateFillLog(templateName, workbookName, report); err != nil {
		h.logger.Warn().Err(err).Str("report_id", report.ID).Msg("fill log not recorded")
	}

	resp := FillResponse{Report: report, Resolved: report.Resolved()}
	if token, err := h.saveReport(report); err != nil {
		h.logger.Warn().Err(err).Str("report_id", report.ID).Msg("report file not saved")
	} else {
		resp.DownloadToken = token
	}
	c.JSON(http.StatusOK, resp)
}

// DownloadReport 채운 보고서 내려받기
// GET /api/fill/download/:token
func (h *Handler) DownloadReport(c *gin.Context) {
	item, ok := h.downloads.get(c.Param("token"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "다운로드 링크가 만료되었거나 없습니다"})
		return
	}
	c.FileAttachment(item.filePath, item.fileName)
}

// Periods 업로드한 워크북의 시트별 사용 가능 기간
// POST /api/periods
func (h *Handler) Periods(c *gin.Context) {
	wb, _, ok := openUpload(c)
	if !ok {
		return
	}
	defer wb.Close()

	f, err := h.newFiller()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	periods, err := f.Periods(wb)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"periods": periods})
}

// Validate 값을 채우지 않고 마커와 기간만 검사
// POST /api/validate
func (h *Handler) Validate(c *gin.Context) {
	form, ok := h.bindFillForm(c)
	if !ok {
		return
	}
	tmpl, _, ok := h.templateFor(c, form)
	if !ok {
		return
	}
	period, ok := h.periodFor(c, form)
	if !ok {
		return
	}
	wb, _, ok := openUpload(c)
	if !ok {
		return
	}
	defer wb.Close()

	f, err := h.newFiller()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	failures, err := f.Validate(wb, filler.Request{Template: tmpl, Period: period})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": len(failures) == 0, "failures": failures})
}

// ListHistory 최근 채우기 이력
// GET /api/history
func (h *Handler) ListHistory(c *gin.Context) {
	var q struct {
		Limit int `form:"limit" binding:"omitempty,gte=1,lte=500"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit 은 1~500 이어야 합니다"})
		return
	}
	logs, err := h.store.ListFillLogs(q.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": logs})
}

func (h *Handler) bindFillForm(c *gin.Context) (fillForm, bool) {
	var form fillForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "잘못된 요청입니다: " + err.Error()})
		return form, false
	}
	return form, true
}

// templateFor 본문이 오면 그대로, 아니면 저장된 템플릿 이름으로 조회
func (h *Handler) templateFor(c *gin.Context, form fillForm) (string, string, bool) {
	if strings.TrimSpace(form.Template) != "" {
		return form.Template, form.TemplateName, true
	}
	if form.TemplateName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "template 또는 templateName 이 필요합니다"})
		return "", "", false
	}
	t, err := h.store.GetTemplate(form.TemplateName)
	if err != nil {
		storeError(c, err, "템플릿을 찾을 수 없습니다: "+form.TemplateName)
		return "", "", false
	}
	return t.Body, t.Name, true
}

// periodFor 연도/분기는 함께 지정한다. 둘 다 없으면 저장된 기본 기간, 그것도 없으면 시트별 최신.
func (h *Handler) periodFor(c *gin.Context, form fillForm) (model.Period, bool) {
	if form.Year == 0 && form.Quarter == 0 {
		p, err := h.store.GetDefaultPeriod()
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				h.logger.Warn().Err(err).Msg("default period unreadable")
			}
			return model.Period{}, true
		}
		return p, true
	}
	if form.Year == 0 || form.Quarter == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year 와 quarter 는 함께 지정해야 합니다"})
		return model.Period{}, false
	}
	return model.Period{Year: form.Year, Quarter: form.Quarter}, true
}

func openUpload(c *gin.Context) (*excel.File, string, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "업로드 파일이 없습니다"})
		return nil, "", false
	}
	src, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "업로드 파일을 열 수 없습니다"})
		return nil, "", false
	}
	defer src.Close()

	wb, err := excel.OpenReader(src)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return nil, "", false
	}
	return wb, fh.Filename, true
}

// saveReport 결과 본문을 reports 디렉터리에 쓰고 다운로드 토큰 발급
func (h *Handler) saveReport(report *model.FillReport) (string, error) {
	if h.reportsDir == "" {
		return "", fmt.Errorf("reports directory not configured")
	}
	if err := os.MkdirAll(h.reportsDir, 0755); err != nil {
		return "", err
	}
	ext := ".txt"
	if strings.HasPrefix(http.DetectContentType([]byte(report.Text)), "text/html") {
		ext = ".html"
	}
	name := "report-" + report.ID + ext
	path := filepath.Join(h.reportsDir, name)
	if err := os.WriteFile(path, []byte(report.Text), 0644); err != nil {
		return "", err
	}
	return h.downloads.put(path, name, downloadTTL), nil
}
