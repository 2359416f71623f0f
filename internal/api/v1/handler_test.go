package v1_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "regionreport/internal/api/v1"
	"regionreport/internal/model"
	"regionreport/internal/service/filler"
	"regionreport/internal/store"
	"regionreport/internal/testutil"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testServer struct {
	router   *gin.Engine
	store    *store.Store
	workbook []byte
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dir := t.TempDir()
	st, err := store.New(filepath.Join(dir, "regionreport.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	base := &model.SchemaSet{Sheets: []model.SheetSchema{{Name: "고용률", Labor: true}}}
	h := v1.NewHandler(st, base, filler.DefaultOptions(), filepath.Join(dir, "reports"), nil)
	router := gin.New()
	h.RegisterRoutes(router.Group("/api"))

	return &testServer{
		router: router,
		store:  st,
		workbook: testutil.WorkbookBytes(t,
			testutil.Sheet{Name: "광공업생산", Rows: testutil.IndustryRows()},
			testutil.Sheet{Name: "고용률", Rows: testutil.LaborRows()},
		),
	}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// upload multipart 요청. workbook 이 nil 이면 파일 필드 없이 보낸다.
func (s *testServer) upload(t *testing.T, path string, fields map[string]string, workbook []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if workbook != nil {
		fw, err := mw.CreateFormFile("file", "regional.xlsx")
		require.NoError(t, err)
		_, err = fw.Write(workbook)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.do(req)
}

func (s *testServer) json(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestFill(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	w := s.upload(t, "/api/fill", map[string]string{
		"template": "전국 {광공업생산:national_growth_rate}% {광공업생산:top_region_1_name} {고용률:서울_rate}",
		"year":     "2025",
		"quarter":  "2",
	}, s.workbook)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[v1.FillResponse](t, w)
	require.NotNil(t, resp.Report)
	assert.Equal(t, "전국 5.2% 서울 61.2", resp.Report.Text)
	assert.Equal(t, 3, resp.Resolved)
	assert.Equal(t, model.Period{Year: 2025, Quarter: 2}, resp.Report.Periods["광공업생산"])
	require.NotEmpty(t, resp.DownloadToken)

	dl := s.do(httptest.NewRequest(http.MethodGet, "/api/fill/download/"+resp.DownloadToken, nil))
	require.Equal(t, http.StatusOK, dl.Code)
	assert.Equal(t, resp.Report.Text, dl.Body.String())
	assert.Contains(t, dl.Header().Get("Content-Disposition"), "report-"+resp.Report.ID)

	missing := s.do(httptest.NewRequest(http.MethodGet, "/api/fill/download/unknown", nil))
	assert.Equal(t, http.StatusNotFound, missing.Code)

	hist := s.do(httptest.NewRequest(http.MethodGet, "/api/history", nil))
	require.Equal(t, http.StatusOK, hist.Code)
	logs := decode[struct {
		History []model.FillLog `json:"history"`
	}](t, hist)
	require.Len(t, logs.History, 1)
	assert.Equal(t, resp.Report.ID, logs.History[0].ID)
	assert.Equal(t, "regional.xlsx", logs.History[0].Workbook)
	assert.Equal(t, 3, logs.History[0].Markers)
}

func TestFill_BadRequests(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	tests := []struct {
		name     string
		fields   map[string]string
		workbook []byte
		want     int
	}{
		{"no file", map[string]string{"template": "{광공업생산:national_name}"}, nil, http.StatusBadRequest},
		{"no template", map[string]string{}, s.workbook, http.StatusBadRequest},
		{"unknown template name", map[string]string{"templateName": "없음"}, s.workbook, http.StatusNotFound},
		{"year without quarter", map[string]string{"template": "x", "year": "2025"}, s.workbook, http.StatusBadRequest},
		{"quarter out of range", map[string]string{"template": "x", "year": "2025", "quarter": "5"}, s.workbook, http.StatusBadRequest},
		{"not a workbook", map[string]string{"template": "x"}, []byte("plain text"), http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.upload(t, "/api/fill", tt.fields, tt.workbook)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestFill_StoredTemplateAndDefaultPeriod(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	w := s.json(t, http.MethodPut, "/api/templates/"+url.PathEscape("분기보고"), map[string]string{
		"body": "{광공업생산:national_name} {광공업생산:national_growth_rate}",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.json(t, http.MethodPut, "/api/config/period", map[string]int{"year": 2025, "quarter": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.upload(t, "/api/fill", map[string]string{"templateName": "분기보고"}, s.workbook)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[v1.FillResponse](t, w)
	assert.Equal(t, model.Period{Year: 2025, Quarter: 1}, resp.Report.Periods["광공업생산"])
	assert.True(t, strings.HasPrefix(resp.Report.Text, "전국 "))

	logs, err := s.store.ListFillLogs(0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "분기보고", logs[0].Template)
}

func TestPeriods(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	w := s.upload(t, "/api/periods", nil, s.workbook)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[struct {
		Periods map[string]model.PeriodRange `json:"periods"`
	}](t, w)
	require.Contains(t, resp.Periods, "광공업생산")
	assert.Equal(t, model.Period{Year: 2024, Quarter: 1}, resp.Periods["광공업생산"].Min)
	assert.Equal(t, model.Period{Year: 2025, Quarter: 2}, resp.Periods["광공업생산"].Max)
	assert.Len(t, resp.Periods["광공업생산"].Available, 6)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	w := s.upload(t, "/api/validate", map[string]string{
		"template": "{광공업생산:national_name} {없는시트:national_name}",
		"year":     "2025",
		"quarter":  "2",
	}, s.workbook)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[struct {
		Valid    bool                  `json:"valid"`
		Failures []model.MarkerFailure `json:"failures"`
	}](t, w)
	assert.False(t, resp.Valid)
	require.Len(t, resp.Failures, 1)
	assert.Equal(t, "{없는시트:national_name}", resp.Failures[0].Marker)
}

func TestTemplates(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	path := "/api/templates/" + url.PathEscape("월간")

	assert.Equal(t, http.StatusNotFound, s.do(httptest.NewRequest(http.MethodGet, path, nil)).Code)
	assert.Equal(t, http.StatusBadRequest, s.json(t, http.MethodPut, path, map[string]string{}).Code)

	w := s.json(t, http.MethodPut, path, map[string]string{"body": "a", "description": "설명"})
	require.Equal(t, http.StatusOK, w.Code)
	saved := decode[model.Template](t, w)
	assert.Equal(t, "월간", saved.Name)
	assert.NotEmpty(t, saved.ID)

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/templates", nil))
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Templates []model.Template `json:"templates"`
	}](t, w)
	require.Len(t, list.Templates, 1)
	assert.Equal(t, "설명", list.Templates[0].Description)

	w = s.do(httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a", decode[model.Template](t, w).Body)

	assert.Equal(t, http.StatusNoContent, s.do(httptest.NewRequest(http.MethodDelete, path, nil)).Code)
	assert.Equal(t, http.StatusNotFound, s.do(httptest.NewRequest(http.MethodDelete, path, nil)).Code)
}

func TestSchemas(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	path := "/api/schemas/" + url.PathEscape("광공업생산")

	w := s.json(t, http.MethodPut, path, map[string]any{"maxLevel": 1, "priority": map[string][]string{"*": {"반도체"}}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.json(t, http.MethodPut, path, map[string]any{"rankBy": "volume"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/schemas", nil))
	require.Equal(t, http.StatusOK, w.Code)
	set := decode[model.SchemaSet](t, w)
	require.Len(t, set.Sheets, 2)
	assert.True(t, set.Lookup("고용률").Labor)
	assert.Equal(t, 1, set.Lookup("광공업생산").MaxLevel)

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/schemas/"+url.PathEscape("고용률"), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[model.SheetSchema](t, w).Labor)

	// 파일 스키마는 삭제 대상이 아니다
	assert.Equal(t, http.StatusNotFound, s.do(httptest.NewRequest(http.MethodDelete, "/api/schemas/"+url.PathEscape("고용률"), nil)).Code)
	assert.Equal(t, http.StatusNoContent, s.do(httptest.NewRequest(http.MethodDelete, path, nil)).Code)
	assert.Equal(t, http.StatusNotFound, s.do(httptest.NewRequest(http.MethodGet, path, nil)).Code)
}

func TestStatusAndPeriodConfig(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/config/period", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"configured":false}`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, s.json(t, http.MethodPut, "/api/config/period", map[string]int{"year": 2025, "quarter": 0}).Code)
	require.Equal(t, http.StatusOK, s.json(t, http.MethodPut, "/api/config/period", map[string]int{"year": 2025, "quarter": 2}).Code)

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[v1.StatusResponse](t, w)
	assert.Equal(t, "2025년 2분기", status.DefaultPeriod)
	assert.Equal(t, 1, status.SheetSchemas)
	assert.Equal(t, model.MissingValue, status.MissingValue)
	assert.Empty(t, status.LastFillTime)

	assert.Equal(t, http.StatusBadRequest, s.do(httptest.NewRequest(http.MethodGet, "/api/history?limit=1000", nil)).Code)
}
