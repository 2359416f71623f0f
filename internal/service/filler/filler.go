// Package filler 템플릿 마커를 워크북 값으로 채운다.
package filler

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"regionreport/internal/model"
	"regionreport/internal/parser"
	"regionreport/internal/service/excel"
	"regionreport/internal/service/handler"
	"regionreport/internal/service/ranking"
)

// Options 채우기 옵션
type Options struct {
	Resolver excel.Options
	Ranking  ranking.Config
	Format   handler.Formatter
}

// DefaultOptions 기본 옵션
func DefaultOptions() Options {
	return Options{
		Resolver: excel.DefaultOptions(),
		Ranking:  ranking.DefaultConfig(),
		Format:   handler.DefaultFormatter(),
	}
}

// Request 채우기 요청
type Request struct {
	Template string
	// Period 비어 있으면 시트별 최신 기간
	Period model.Period
}

// Filler 템플릿 채우기. 요청마다 리졸버/순위 캐시를 새로 만들므로 동시에 써도 된다.
type Filler struct {
	schemas *model.SchemaSet
	opts    Options
	chain   *handler.Chain
	logger  arbor.ILogger
}

// New 생성
func New(schemas *model.SchemaSet, opts Options, logger arbor.ILogger) *Filler {
	if logger == nil {
		logger = arbor.NewNoOpLogger()
	}
	if schemas == nil {
		schemas = &model.SchemaSet{}
	}
	if opts.Format.Missing == "" {
		opts.Format.Missing = model.MissingValue
	}
	return &Filler{
		schemas: schemas,
		opts:    opts,
		chain:   handler.NewChain(logger),
		logger:  logger,
	}
}

// session 한 번의 채우기 동안 공유하는 상태
type session struct {
	id       string
	req      Request
	resolver *excel.Resolver
	engine   *ranking.Engine
	cache    *ranking.Cache
	report   *model.FillReport
}

// Fill 템플릿의 모든 마커를 해석해 치환한다.
// 마커 하나의 실패는 결측 표시로 대체하고 계속 진행하며, 워크북을 읽을 수 없을 때만 에러.
func (f *Filler) Fill(wb excel.Workbook, req Request) (*model.FillReport, error) {
	if wb == nil {
		return nil, excel.ErrNoWorkbook
	}
	if len(wb.SheetNames()) == 0 {
		return nil, fmt.Errorf("%w: no sheets", excel.ErrWorkbookUnreadable)
	}
	start := time.Now()

	resolver := excel.NewResolver(wb, f.schemas, f.opts.Resolver, f.logger)
	s := &session{
		id:       uuid.New().String(),
		req:      req,
		resolver: resolver,
		engine:   ranking.NewEngine(resolver, f.opts.Ranking, f.logger),
		cache:    ranking.NewCache(),
		report: &model.FillReport{
			Values:   make(map[string]string),
			Failures: []model.MarkerFailure{},
			Periods:  make(map[string]model.Period),
		},
	}
	s.report.ID = s.id

	markers := parser.ExtractMarkers(req.Template)
	for _, m := range markers {
		value, sheet, reason := f.resolveMarker(s, m)
		if reason != "" {
			value = f.opts.Format.Missing
			s.report.Failures = append(s.report.Failures, model.MarkerFailure{
				Marker: m.Raw,
				Sheet:  sheet,
				Reason: reason,
			})
			f.logger.Warn().
				Str("fill_id", s.id).
				Str("marker", m.Raw).
				Str("sheet", sheet).
				Str("reason", reason).
				Msg("marker degraded to missing value")
		}
		s.report.Values[m.Raw] = value
	}

	s.report.Text = parser.SubstituteAll(req.Template, s.report.Values)
	s.report.Duration = time.Since(start)

	f.logger.Info().
		Str("fill_id", s.id).
		Int("markers", len(markers)).
		Int("failures", len(s.report.Failures)).
		Int("rankings", s.cache.Len()).
		Int64("duration_ms", s.report.Duration.Milliseconds()).
		Msg("template filled")
	return s.report, nil
}

// resolveMarker 값, 실제 시트, 실패 사유(성공이면 "")
func (f *Filler) resolveMarker(s *session, m model.Marker) (string, string, string) {
	sheet, ok := s.resolver.FindSheet(m.Sheet)
	if !ok {
		return "", "", fmt.Sprintf("시트를 찾을 수 없습니다: %s", m.Sheet)
	}
	if m.IsLiteral() {
		value, reason := f.resolveLiteral(s, sheet, m)
		return value, sheet, reason
	}

	p, check := s.resolver.ResolvePeriod(sheet, s.req.Period)
	if !check.OK {
		return "", sheet, check.Reason
	}
	s.report.Periods[sheet] = p

	if _, err := s.cache.Warm(s.engine, sheet, p); err != nil {
		f.logger.Debug().Str("fill_id", s.id).Str("sheet", sheet).Err(err).Msg("ranking not cached")
	}

	ctx := &handler.Context{
		Sheet:  sheet,
		Period: p,
		Engine: s.engine,
		Cache:  s.cache,
		Format: f.opts.Format,
		Logger: f.logger,
	}
	value, ok := f.chain.Resolve(m.Key, ctx)
	if !ok {
		return "", sheet, fmt.Sprintf("의미 키를 해석할 수 없습니다: %s", m.Key)
	}
	return value, sheet, ""
}

// resolveLiteral 셀/범위 참조와 연산
func (f *Filler) resolveLiteral(s *session, sheet string, m model.Marker) (string, string) {
	op, err := excel.ParseOperation(m.Operation)
	if err != nil {
		return "", err.Error()
	}
	format := f.opts.Format

	if !m.IsRange() && op == excel.OpNone {
		row, col, err := excel.ParseCellAddress(m.Key)
		if err != nil {
			return "", err.Error()
		}
		if v, ok := s.resolver.Value(sheet, row, col); ok {
			return format.Value(v), ""
		}
		if text := strings.TrimSpace(s.resolver.Text(sheet, row, col)); !parser.IsMissing(text) {
			return text, ""
		}
		return "", fmt.Sprintf("%s!%s 셀에 값이 없습니다", sheet, m.Key)
	}

	values, err := s.resolver.RangeValues(sheet, m.Key, m.RangeEnd)
	if err != nil {
		return "", err.Error()
	}
	if len(values) == 0 {
		return "", fmt.Sprintf("%s!%s:%s 범위에 숫자 값이 없습니다", sheet, m.Key, m.RangeEnd)
	}
	if op == excel.OpNone {
		items := make([]string, len(values))
		for i, v := range values {
			items[i] = format.Value(v)
		}
		return format.Join(items), ""
	}
	result, err := op.Apply(values)
	if err != nil {
		return "", err.Error()
	}
	if op == excel.OpGrowthRate {
		return format.Rate(result), ""
	}
	return format.Value(result), ""
}

// Periods 워크북 시트별 사용 가능 기간
func (f *Filler) Periods(wb excel.Workbook) (map[string]model.PeriodRange, error) {
	if wb == nil {
		return nil, excel.ErrNoWorkbook
	}
	resolver := excel.NewResolver(wb, f.schemas, f.opts.Resolver, f.logger)
	out := make(map[string]model.PeriodRange)
	for _, sheet := range wb.SheetNames() {
		out[sheet] = resolver.DetectAvailablePeriods(sheet)
	}
	return out, nil
}

// Validate 요청 기간을 시트 키워드마다 검증 (템플릿의 의미 마커 시트 기준)
func (f *Filler) Validate(wb excel.Workbook, req Request) ([]model.MarkerFailure, error) {
	if wb == nil {
		return nil, excel.ErrNoWorkbook
	}
	resolver := excel.NewResolver(wb, f.schemas, f.opts.Resolver, f.logger)
	seen := make(map[string]bool)
	var failures []model.MarkerFailure
	for _, m := range parser.ExtractMarkers(req.Template) {
		if m.IsLiteral() || seen[m.Sheet] {
			continue
		}
		seen[m.Sheet] = true
		sheet, ok := resolver.FindSheet(m.Sheet)
		if !ok {
			failures = append(failures, model.MarkerFailure{Marker: m.Raw, Reason: fmt.Sprintf("시트를 찾을 수 없습니다: %s", m.Sheet)})
			continue
		}
		if _, check := resolver.ResolvePeriod(sheet, req.Period); !check.OK {
			failures = append(failures, model.MarkerFailure{Marker: m.Raw, Sheet: sheet, Reason: check.Reason})
		}
	}
	return failures, nil
}
