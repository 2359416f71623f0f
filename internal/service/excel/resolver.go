package excel

import (
	"github.com/ternarybob/arbor"

	"regionreport/internal/model"
	"regionreport/internal/parser"
)

// 기본 임계값
const (
	DefaultSheetThreshold  = 0.3
	DefaultColumnThreshold = 0.6
	DefaultRowThreshold    = 0.7
	DefaultHeaderRows      = 3
	DefaultHeaderScanRows  = 12
)

// Options 리졸버 옵션
type Options struct {
	SheetThreshold  float64
	ColumnThreshold float64
	RowThreshold    float64
	HeaderRows      int
	HeaderScanRows  int
}

// DefaultOptions 기본 옵션
func DefaultOptions() Options {
	return Options{
		SheetThreshold:  DefaultSheetThreshold,
		ColumnThreshold: DefaultColumnThreshold,
		RowThreshold:    DefaultRowThreshold,
		HeaderRows:      DefaultHeaderRows,
		HeaderScanRows:  DefaultHeaderScanRows,
	}
}

type lookupKind int

const (
	lookupSheet lookupKind = iota
	lookupColumn
	lookupRow
)

type memoKey struct {
	kind   lookupKind
	sheet  string
	column int
	target string
}

type memoValue struct {
	index int
	ok    bool
}

// Resolver 시트/열/행 구조 해석기. 한 워크북(한 요청)에 하나씩 만든다.
// 캐시는 인스턴스 수명 동안 유효하며 Reload 시 전부 버린다.
type Resolver struct {
	wb      Workbook
	schemas *model.SchemaSet
	opts    Options
	logger  arbor.ILogger

	memo       map[memoKey]memoValue
	structures map[string]*model.SheetStructure
	periods    map[string]model.PeriodRange
}

// NewResolver 리졸버 생성
func NewResolver(wb Workbook, schemas *model.SchemaSet, opts Options, logger arbor.ILogger) *Resolver {
	if logger == nil {
		logger = arbor.NewNoOpLogger()
	}
	if schemas == nil {
		schemas = &model.SchemaSet{}
	}
	if opts.SheetThreshold <= 0 {
		opts.SheetThreshold = DefaultSheetThreshold
	}
	if opts.ColumnThreshold <= 0 {
		opts.ColumnThreshold = DefaultColumnThreshold
	}
	if opts.RowThreshold <= 0 {
		opts.RowThreshold = DefaultRowThreshold
	}
	if opts.HeaderRows <= 0 {
		opts.HeaderRows = DefaultHeaderRows
	}
	if opts.HeaderScanRows <= 0 {
		opts.HeaderScanRows = DefaultHeaderScanRows
	}
	r := &Resolver{
		wb:      wb,
		schemas: schemas,
		opts:    opts,
		logger:  logger,
	}
	r.resetCaches()
	return r
}

func (r *Resolver) resetCaches() {
	r.memo = make(map[memoKey]memoValue)
	r.structures = make(map[string]*model.SheetStructure)
	r.periods = make(map[string]model.PeriodRange)
}

// Reload 워크북 교체. 모든 캐시를 새로 만든다.
func (r *Resolver) Reload(wb Workbook) {
	r.wb = wb
	r.resetCaches()
}

// Workbook 현재 워크북
func (r *Resolver) Workbook() Workbook {
	return r.wb
}

// Schema 실제 시트 이름에 해당하는 스키마 (없으면 nil)
func (r *Resolver) Schema(sheet string) *model.SheetSchema {
	if s := r.schemas.Lookup(sheet); s != nil {
		return s
	}
	norm := parser.NormalizeName(sheet)
	for i := range r.schemas.Sheets {
		if parser.NormalizeName(r.schemas.Sheets[i].Name) == norm {
			return &r.schemas.Sheets[i]
		}
	}
	return nil
}

// FindSheet 키워드에 해당하는 실제 시트 이름
func (r *Resolver) FindSheet(keyword string) (string, bool) {
	if r.wb == nil {
		return "", false
	}
	key := memoKey{kind: lookupSheet, target: keyword}
	if v, ok := r.memo[key]; ok {
		return r.sheetAt(v)
	}

	names := r.wb.SheetNames()
	v := memoValue{index: -1}

	// 실제 시트 이름과 정확히 같으면 별칭보다 우선
	for i, n := range names {
		if n == keyword {
			v = memoValue{index: i, ok: true}
			break
		}
	}

	// 그다음 스키마 별칭이 가리키는 시트
	if schema := r.schemas.Lookup(keyword); !v.ok && schema != nil {
		for _, alias := range append([]string{schema.Name}, schema.Aliases...) {
			for i, n := range names {
				if n == alias {
					v = memoValue{index: i, ok: true}
					break
				}
			}
			if v.ok {
				break
			}
		}
	}

	if !v.ok {
		if m, ok := matchName(keyword, names, r.opts.SheetThreshold); ok {
			v = memoValue{index: m.Index, ok: true}
			r.logger.Debug().
				Str("keyword", keyword).
				Str("sheet", names[m.Index]).
				Str("stage", m.Stage.String()).
				Float64("score", m.Score).
				Msg("sheet resolved")
		} else {
			r.logger.Debug().Str("keyword", keyword).Msg("sheet not resolved")
		}
	}

	r.memo[key] = v
	return r.sheetAt(v)
}

func (r *Resolver) sheetAt(v memoValue) (string, bool) {
	if !v.ok {
		return "", false
	}
	names := r.wb.SheetNames()
	if v.index < 0 || v.index >= len(names) {
		return "", false
	}
	return names[v.index], true
}

// FindColumn 헤더 라벨로 열 번호 찾기
func (r *Resolver) FindColumn(sheet, headerText string) (int, bool) {
	key := memoKey{kind: lookupColumn, sheet: sheet, target: headerText}
	if v, ok := r.memo[key]; ok {
		return v.index, v.ok
	}

	v := memoValue{}
	st, err := r.Structure(sheet)
	if err == nil {
		if m, ok := matchName(headerText, st.Labels, r.opts.ColumnThreshold); ok {
			v = memoValue{index: m.Index + 1, ok: true}
		}
	}
	r.memo[key] = v
	return v.index, v.ok
}

// FindRow column 열에서 rowText 에 해당하는 행 번호 (데이터 행 범위)
func (r *Resolver) FindRow(sheet, rowText string, column int) (int, bool) {
	key := memoKey{kind: lookupRow, sheet: sheet, column: column, target: rowText}
	if v, ok := r.memo[key]; ok {
		return v.index, v.ok
	}

	v := memoValue{}
	st, err := r.Structure(sheet)
	if err == nil && column > 0 {
		rows, _ := r.wb.Rows(sheet)
		start := st.FirstDataRow
		if start < 1 {
			start = 1
		}
		cands := make([]string, 0, len(rows))
		for row := start; row <= len(rows); row++ {
			cands = append(cands, cellAt(rows, row, column))
		}
		if m, ok := matchName(rowText, cands, r.opts.RowThreshold); ok {
			v = memoValue{index: start + m.Index, ok: true}
		}
	}
	r.memo[key] = v
	return v.index, v.ok
}

// Value 셀 숫자 값
func (r *Resolver) Value(sheet string, row, col int) (float64, bool) {
	raw, err := r.wb.Cell(sheet, row, col)
	if err != nil {
		return 0, false
	}
	return parser.ParseNumber(raw)
}

// Text 셀 문자열
func (r *Resolver) Text(sheet string, row, col int) string {
	raw, err := r.wb.Cell(sheet, row, col)
	if err != nil {
		return ""
	}
	return raw
}
