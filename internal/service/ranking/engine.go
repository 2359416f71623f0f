package ranking

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/ternarybob/arbor"

	"regionreport/internal/model"
	"regionreport/internal/parser"
	"regionreport/internal/service/excel"
)

// 기본 개수
const (
	DefaultTopN         = 5
	DefaultBottomN      = 5
	DefaultCategoryTopN = 3
)

// ErrNoColumns 기간 열을 찾지 못함
var ErrNoColumns = errors.New("period columns not found")

// 총계 행 분류 이름 (정규화 후 비교)
var totalsVocabulary = []string{"총지수", "계", "합계", "총계", "전체", "전산업", "total", "all", "alltotal"}

// 전국 행 이름
var nationalNames = []string{"전국", "national", "nationwide", "korea"}

// Config 순위 개수 설정
type Config struct {
	TopN         int
	BottomN      int
	CategoryTopN int
}

// DefaultConfig 기본 설정
func DefaultConfig() Config {
	return Config{TopN: DefaultTopN, BottomN: DefaultBottomN, CategoryTopN: DefaultCategoryTopN}
}

// Engine 지역/분류 순위 계산기. 리졸버와 같은 수명(한 요청)으로 쓴다.
type Engine struct {
	resolver *excel.Resolver
	cfg      Config
	logger   arbor.ILogger
}

// NewEngine 순위 엔진 생성
func NewEngine(resolver *excel.Resolver, cfg Config, logger arbor.ILogger) *Engine {
	if logger == nil {
		logger = arbor.NewNoOpLogger()
	}
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultTopN
	}
	if cfg.BottomN <= 0 {
		cfg.BottomN = DefaultBottomN
	}
	if cfg.CategoryTopN <= 0 {
		cfg.CategoryTopN = DefaultCategoryTopN
	}
	return &Engine{resolver: resolver, cfg: cfg, logger: logger}
}

// Resolver 엔진이 사용하는 리졸버
func (e *Engine) Resolver() *excel.Resolver {
	return e.resolver
}

// Config 현재 설정
func (e *Engine) Config() Config {
	return e.cfg
}

// sheetRows 구조 + 행
func (e *Engine) sheetRows(sheet string) (*model.SheetStructure, [][]string, error) {
	st, err := e.resolver.Structure(sheet)
	if err != nil {
		return nil, nil, err
	}
	rows, err := e.resolver.Workbook().Rows(sheet)
	if err != nil {
		return nil, nil, err
	}
	return st, rows, nil
}

func cell(rows [][]string, row, col int) string {
	if row < 1 || row > len(rows) || col < 1 {
		return ""
	}
	r := rows[row-1]
	if col > len(r) {
		return ""
	}
	return r[col-1]
}

// isTotalCategory 총계 분류 이름인지
func isTotalCategory(name string) bool {
	norm := parser.NormalizeName(name)
	if norm == "" {
		return false
	}
	for _, t := range totalsVocabulary {
		if norm == t {
			return true
		}
	}
	return false
}

func isNationalName(name string) bool {
	norm := parser.NormalizeName(name)
	for _, n := range nationalNames {
		if norm == n {
			return true
		}
	}
	return false
}

// isTwoDigitCode 두 자리 숫자 코드
func isTwoDigitCode(code string) bool {
	return len(code) == 2 && code[0] >= '0' && code[0] <= '9' && code[1] >= '0' && code[1] <= '9'
}

// regionKind 총계 행 분류
type regionKind int

const (
	kindSkip regionKind = iota
	kindNational
	kindProvince
)

// classifyRegion 코드 열이 있으면 "00"=전국, 두 자리 숫자=시도, 그 외(그룹 코드)=제외
func classifyRegion(code, name string) regionKind {
	if code == "" {
		if isNationalName(name) {
			return kindNational
		}
		return kindProvince
	}
	if code == "00" || code == "0" {
		return kindNational
	}
	if isTwoDigitCode(code) {
		return kindProvince
	}
	return kindSkip
}

// weightAt 가중치. 열이 있고 값이 비면 100, 열이 없으면 1.
func weightAt(st *model.SheetStructure, rows [][]string, row int) float64 {
	if !st.HasWeightColumn() {
		return 1
	}
	if w, ok := parser.ParseNumber(cell(rows, row, st.WeightColumn)); ok {
		return w
	}
	return 100
}

// totals 시트의 지역 총계 행. 성장률을 계산할 수 없는 행은 제외된다.
func (e *Engine) totals(sheet string, currentCol, priorCol int) (*model.RegionRecord, []model.RegionRecord, error) {
	st, rows, err := e.sheetRows(sheet)
	if err != nil {
		return nil, nil, err
	}
	schema := e.resolver.Schema(sheet)

	var national *model.RegionRecord
	regions := make([]model.RegionRecord, 0, 20)
	seen := make(map[string]struct{})

	for row := st.FirstDataRow; row <= len(rows); row++ {
		name := parser.NormalizeColumnName(cell(rows, row, st.RegionColumn))
		if name == "" {
			continue
		}
		if st.CategoryColumn > 0 && !isTotalCategory(cell(rows, row, st.CategoryColumn)) {
			continue
		}
		level := 0
		if st.LevelColumn > 0 {
			level = parser.ParseLevel(cell(rows, row, st.LevelColumn))
			if level > 1 {
				continue
			}
		}
		code := ""
		if st.CodeColumn > 0 {
			code = parser.NormalizeColumnName(cell(rows, row, st.CodeColumn))
		}
		kind := classifyRegion(code, name)
		if kind == kindSkip {
			continue
		}
		key := parser.NormalizeName(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		current, okCur := parser.ParseNumber(cell(rows, row, currentCol))
		prior, okPrior := parser.ParseNumber(cell(rows, row, priorCol))
		if !okCur || !okPrior {
			e.logger.Debug().Str("sheet", sheet).Str("region", name).Int("row", row).Msg("region value missing, excluded")
			continue
		}
		growth, ok := model.GrowthRate(current, prior)
		if !ok {
			e.logger.Debug().Str("sheet", sheet).Str("region", name).Int("row", row).Msg("growth rate undefined, excluded")
			continue
		}
		weight := weightAt(st, rows, row)
		rec := model.RegionRecord{
			Code:                code,
			Name:                name,
			DisplayName:         schema.DisplayName(name),
			Row:                 row,
			Current:             current,
			Prior:               prior,
			GrowthRate:          growth,
			Change:              current - prior,
			Weight:              weight,
			WeightedGrowthRate:  growth * weight,
			ClassificationLevel: level,
		}
		if kind == kindNational {
			if national == nil {
				national = &rec
			}
			continue
		}
		regions = append(regions, rec)
	}
	return national, regions, nil
}

// RegionsWithGrowth 성장률이 정의된 시도 총계 행 (행 순서)
func (e *Engine) RegionsWithGrowth(sheet string, currentCol, priorCol int) ([]model.RegionRecord, error) {
	_, regions, err := e.totals(sheet, currentCol, priorCol)
	return regions, err
}

// NationalRecord 전국 총계 행 (없거나 성장률 미정의면 nil)
func (e *Engine) NationalRecord(sheet string, currentCol, priorCol int) (*model.RegionRecord, error) {
	national, _, err := e.totals(sheet, currentCol, priorCol)
	return national, err
}

// rankValue 정렬 기준 값
func rankValue(rankBy string, r model.RegionRecord) float64 {
	if rankBy == model.RankByChange {
		return r.Change
	}
	return r.GrowthRate
}

// sortRegions 내림차순(desc) 또는 오름차순. 동률은 행 순서 유지.
func sortRegions(regions []model.RegionRecord, rankBy string, desc bool) []model.RegionRecord {
	out := make([]model.RegionRecord, len(regions))
	copy(out, regions)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := rankValue(rankBy, out[i]), rankValue(rankBy, out[j])
		if desc {
			return a > b
		}
		return a < b
	})
	return out
}

func head(regions []model.RegionRecord, n int) []model.RegionRecord {
	if n < 0 || n > len(regions) {
		n = len(regions)
	}
	return regions[:n]
}

// TopBottomRegions 상위 topN (내림차순), 하위 bottomN (오름차순, 감소 폭이 큰 순)
func (e *Engine) TopBottomRegions(sheet string, currentCol, priorCol, topN, bottomN int) ([]model.RegionRecord, []model.RegionRecord, error) {
	regions, err := e.RegionsWithGrowth(sheet, currentCol, priorCol)
	if err != nil {
		return nil, nil, err
	}
	rankBy := e.resolver.Schema(sheet).EffectiveRankBy()
	top := head(sortRegions(regions, rankBy, true), topN)
	bottom := head(sortRegions(regions, rankBy, false), bottomN)
	return top, bottom, nil
}

// CategoriesForRegion 지역의 분류 행 (1 <= 단계 <= 상한, 성장률 정의된 행만)
// regionRow 는 지역 총계 행. 0 이면 지역 이름으로 찾는다.
func (e *Engine) CategoriesForRegion(sheet, region string, regionRow, currentCol, priorCol int) ([]model.CategoryRecord, error) {
	st, rows, err := e.sheetRows(sheet)
	if err != nil {
		return nil, err
	}
	if st.CategoryColumn == 0 {
		return nil, nil
	}
	if regionRow <= 0 {
		if regionRow = e.findRegionRow(st, rows, region); regionRow == 0 {
			return nil, fmt.Errorf("region %s not found in sheet %s", region, sheet)
		}
	}
	schema := e.resolver.Schema(sheet)
	maxLevel := schema.EffectiveMaxLevel()
	regionName := parser.NormalizeColumnName(cell(rows, regionRow, st.RegionColumn))
	regionKey := parser.NormalizeName(regionName)

	var out []model.CategoryRecord
	for row := regionRow + 1; row <= len(rows); row++ {
		name := cell(rows, row, st.RegionColumn)
		if key := parser.NormalizeName(name); key != "" && key != regionKey {
			break
		}
		category := parser.NormalizeColumnName(cell(rows, row, st.CategoryColumn))
		if category == "" || isTotalCategory(category) {
			continue
		}
		level := 1
		if st.LevelColumn > 0 {
			level = parser.ParseLevel(cell(rows, row, st.LevelColumn))
		}
		if level < 1 || level > maxLevel {
			continue
		}
		current, okCur := parser.ParseNumber(cell(rows, row, currentCol))
		prior, okPrior := parser.ParseNumber(cell(rows, row, priorCol))
		if !okCur || !okPrior {
			continue
		}
		growth, ok := model.GrowthRate(current, prior)
		if !ok {
			continue
		}
		weight := weightAt(st, rows, row)
		out = append(out, model.CategoryRecord{
			Name:                category,
			DisplayName:         schema.DisplayName(category),
			Region:              regionName,
			Row:                 row,
			Current:             current,
			Prior:               prior,
			GrowthRate:          growth,
			Change:              current - prior,
			Weight:              weight,
			WeightedGrowthRate:  growth * weight,
			ClassificationLevel: level,
		})
	}
	return out, nil
}

// findRegionRow 지역 총계 행 (분류 열이 있으면 총계 분류 행만)
func (e *Engine) findRegionRow(st *model.SheetStructure, rows [][]string, region string) int {
	key := parser.NormalizeName(region)
	if key == "" {
		return 0
	}
	for row := st.FirstDataRow; row <= len(rows); row++ {
		if parser.NormalizeName(cell(rows, row, st.RegionColumn)) != key {
			continue
		}
		if st.CategoryColumn > 0 && !isTotalCategory(cell(rows, row, st.CategoryColumn)) {
			continue
		}
		return row
	}
	if row, ok := e.resolver.FindRow(st.Sheet, region, st.RegionColumn); ok {
		return row
	}
	return 0
}

// RegionRow 지역 총계 행 번호. "national"/"전국" 은 전국 행.
func (e *Engine) RegionRow(sheet, region string) (int, bool) {
	st, rows, err := e.sheetRows(sheet)
	if err != nil {
		return 0, false
	}
	if isNationalName(region) {
		for row := st.FirstDataRow; row <= len(rows); row++ {
			name := parser.NormalizeColumnName(cell(rows, row, st.RegionColumn))
			if name == "" {
				continue
			}
			if st.CategoryColumn > 0 && !isTotalCategory(cell(rows, row, st.CategoryColumn)) {
				continue
			}
			code := ""
			if st.CodeColumn > 0 {
				code = parser.NormalizeColumnName(cell(rows, row, st.CodeColumn))
			}
			if classifyRegion(code, name) == kindNational {
				return row, true
			}
		}
	}
	row := e.findRegionRow(st, rows, region)
	return row, row > 0
}

// TopCategoriesForRegion 우선 키워드로 먼저 고르고, 남은 자리는 크기 순으로 채운다.
func (e *Engine) TopCategoriesForRegion(sheet, region string, regionRow, currentCol, priorCol, topN int) ([]model.CategoryRecord, error) {
	cats, err := e.CategoriesForRegion(sheet, region, regionRow, currentCol, priorCol)
	if err != nil || len(cats) == 0 {
		return nil, err
	}
	schema := e.resolver.Schema(sheet)
	st, err := e.resolver.Structure(sheet)
	if err != nil {
		return nil, err
	}
	magnitude := categoryMagnitude(schema.EffectiveRankBy(), schema.WeightEnabled(st.HasWeightColumn()))
	priority := schema.PriorityFor(region)
	if len(priority) == 0 && len(cats) > 0 {
		priority = schema.PriorityFor(cats[0].Region)
	}
	return selectCategories(cats, priority, magnitude, topN), nil
}

// categoryMagnitude 채우기 정렬 기준 |값|
func categoryMagnitude(rankBy string, weighted bool) func(model.CategoryRecord) float64 {
	switch {
	case rankBy == model.RankByChange:
		return func(c model.CategoryRecord) float64 { return math.Abs(c.Change) }
	case weighted:
		return func(c model.CategoryRecord) float64 { return math.Abs(c.WeightedGrowthRate) }
	default:
		return func(c model.CategoryRecord) float64 { return math.Abs(c.GrowthRate) }
	}
}

// Rank 시트+기간 전체 순위. 전국과 모든 시도에 상위 분류를 붙인다.
func (e *Engine) Rank(sheet string, p model.Period) (*model.RankingResult, error) {
	currentCol, priorCol, ok := e.resolver.ColumnPair(sheet, p)
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrNoColumns, sheet, p)
	}
	national, regions, err := e.totals(sheet, currentCol, priorCol)
	if err != nil {
		return nil, err
	}

	attach := func(rec *model.RegionRecord) {
		cats, err := e.TopCategoriesForRegion(sheet, rec.Name, rec.Row, currentCol, priorCol, e.cfg.CategoryTopN)
		if err != nil {
			e.logger.Debug().Str("sheet", sheet).Str("region", rec.Name).Err(err).Msg("categories not ranked")
			return
		}
		rec.TopCategories = cats
	}
	if national != nil {
		attach(national)
	}
	for i := range regions {
		attach(&regions[i])
	}

	rankBy := e.resolver.Schema(sheet).EffectiveRankBy()
	ordered := sortRegions(regions, rankBy, true)
	result := &model.RankingResult{
		Sheet:    sheet,
		Period:   p,
		National: national,
		Regions:  ordered,
		Top:      head(ordered, e.cfg.TopN),
		Bottom:   head(sortRegions(regions, rankBy, false), e.cfg.BottomN),
		RankBy:   rankBy,
	}

	e.logger.Debug().
		Str("sheet", sheet).
		Int("year", p.Year).
		Int("quarter", p.Quarter).
		Int("current_column", currentCol).
		Int("prior_column", priorCol).
		Int("regions", len(regions)).
		Bool("national", national != nil).
		Msg("ranking computed")
	return result, nil
}

// Lookup 캐시에서 읽고, 없으면 계산만 한다 (캐시에 쓰지 않음).
func (e *Engine) Lookup(cache Reader, sheet string, p model.Period) (*model.RankingResult, error) {
	if cache != nil {
		if res, ok := cache.Get(model.RankingKey{Sheet: sheet, Period: p}); ok {
			return res, nil
		}
	}
	return e.Rank(sheet, p)
}
