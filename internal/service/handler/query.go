package handler

import (
	"regexp"
	"strconv"
	"strings"
)

// Field 조회 항목
type Field string

const (
	FieldName           Field = "name"
	FieldValue          Field = "value"
	FieldPriorValue     Field = "prior_value"
	FieldGrowthRate     Field = "growth_rate"
	FieldGrowthRateAbs  Field = "growth_rate_abs"
	FieldChange         Field = "change"
	FieldChangeAbs      Field = "change_abs"
	FieldDirection      Field = "direction"
	FieldWeight         Field = "weight"
	FieldCount          Field = "count"
	FieldNames          Field = "names"
	FieldPointChange    Field = "point_change"
	FieldPointChangeAbs Field = "point_change_abs"
	FieldRate           Field = "rate"
)

// recordFields 레코드 항목 (접미사 매칭 시 긴 것부터)
var recordFields = []Field{
	FieldGrowthRateAbs,
	FieldGrowthRate,
	FieldPriorValue,
	FieldChangeAbs,
	FieldDirection,
	FieldWeight,
	FieldChange,
	FieldValue,
	FieldName,
}

func parseRecordField(s string) (Field, bool) {
	for _, f := range recordFields {
		if s == string(f) {
			return f, true
		}
	}
	return "", false
}

// CategoryKind 전국 분류 조회 종류
type CategoryKind string

const (
	CategoryTop      CategoryKind = "category"
	CategoryIncrease CategoryKind = "increase"
	CategoryDecrease CategoryKind = "decrease"
)

// Order 순위 방향
type Order string

const (
	OrderTop    Order = "top"
	OrderBottom Order = "bottom"
)

// Condition 지역 통계 조건
type Condition string

const (
	ConditionIncrease  Condition = "increase"
	ConditionDecrease  Condition = "decrease"
	ConditionUnchanged Condition = "unchanged"
	ConditionAll       Condition = "all"
	ConditionMax       Condition = "max"
	ConditionMin       Condition = "min"
	ConditionAverage   Condition = "average"
)

// SeriesMode 시계열 조회 종류
type SeriesMode string

const (
	SeriesValues      SeriesMode = "values"
	SeriesGrowthRates SeriesMode = "growth_rates"
	SeriesLabels      SeriesMode = "labels"
)

// DefaultSeriesCount 시계열 기본 분기 수
const DefaultSeriesCount = 8

// NationalTarget 전국을 가리키는 대상 이름
const NationalTarget = "national"

// Query 의미 키를 파싱한 결과. 아래 타입만 구현한다.
type Query interface {
	isQuery()
}

// NationalQuery national_<field>
type NationalQuery struct {
	Field Field
}

// NationalCategoryQuery national_<category|increase|decrease><n>_<field>
type NationalCategoryQuery struct {
	Kind  CategoryKind
	Index int
	Field Field
}

// RegionRankQuery top_region_<n>_<field>, bottom_region_<n>_<field>, top_region_<n>_category<m>_<field>
type RegionRankQuery struct {
	Order         Order
	Index         int
	CategoryIndex int // 0 = 지역 자체
	Field         Field
}

// RegionMetricQuery <region>_<field>
type RegionMetricQuery struct {
	Region string
	Field  Field
}

// CategoryQuery <region>_category<n>_<field>
type CategoryQuery struct {
	Region string
	Index  int
	Field  Field
}

// StatQuery <condition>_region_<count|names>, region_count, <max|min|average>_growth_rate
type StatQuery struct {
	Condition Condition
	Field     Field
}

// LaborQuery <target>_point_change[_abs], <target>_rate (퍼센트포인트 지표)
type LaborQuery struct {
	Target string
	Field  Field
}

// TimeSeriesQuery timeseries_<region>_<values|growth_rates|labels>[_<count>]
type TimeSeriesQuery struct {
	Region string
	Mode   SeriesMode
	Count  int
}

func (NationalQuery) isQuery()         {}
func (NationalCategoryQuery) isQuery() {}
func (RegionRankQuery) isQuery()       {}
func (RegionMetricQuery) isQuery()     {}
func (CategoryQuery) isQuery()         {}
func (StatQuery) isQuery()             {}
func (LaborQuery) isQuery()            {}
func (TimeSeriesQuery) isQuery()       {}

var (
	timeSeriesRe       = regexp.MustCompile(`^timeseries_(.+)_(values|growth_rates|labels)(?:_(\d+))?$`)
	pointChangeRe      = regexp.MustCompile(`^(.+)_(point_change_abs|point_change)$`)
	rateRe             = regexp.MustCompile(`^(.+)_rate$`)
	nationalCategoryRe = regexp.MustCompile(`^national_(category|increase|decrease)(\d+)_(.+)$`)
	nationalRe         = regexp.MustCompile(`^national_(.+)$`)
	regionRankRe       = regexp.MustCompile(`^(top|bottom)_region_(\d+)(?:_category(\d+))?_(.+)$`)
	conditionStatRe    = regexp.MustCompile(`^(increase|decrease|unchanged|all)_region_(count|names)$`)
	extremeStatRe      = regexp.MustCompile(`^(max|min|average)_growth_rate$`)
	categoryRe         = regexp.MustCompile(`^(.+)_category(\d+)_(.+)$`)
)

// ParseQuery 의미 키 파싱. 알 수 없는 형태는 ok=false.
func ParseQuery(key string) (Query, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false
	}

	if m := timeSeriesRe.FindStringSubmatch(key); m != nil {
		count := DefaultSeriesCount
		if m[3] != "" {
			n, err := strconv.Atoi(m[3])
			if err != nil || n <= 0 {
				return nil, false
			}
			count = n
		}
		return TimeSeriesQuery{Region: m[1], Mode: SeriesMode(m[2]), Count: count}, true
	}

	if m := pointChangeRe.FindStringSubmatch(key); m != nil {
		return LaborQuery{Target: m[1], Field: Field(m[2])}, true
	}
	if m := rateRe.FindStringSubmatch(key); m != nil && isLaborTarget(m[1]) {
		return LaborQuery{Target: m[1], Field: FieldRate}, true
	}

	if m := nationalCategoryRe.FindStringSubmatch(key); m != nil {
		idx, ok := positive(m[2])
		field, okField := parseRecordField(m[3])
		if !ok || !okField {
			return nil, false
		}
		return NationalCategoryQuery{Kind: CategoryKind(m[1]), Index: idx, Field: field}, true
	}
	if m := nationalRe.FindStringSubmatch(key); m != nil {
		field, ok := parseRecordField(m[1])
		if !ok {
			return nil, false
		}
		return NationalQuery{Field: field}, true
	}

	if m := regionRankRe.FindStringSubmatch(key); m != nil {
		idx, ok := positive(m[2])
		field, okField := parseRecordField(m[4])
		if !ok || !okField {
			return nil, false
		}
		q := RegionRankQuery{Order: Order(m[1]), Index: idx, Field: field}
		if m[3] != "" {
			if q.CategoryIndex, ok = positive(m[3]); !ok {
				return nil, false
			}
		}
		return q, true
	}

	if key == "region_count" {
		return StatQuery{Condition: ConditionAll, Field: FieldCount}, true
	}
	if m := conditionStatRe.FindStringSubmatch(key); m != nil {
		return StatQuery{Condition: Condition(m[1]), Field: Field(m[2])}, true
	}
	if m := extremeStatRe.FindStringSubmatch(key); m != nil {
		return StatQuery{Condition: Condition(m[1]), Field: FieldGrowthRate}, true
	}

	if m := categoryRe.FindStringSubmatch(key); m != nil {
		idx, ok := positive(m[2])
		field, okField := parseRecordField(m[3])
		if !ok || !okField {
			return nil, false
		}
		return CategoryQuery{Region: m[1], Index: idx, Field: field}, true
	}

	// <region>_<field>, 긴 항목 이름부터
	for _, f := range recordFields {
		suffix := "_" + string(f)
		if strings.HasSuffix(key, suffix) {
			region := strings.TrimSuffix(key, suffix)
			if region == "" || reservedPrefix(region) {
				return nil, false
			}
			return RegionMetricQuery{Region: region, Field: f}, true
		}
	}
	return nil, false
}

// isLaborTarget "<x>_rate" 에서 growth_rate 계열과 분류 조회는 제외
func isLaborTarget(target string) bool {
	return target != "" && target != "growth" &&
		!strings.HasSuffix(target, "_growth") &&
		!strings.Contains(target, "_category") &&
		!strings.HasPrefix(target, "top_region_") &&
		!strings.HasPrefix(target, "bottom_region_")
}

// reservedPrefix 다른 키 형태의 접두사는 지역 이름으로 보지 않는다
func reservedPrefix(region string) bool {
	for _, p := range []string{"top_region_", "bottom_region_", "national_", "timeseries_"} {
		if strings.HasPrefix(region, p) {
			return true
		}
	}
	return false
}

func positive(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// IsNational 대상 이름이 전국인지
func IsNational(target string) bool {
	switch strings.ToLower(strings.TrimSpace(target)) {
	case NationalTarget, "전국", "nationwide":
		return true
	}
	return false
}
