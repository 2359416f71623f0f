package model

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// 정렬 기준
const (
	RankByGrowthRate = "growth_rate"
	RankByChange     = "change"
)

// 분류 단계 기본 상한
const DefaultMaxLevel = 2

// SheetSchema 시트별 구조 힌트 (외부 스키마 데이터). 0 값은 자동 탐지.
type SheetSchema struct {
	Name    string   `toml:"name" json:"name" validate:"required"`
	Aliases []string `toml:"aliases" json:"aliases,omitempty"`

	RegionColumn   int `toml:"region_column" json:"regionColumn,omitempty" validate:"gte=0"`
	CategoryColumn int `toml:"category_column" json:"categoryColumn,omitempty" validate:"gte=0"`
	LevelColumn    int `toml:"level_column" json:"levelColumn,omitempty" validate:"gte=0"`
	WeightColumn   int `toml:"weight_column" json:"weightColumn,omitempty" validate:"gte=0"`
	CodeColumn     int `toml:"code_column" json:"codeColumn,omitempty" validate:"gte=0"`

	RegionHeader   string `toml:"region_header" json:"regionHeader,omitempty"`
	CategoryHeader string `toml:"category_header" json:"categoryHeader,omitempty"`
	WeightHeader   string `toml:"weight_header" json:"weightHeader,omitempty"`

	HeaderRow  int `toml:"header_row" json:"headerRow,omitempty" validate:"gte=0"`
	HeaderRows int `toml:"header_rows" json:"headerRows,omitempty" validate:"gte=0,lte=10"`

	BaseYear    int `toml:"base_year" json:"baseYear,omitempty" validate:"gte=0"`
	BaseQuarter int `toml:"base_quarter" json:"baseQuarter,omitempty" validate:"gte=0,lte=4"`
	BaseColumn  int `toml:"base_column" json:"baseColumn,omitempty" validate:"gte=0"`

	MaxLevel  int    `toml:"max_level" json:"maxLevel,omitempty" validate:"gte=0"`
	UseWeight *bool  `toml:"use_weight" json:"useWeight,omitempty"`
	RankBy    string `toml:"rank_by" json:"rankBy,omitempty" validate:"omitempty,oneof=growth_rate change"`
	Labor     bool   `toml:"labor" json:"labor,omitempty"`
	Unit      string `toml:"unit" json:"unit,omitempty"`

	// Priority 지역별 우선 키워드 ("*" 는 전체 지역 공통)
	Priority     map[string][]string `toml:"priority" json:"priority,omitempty"`
	DisplayNames map[string]string   `toml:"display_names" json:"displayNames,omitempty"`
}

// HasBasePeriod 기준 열 공식 설정 여부
func (s *SheetSchema) HasBasePeriod() bool {
	return s != nil && s.BaseYear > 0 && s.BaseQuarter >= 1 && s.BaseColumn > 0
}

// EffectiveMaxLevel 분류 단계 상한
func (s *SheetSchema) EffectiveMaxLevel() int {
	if s == nil || s.MaxLevel <= 0 {
		return DefaultMaxLevel
	}
	return s.MaxLevel
}

// WeightEnabled 가중 정렬 사용 여부 (미설정이면 가중치 열이 있을 때 사용)
func (s *SheetSchema) WeightEnabled(hasColumn bool) bool {
	if s == nil || s.UseWeight == nil {
		return hasColumn
	}
	return *s.UseWeight
}

// EffectiveRankBy 정렬 기준
func (s *SheetSchema) EffectiveRankBy() string {
	if s == nil || s.RankBy == "" {
		if s != nil && s.Labor {
			return RankByChange
		}
		return RankByGrowthRate
	}
	return s.RankBy
}

// PriorityFor 지역 우선 키워드. 지역 전용 목록이 없으면 "*" 목록.
func (s *SheetSchema) PriorityFor(region string) []string {
	if s == nil || len(s.Priority) == 0 {
		return nil
	}
	if kws, ok := s.Priority[region]; ok {
		return kws
	}
	return s.Priority["*"]
}

// DisplayName 표시 이름 치환
func (s *SheetSchema) DisplayName(name string) string {
	if s != nil {
		if v, ok := s.DisplayNames[name]; ok && v != "" {
			return v
		}
	}
	return name
}

// SchemaSet 시트 스키마 모음
type SchemaSet struct {
	Sheets []SheetSchema `toml:"sheet" json:"sheets" validate:"dive"`
}

// Lookup 시트 이름/별칭으로 스키마 조회
func (s *SchemaSet) Lookup(name string) *SheetSchema {
	if s == nil {
		return nil
	}
	for i := range s.Sheets {
		if s.Sheets[i].Name == name {
			return &s.Sheets[i]
		}
	}
	for i := range s.Sheets {
		for _, a := range s.Sheets[i].Aliases {
			if a == name {
				return &s.Sheets[i]
			}
		}
	}
	return nil
}

// Put 같은 이름이면 교체, 없으면 추가
func (s *SchemaSet) Put(schema SheetSchema) {
	for i := range s.Sheets {
		if s.Sheets[i].Name == schema.Name {
			s.Sheets[i] = schema
			return
		}
	}
	s.Sheets = append(s.Sheets, schema)
}

// Validate 스키마 검증
func (s *SchemaSet) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid sheet schema: %w", err)
	}
	for _, sh := range s.Sheets {
		if (sh.BaseYear > 0 || sh.BaseColumn > 0) && !sh.HasBasePeriod() {
			return fmt.Errorf("sheet %s: base_year, base_quarter and base_column must be set together", sh.Name)
		}
	}
	return nil
}

// ParseSchemaSet TOML 파싱
func ParseSchemaSet(data []byte) (*SchemaSet, error) {
	set := &SchemaSet{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return set, nil
	}
	if err := toml.Unmarshal(data, set); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// LoadSchemaSet 파일에서 스키마 로드. 파일이 없으면 빈 스키마.
func LoadSchemaSet(path string) (*SchemaSet, error) {
	if path == "" {
		return &SchemaSet{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &SchemaSet{}, nil
		}
		return nil, err
	}
	return ParseSchemaSet(data)
}
