package model

import "math"

// RegionRecord 지역 집계 행 (조회마다 새로 만든다, 읽기 전용)
type RegionRecord struct {
	Code                string           `json:"code,omitempty"`
	Name                string           `json:"name"`
	DisplayName         string           `json:"displayName"`
	Row                 int              `json:"row"`
	Current             float64          `json:"current"`
	Prior               float64          `json:"prior"`
	GrowthRate          float64          `json:"growthRate"`
	Change              float64          `json:"change"`
	Weight              float64          `json:"weight"`
	WeightedGrowthRate  float64          `json:"weightedGrowthRate"`
	ClassificationLevel int              `json:"classificationLevel"`
	TopCategories       []CategoryRecord `json:"topCategories,omitempty"`
}

// CategoryRecord 지역 내 분류(산업/품목) 행
type CategoryRecord struct {
	Code                string  `json:"code,omitempty"`
	Name                string  `json:"name"`
	DisplayName         string  `json:"displayName"`
	Region              string  `json:"region"`
	Row                 int     `json:"row"`
	Current             float64 `json:"current"`
	Prior               float64 `json:"prior"`
	GrowthRate          float64 `json:"growthRate"`
	Change              float64 `json:"change"`
	Weight              float64 `json:"weight"`
	WeightedGrowthRate  float64 `json:"weightedGrowthRate"`
	ClassificationLevel int     `json:"classificationLevel"`
	Priority            bool    `json:"priority"`
}

// RankingResult 시트+기간 한 건의 순위 결과
type RankingResult struct {
	Sheet    string         `json:"sheet"`
	Period   Period         `json:"period"`
	National *RegionRecord  `json:"national,omitempty"`
	Regions  []RegionRecord `json:"regions"` // 성장률 내림차순 전체
	Top      []RegionRecord `json:"top"`
	Bottom   []RegionRecord `json:"bottom"`
	RankBy   string         `json:"rankBy"`
}

// RankingKey 캐시 키
type RankingKey struct {
	Sheet  string
	Period Period
}

// GrowthRate ((current/prior)-1)*100; prior 가 0 이거나 결과가 유한하지 않으면 ok=false
func GrowthRate(current, prior float64) (float64, bool) {
	if prior == 0 || math.IsNaN(current) || math.IsNaN(prior) || math.IsInf(current, 0) || math.IsInf(prior, 0) {
		return 0, false
	}
	rate := (current/prior - 1) * 100
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, false
	}
	return rate, true
}
