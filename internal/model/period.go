package model

import "fmt"

// Period 연도+분기 (quarter 1..4)
type Period struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"`
}

// Valid 분기 범위 확인
func (p Period) Valid() bool {
	return p.Year > 0 && p.Quarter >= 1 && p.Quarter <= 4
}

// IsZero 미지정 여부
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Quarter == 0
}

// Before p 가 o 보다 이전인지
func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Quarter < o.Quarter
}

// Index 연속 분기 번호 (year*4 + quarter-1)
func (p Period) Index() int {
	return p.Year*4 + p.Quarter - 1
}

// Add n 분기 이동
func (p Period) Add(quarters int) Period {
	idx := p.Index() + quarters
	return Period{Year: idx / 4, Quarter: idx%4 + 1}
}

// PriorYear 전년 동분기
func (p Period) PriorYear() Period {
	return Period{Year: p.Year - 1, Quarter: p.Quarter}
}

// Label 표시용 라벨 "2025 2/4"
func (p Period) Label() string {
	return fmt.Sprintf("%d %d/4", p.Year, p.Quarter)
}

// String 한국어 표기 "2025년 2분기"
func (p Period) String() string {
	return fmt.Sprintf("%d년 %d분기", p.Year, p.Quarter)
}

// PeriodRange 시트에서 발견된 기간 정보
type PeriodRange struct {
	Min         Period          `json:"min"`
	Max         Period          `json:"max"`
	Available   []Period        `json:"available"`
	Default     Period          `json:"default"`
	Preliminary map[Period]bool `json:"-"`
}

// Empty 발견된 기간이 없는지
func (r PeriodRange) Empty() bool {
	return len(r.Available) == 0
}

// Contains 기간 포함 여부
func (r PeriodRange) Contains(p Period) bool {
	for _, a := range r.Available {
		if a == p {
			return true
		}
	}
	return false
}

// IsPreliminary 잠정치 여부
func (r PeriodRange) IsPreliminary(p Period) bool {
	return r.Preliminary[p]
}

// PeriodCheck 기간 검증 결과
type PeriodCheck struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}
