package model

import "time"

// MissingValue 값을 결정할 수 없을 때의 기본 표시
const MissingValue = "N/A"

// MarkerFailure 해석 실패한 마커
type MarkerFailure struct {
	Marker string `json:"marker"`
	Sheet  string `json:"sheet"`
	Reason string `json:"reason"`
}

// FillReport 템플릿 채우기 결과
type FillReport struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Values   map[string]string `json:"values"`
	Failures []MarkerFailure   `json:"failures"`
	Periods  map[string]Period `json:"periods"`
	Duration time.Duration     `json:"duration"`
}

// Resolved 해석 성공 마커 수
func (r *FillReport) Resolved() int {
	if r == nil {
		return 0
	}
	return len(r.Values) - len(r.Failures)
}
