package model

// MarkerKind 마커 키 종류
type MarkerKind string

const (
	MarkerLiteral  MarkerKind = "literal"  // 셀/범위 직접 참조
	MarkerSemantic MarkerKind = "semantic" // 의미 키 (핸들러 체인)
)

// Marker 템플릿 안의 {시트:키[:연산]} 토큰. 파싱 후 변경하지 않는다.
type Marker struct {
	Raw       string     `json:"raw"`
	Sheet     string     `json:"sheet"`
	Key       string     `json:"key"`
	RangeEnd  string     `json:"rangeEnd,omitempty"`
	Operation string     `json:"operation,omitempty"`
	Kind      MarkerKind `json:"kind"`
}

// IsLiteral 셀 참조 여부
func (m Marker) IsLiteral() bool {
	return m.Kind == MarkerLiteral
}

// IsRange 범위 참조 여부
func (m Marker) IsRange() bool {
	return m.Kind == MarkerLiteral && m.RangeEnd != ""
}
