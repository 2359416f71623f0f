package model

// SheetStructure 시트별 구조 메타데이터 (행/열 번호는 1부터)
// 한 번 계산한 뒤 변경하지 않는다. 워크북을 다시 읽으면 새로 만든다.
type SheetStructure struct {
	Sheet          string `json:"sheet"`
	HeaderRow      int    `json:"headerRow"`
	FirstDataRow   int    `json:"firstDataRow"`
	LastRow        int    `json:"lastRow"`
	LastColumn     int    `json:"lastColumn"`
	RegionColumn   int    `json:"regionColumn"`
	CategoryColumn int    `json:"categoryColumn"` // 0 = 없음
	LevelColumn    int    `json:"levelColumn"`    // 0 = 없음
	WeightColumn   int    `json:"weightColumn"`   // 0 = 없음
	CodeColumn     int    `json:"codeColumn"`     // 0 = 없음

	// Labels 열별 헤더 라벨 (여러 헤더 행을 이어붙임), Labels[col-1]
	Labels []string `json:"labels"`

	PeriodColumns map[Period]int  `json:"-"`
	Preliminary   map[Period]bool `json:"-"`
}

// Label 열 라벨
func (s *SheetStructure) Label(col int) string {
	if s == nil || col < 1 || col > len(s.Labels) {
		return ""
	}
	return s.Labels[col-1]
}

// HeaderColumn 헤더 스캔으로 찾은 분기 열
func (s *SheetStructure) HeaderColumn(p Period) (int, bool) {
	if s == nil {
		return 0, false
	}
	col, ok := s.PeriodColumns[p]
	return col, ok
}

// HasWeightColumn 가중치 열 존재 여부
func (s *SheetStructure) HasWeightColumn() bool {
	return s != nil && s.WeightColumn > 0
}
