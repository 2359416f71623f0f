package handler

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"regionreport/internal/model"
)

// 증감 방향 표기
const (
	DirectionUp   = "증가"
	DirectionDown = "감소"
	DirectionFlat = "보합"
)

// ListSeparator 이름/값 목록 구분자
const ListSeparator = ", "

// Formatter 표시 문자열 변환. 반올림은 사사오입(half-up).
type Formatter struct {
	Decimals int
	Missing  string
}

// DefaultFormatter 소수 첫째 자리, "N/A"
func DefaultFormatter() Formatter {
	return Formatter{Decimals: 1, Missing: model.MissingValue}
}

func (f Formatter) places() int32 {
	if f.Decimals < 0 {
		return 0
	}
	return int32(f.Decimals)
}

func (f Formatter) missing() string {
	if f.Missing == "" {
		return model.MissingValue
	}
	return f.Missing
}

func (f Formatter) round(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(f.places())
}

// Rate 백분율/증감 수치 "5.2", "-3.0" (양수 부호 없음)
func (f Formatter) Rate(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return f.missing()
	}
	return f.round(v).StringFixed(f.places())
}

// Abs 절댓값 수치
func (f Formatter) Abs(v float64) string {
	return f.Rate(math.Abs(v))
}

// Value 지수/금액 값 "1,234.5"
func (f Formatter) Value(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return f.missing()
	}
	format := "#,###."
	if n := f.places(); n > 0 {
		format += strings.Repeat("#", int(n))
	}
	return humanize.FormatFloat(format, f.round(v).InexactFloat64())
}

// Direction 표시 반올림 후 부호로 증가/감소/보합
func (f Formatter) Direction(v float64) string {
	switch f.round(v).Sign() {
	case 1:
		return DirectionUp
	case -1:
		return DirectionDown
	default:
		return DirectionFlat
	}
}

// Count 정수 개수
func (f Formatter) Count(n int) string {
	return humanize.Comma(int64(n))
}

// Join 목록 연결
func (f Formatter) Join(items []string) string {
	return strings.Join(items, ListSeparator)
}
