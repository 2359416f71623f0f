package excel

import (
	"errors"
	"fmt"
	"strings"

	"regionreport/internal/model"
	"regionreport/internal/parser"
)

// Operation 셀/범위 집계 연산
type Operation string

const (
	OpNone         Operation = ""
	OpSum          Operation = "sum"
	OpAverage      Operation = "average"
	OpMax          Operation = "max"
	OpMin          Operation = "min"
	OpGrowthRate   Operation = "growth_rate"
	OpGrowthAmount Operation = "growth_amount"
)

var (
	// ErrUnknownOperation 알 수 없는 연산 이름
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrNoValues 범위에 숫자 값이 없음
	ErrNoValues = errors.New("no numeric values")
)

var operationAliases = map[string]Operation{
	"sum":           OpSum,
	"합계":            OpSum,
	"합":             OpSum,
	"average":       OpAverage,
	"avg":           OpAverage,
	"mean":          OpAverage,
	"평균":            OpAverage,
	"max":           OpMax,
	"최대":            OpMax,
	"최댓값":           OpMax,
	"최대값":           OpMax,
	"min":           OpMin,
	"최소":            OpMin,
	"최솟값":           OpMin,
	"최소값":           OpMin,
	"growth_rate":   OpGrowthRate,
	"growthrate":    OpGrowthRate,
	"증감률":           OpGrowthRate,
	"증가율":           OpGrowthRate,
	"성장률":           OpGrowthRate,
	"growth_amount": OpGrowthAmount,
	"growthamount":  OpGrowthAmount,
	"증감":            OpGrowthAmount,
	"증감액":           OpGrowthAmount,
	"증가액":           OpGrowthAmount,
}

// ParseOperation 연산 이름 해석 (대소문자/공백 무시)
func ParseOperation(name string) (Operation, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return OpNone, nil
	}
	if op, ok := operationAliases[name]; ok {
		return op, nil
	}
	return OpNone, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
}

// Apply 값 목록에 연산 적용. growth 계열은 첫 값과 마지막 값 비교.
func (op Operation) Apply(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoValues
	}
	switch op {
	case OpSum:
		total := 0.0
		for _, v := range values {
			total += v
		}
		return total, nil
	case OpAverage:
		total := 0.0
		for _, v := range values {
			total += v
		}
		return total / float64(len(values)), nil
	case OpMax:
		m := values[0]
		for _, v := range values[1:] {
			m = max(m, v)
		}
		return m, nil
	case OpMin:
		m := values[0]
		for _, v := range values[1:] {
			m = min(m, v)
		}
		return m, nil
	case OpGrowthRate:
		rate, ok := model.GrowthRate(values[len(values)-1], values[0])
		if !ok {
			return 0, errors.New("growth rate undefined")
		}
		return rate, nil
	case OpGrowthAmount:
		return values[len(values)-1] - values[0], nil
	case OpNone:
		return values[0], nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownOperation, op)
}

// RangeValues start~end 사각 범위의 숫자 값 (행 우선, 결측 제외)
func (r *Resolver) RangeValues(sheet, start, end string) ([]float64, error) {
	r1, c1, err := ParseCellAddress(start)
	if err != nil {
		return nil, err
	}
	r2, c2 := r1, c1
	if end != "" {
		if r2, c2, err = ParseCellAddress(end); err != nil {
			return nil, err
		}
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}

	rows, err := r.wb.Rows(sheet)
	if err != nil {
		return nil, err
	}
	// 요청 범위는 시트의 실제 크기로 자른다
	r2 = min(r2, len(rows))
	var values []float64
	for row := r1; row <= r2; row++ {
		last := min(c2, len(rows[row-1]))
		for col := c1; col <= last; col++ {
			if v, ok := parser.ParseNumber(cellAt(rows, row, col)); ok {
				values = append(values, v)
			}
		}
	}
	return values, nil
}
