package excel_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regionreport/internal/service/excel"
)

func TestParseOperation(t *testing.T) {
	t.Parallel()

	cases := map[string]excel.Operation{
		"":            excel.OpNone,
		"sum":         excel.OpSum,
		" SUM ":       excel.OpSum,
		"평균":          excel.OpAverage,
		"avg":         excel.OpAverage,
		"최댓값":         excel.OpMax,
		"min":         excel.OpMin,
		"growth_rate": excel.OpGrowthRate,
		"증감":          excel.OpGrowthAmount,
	}
	for in, want := range cases {
		got, err := excel.ParseOperation(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := excel.ParseOperation("median")
	assert.True(t, errors.Is(err, excel.ErrUnknownOperation))
}

func TestOperationApply(t *testing.T) {
	t.Parallel()

	values := []float64{100, 110, 90, 120}
	tests := []struct {
		op   excel.Operation
		want float64
	}{
		{excel.OpSum, 420},
		{excel.OpAverage, 105},
		{excel.OpMax, 120},
		{excel.OpMin, 90},
		{excel.OpGrowthRate, 20},
		{excel.OpGrowthAmount, 20},
		{excel.OpNone, 100},
	}
	for _, tt := range tests {
		got, err := tt.op.Apply(values)
		require.NoError(t, err, tt.op)
		assert.InDelta(t, tt.want, got, 1e-9, tt.op)
	}

	_, err := excel.OpSum.Apply(nil)
	assert.ErrorIs(t, err, excel.ErrNoValues)

	_, err = excel.OpGrowthRate.Apply([]float64{0, 10})
	assert.Error(t, err)
}

func TestRangeValues(t *testing.T) {
	t.Parallel()

	r := newResolver(t, nil, industrySheet("광공업생산"))

	// F8:K8 서울 총지수, 결측 없음
	values, err := r.RangeValues("광공업생산", "F8", "K8")
	require.NoError(t, err)
	assert.Equal(t, []float64{95, 100, 102, 104, 106, 110}, values)

	// G13:G14 대구 100, 인천 "-" 건너뜀
	values, err = r.RangeValues("광공업생산", "G14", "G13")
	require.NoError(t, err)
	assert.Equal(t, []float64{100}, values)

	values, err = r.RangeValues("광공업생산", "K3", "")
	require.NoError(t, err)
	assert.Equal(t, []float64{105.2}, values)

	_, err = r.RangeValues("광공업생산", "없음", "K3")
	assert.Error(t, err)
}

func TestRangeValues_ClampedToSheet(t *testing.T) {
	t.Parallel()

	r := newResolver(t, nil, industrySheet("광공업생산"))

	values, err := r.RangeValues("광공업생산", "F8", "XFD8")
	require.NoError(t, err)
	assert.Equal(t, []float64{95, 100, 102, 104, 106, 110}, values)

	values, err = r.RangeValues("광공업생산", "A1", "XFD1048576")
	require.NoError(t, err)
	assert.NotEmpty(t, values)
	assert.Less(t, len(values), 16*11)

	values, err = r.RangeValues("광공업생산", "A5000", "XFD1048576")
	require.NoError(t, err)
	assert.Empty(t, values)
}
