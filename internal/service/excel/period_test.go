package excel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regionreport/internal/model"
	"regionreport/internal/testutil"
)

func TestQuarterColumn_HeaderScan(t *testing.T) {
	t.Parallel()

	r := newResolver(t, nil, industrySheet("광공업생산"))

	col, ok := r.QuarterColumn("광공업생산", 2025, 2)
	require.True(t, ok)
	assert.Equal(t, 11, col)

	prior, ok := r.PriorColumn("광공업생산", 2025, 2)
	require.True(t, ok)
	assert.Equal(t, 7, prior)

	_, ok = r.QuarterColumn("광공업생산", 2025, 5)
	assert.False(t, ok)

	// 전년 동분기 열이 없는 기간
	_, ok = r.PriorColumn("광공업생산", 2024, 2)
	assert.False(t, ok)
}

func TestQuarterColumn_BaseFormula(t *testing.T) {
	t.Parallel()

	schemas := &model.SchemaSet{Sheets: []model.SheetSchema{
		{Name: "건설수주", BaseYear: 2024, BaseQuarter: 1, BaseColumn: 2},
	}}
	rows := [][]interface{}{
		{"지역", "값1", "값2", "값3", "값4", "값5"},
		{"전국", 10.0, 11.0, 12.0, 13.0, 12.0},
		{"서울", 5.0, 6.0, 7.0, 8.0, 6.0},
	}
	r := newResolver(t, schemas, testutil.Sheet{Name: "건설수주", Rows: rows})

	col, ok := r.QuarterColumn("건설수주", 2025, 1)
	require.True(t, ok)
	assert.Equal(t, 6, col)

	prior, ok := r.PriorColumn("건설수주", 2025, 1)
	require.True(t, ok)
	assert.Equal(t, col-4, prior)

	pr := r.DetectAvailablePeriods("건설수주")
	require.False(t, pr.Empty())
	assert.Equal(t, model.Period{Year: 2024, Quarter: 1}, pr.Min)
	assert.Equal(t, model.Period{Year: 2025, Quarter: 1}, pr.Max)
	assert.Len(t, pr.Available, 5)
}

func TestPriorColumn_IsCurrentMinusFour(t *testing.T) {
	t.Parallel()

	r := newResolver(t, nil, industrySheet("광공업생산"))
	for _, q := range []int{1, 2} {
		cur, prior, ok := r.ColumnPair("광공업생산", model.Period{Year: 2025, Quarter: q})
		require.True(t, ok)
		assert.Equal(t, cur-4, prior)
	}
}

func TestDetectAvailablePeriods(t *testing.T) {
	t.Parallel()

	r := newResolver(t, nil, industrySheet("광공업생산"))
	pr := r.DetectAvailablePeriods("광공업생산")

	assert.Equal(t, model.Period{Year: 2024, Quarter: 1}, pr.Min)
	assert.Equal(t, model.Period{Year: 2025, Quarter: 2}, pr.Max)
	assert.Equal(t, pr.Max, pr.Default)
	assert.Len(t, pr.Available, 6)
	assert.True(t, pr.IsPreliminary(model.Period{Year: 2025, Quarter: 2}))
	for i := 1; i < len(pr.Available); i++ {
		assert.True(t, pr.Available[i-1].Before(pr.Available[i]))
	}
}

func TestDetectAvailablePeriods_SkipsEmptyHeaderColumns(t *testing.T) {
	t.Parallel()

	// 다음 분기 열은 머리글만 있고 값은 비어 있다
	rows := testutil.IndustryRows()
	rows[1] = append(testutil.IndustryHeader(), "2025 3/4p")
	r := newResolver(t, nil, testutil.Sheet{Name: "광공업생산", Rows: rows})

	st, err := r.Structure("광공업생산")
	require.NoError(t, err)
	assert.Len(t, st.PeriodColumns, 7)

	pr := r.DetectAvailablePeriods("광공업생산")
	assert.Len(t, pr.Available, 6)
	assert.Equal(t, model.Period{Year: 2025, Quarter: 2}, pr.Max)
	assert.Equal(t, pr.Max, pr.Default)
	assert.False(t, pr.Contains(model.Period{Year: 2025, Quarter: 3}))

	check := r.ValidatePeriod("광공업생산", 2025, 3)
	assert.False(t, check.OK)
	assert.Contains(t, check.Reason, "2분기까지")
}

func TestValidatePeriod(t *testing.T) {
	t.Parallel()

	r := newResolver(t, nil, industrySheet("광공업생산"))

	check := r.ValidatePeriod("광공업생산", 2025, 2)
	assert.True(t, check.OK)
	assert.Empty(t, check.Reason)

	check = r.ValidatePeriod("광공업생산", 2025, 3)
	assert.False(t, check.OK)
	assert.Contains(t, check.Reason, "2025년")
	assert.Contains(t, check.Reason, "2분기까지")

	check = r.ValidatePeriod("광공업생산", 2019, 1)
	assert.False(t, check.OK)
	assert.Contains(t, check.Reason, "2019년")

	check = r.ValidatePeriod("광공업생산", 2025, 0)
	assert.False(t, check.OK)
	assert.Contains(t, check.Reason, "분기")

	check = r.ValidatePeriod("없는시트", 2025, 2)
	assert.False(t, check.OK)
	assert.NotEmpty(t, check.Reason)
}

func TestResolvePeriod_DefaultsToLatest(t *testing.T) {
	t.Parallel()

	r := newResolver(t, nil, industrySheet("광공업생산"))

	p, check := r.ResolvePeriod("광공업생산", model.Period{})
	require.True(t, check.OK)
	assert.Equal(t, model.Period{Year: 2025, Quarter: 2}, p)

	p, check = r.ResolvePeriod("광공업생산", model.Period{Year: 2025, Quarter: 1})
	require.True(t, check.OK)
	assert.Equal(t, model.Period{Year: 2025, Quarter: 1}, p)
}
