package excel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regionreport/internal/model"
	"regionreport/internal/testutil"
)

func TestStructure_IndustrySheet(t *testing.T) {
	t.Parallel()

	r := newResolver(t, nil, industrySheet("광공업생산"))
	st, err := r.Structure("광공업생산")
	require.NoError(t, err)

	assert.Equal(t, 2, st.HeaderRow)
	assert.Equal(t, 3, st.FirstDataRow)
	assert.Equal(t, 1, st.CodeColumn)
	assert.Equal(t, 2, st.RegionColumn)
	assert.Equal(t, 3, st.LevelColumn)
	assert.Equal(t, 4, st.WeightColumn)
	assert.Equal(t, 5, st.CategoryColumn)
	assert.Len(t, st.PeriodColumns, 6)
	assert.Equal(t, 6, st.PeriodColumns[model.Period{Year: 2024, Quarter: 1}])
	assert.Equal(t, 11, st.PeriodColumns[model.Period{Year: 2025, Quarter: 2}])
	assert.True(t, st.Preliminary[model.Period{Year: 2025, Quarter: 2}])
	assert.False(t, st.Preliminary[model.Period{Year: 2025, Quarter: 1}])

	// 같은 인스턴스 재사용
	again, err := r.Structure("광공업생산")
	require.NoError(t, err)
	assert.Same(t, st, again)
}

func TestStructure_LaborSheet(t *testing.T) {
	t.Parallel()

	r := newResolver(t, nil, testutil.Sheet{Name: "고용률", Rows: testutil.LaborRows()})
	st, err := r.Structure("고용률")
	require.NoError(t, err)

	assert.Equal(t, 1, st.HeaderRow)
	assert.Equal(t, 1, st.RegionColumn)
	assert.Zero(t, st.CategoryColumn)
	assert.Zero(t, st.WeightColumn)
	assert.Zero(t, st.LevelColumn)
	assert.Len(t, st.PeriodColumns, 4)
}

func TestStructure_MultiRowHeader(t *testing.T) {
	t.Parallel()

	rows := [][]interface{}{
		{"", "", "2025년", "2025년"},
		{"지역", "업태", "1분기", "2분기"},
		{"전국", "총지수", 101.0, 102.0},
	}
	r := newResolver(t, nil, testutil.Sheet{Name: "소매판매", Rows: rows})
	st, err := r.Structure("소매판매")
	require.NoError(t, err)

	assert.Equal(t, 2, st.HeaderRow)
	assert.Equal(t, "2025년 1분기", st.Label(3))
	assert.Equal(t, 3, st.PeriodColumns[model.Period{Year: 2025, Quarter: 1}])
	assert.Equal(t, 4, st.PeriodColumns[model.Period{Year: 2025, Quarter: 2}])
	assert.Equal(t, 1, st.RegionColumn)
	assert.Equal(t, 2, st.CategoryColumn)
}

func TestStructure_MergedYearHeader(t *testing.T) {
	t.Parallel()

	rows := [][]interface{}{
		{"소매판매액지수 (2020=100)"},
		{"", "2025년"},
		{"지역", "1/4", "2/4", "3/4", "4/4"},
		{"전국", 101.0, 102.0, 103.0, 104.0},
		{"서울", 99.0, 100.0, 101.0, 102.0},
	}
	r := newResolver(t, nil, testutil.Sheet{
		Name:   "소매판매",
		Rows:   rows,
		Merges: []string{"A1:E1", "B2:E2"},
	})
	st, err := r.Structure("소매판매")
	require.NoError(t, err)

	assert.Equal(t, 3, st.HeaderRow)
	assert.Equal(t, "2025년 1/4", st.Label(2))
	assert.Equal(t, "2025년 4/4", st.Label(5))
	require.Len(t, st.PeriodColumns, 4)
	for q := 1; q <= 4; q++ {
		assert.Equal(t, q+1, st.PeriodColumns[model.Period{Year: 2025, Quarter: q}])
	}
}

func TestStructure_SchemaOverrides(t *testing.T) {
	t.Parallel()

	schemas := &model.SchemaSet{Sheets: []model.SheetSchema{
		{Name: "광공업생산", RegionColumn: 2, CategoryColumn: 5, HeaderRow: 2, WeightColumn: 4},
	}}
	r := newResolver(t, schemas, industrySheet("광공업생산"))
	st, err := r.Structure("광공업생산")
	require.NoError(t, err)
	assert.Equal(t, 2, st.HeaderRow)
	assert.Equal(t, 2, st.RegionColumn)
	assert.Equal(t, 5, st.CategoryColumn)
	assert.Equal(t, 4, st.WeightColumn)
}

func TestStructure_UnknownSheet(t *testing.T) {
	t.Parallel()

	r := newResolver(t, nil, industrySheet("광공업생산"))
	_, err := r.Structure("없는시트")
	assert.Error(t, err)
}
