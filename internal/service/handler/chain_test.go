package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regionreport/internal/model"
	"regionreport/internal/service/excel"
	"regionreport/internal/service/ranking"
	"regionreport/internal/testutil"
)

const industrySheet = "광공업생산"

func newContext(t *testing.T, schemas *model.SchemaSet, sheet string, rows [][]interface{}) *Context {
	t.Helper()
	wb := excel.NewFile(testutil.BuildWorkbook(t, testutil.Sheet{Name: sheet, Rows: rows}))
	resolver := excel.NewResolver(wb, schemas, excel.DefaultOptions(), nil)
	return &Context{
		Sheet:  sheet,
		Period: model.Period{Year: 2025, Quarter: 2},
		Engine: ranking.NewEngine(resolver, ranking.DefaultConfig(), nil),
		Cache:  ranking.NewCache(),
		Format: DefaultFormatter(),
	}
}

func resolveAll(t *testing.T, ctx *Context, cases map[string]string) {
	t.Helper()
	chain := NewChain(nil)
	for key, want := range cases {
		got, ok := chain.Resolve(key, ctx)
		assert.Equal(t, want, got, key)
		assert.Equal(t, want != model.MissingValue, ok, key)
	}
}

func TestChain_National(t *testing.T) {
	t.Parallel()

	ctx := newContext(t, nil, industrySheet, testutil.IndustryRows())
	resolveAll(t, ctx, map[string]string{
		"national_growth_rate":               "5.2",
		"national_growth_rate_abs":           "5.2",
		"national_name":                      "전국",
		"national_value":                     "105.2",
		"national_prior_value":               "100.0",
		"national_direction":                 "증가",
		"national_weight":                    "1,000.0",
		"national_category1_name":            "반도체",
		"national_category2_growth_rate":     "-5.0",
		"national_category2_growth_rate_abs": "5.0",
		"national_category2_direction":       "감소",
		"national_category4_name":            model.MissingValue,
		"national_increase2_name":            "전자부품",
		"national_decrease1_name":            "자동차",
		"national_decrease2_name":            model.MissingValue,
		"national_unknown":                   model.MissingValue,
	})
}

func TestChain_RegionRanking(t *testing.T) {
	t.Parallel()

	ctx := newContext(t, nil, industrySheet, testutil.IndustryRows())
	resolveAll(t, ctx, map[string]string{
		"top_region_1_name":           "서울",
		"top_region_2_name":           "대구",
		"top_region_1_growth_rate":    "10.0",
		"bottom_region_1_name":        "부산",
		"bottom_region_1_growth_rate": "-5.0",
		"top_region_1_category1_name": "반도체",
		"top_region_1_category2_name": "자동차",
		"top_region_1_category3_name": model.MissingValue,
		"top_region_7_name":           model.MissingValue,
		"서울_growth_rate":              "10.0",
		"서울_category2_growth_rate":    "-10.0",
		"경기_direction":                "증가",
		"인천_growth_rate":              model.MissingValue,
		"제주_name":                     model.MissingValue,
		"전국_value":                    "105.2",
	})
}

func TestChain_Stats(t *testing.T) {
	t.Parallel()

	ctx := newContext(t, nil, industrySheet, testutil.IndustryRows())
	resolveAll(t, ctx, map[string]string{
		"region_count":           "4",
		"all_region_count":       "4",
		"increase_region_count":  "3",
		"increase_region_names":  "서울, 대구, 경기",
		"decrease_region_count":  "1",
		"decrease_region_names":  "부산",
		"unchanged_region_count": "0",
		"unchanged_region_names": model.MissingValue,
		"max_growth_rate":        "10.0",
		"min_growth_rate":        "-5.0",
		"average_growth_rate":    "4.5",
	})
}

func TestChain_TimeSeries(t *testing.T) {
	t.Parallel()

	ctx := newContext(t, nil, industrySheet, testutil.IndustryRows())
	resolveAll(t, ctx, map[string]string{
		"timeseries_전국_values_3":       "102.0, 103.0, 105.2",
		"timeseries_national_values_1": "105.2",
		"timeseries_전국_labels_3":       "2024 4/4, 2025 1/4, 2025 2/4p",
		"timeseries_전국_growth_rates_2": "5.1, 5.2",
		"timeseries_서울_growth_rates":   "N/A, N/A, N/A, N/A, 11.6, 10.0",
		"timeseries_제주_values":         model.MissingValue,
	})

	// 요청 기간 이후 분기는 포함하지 않는다
	ctx.Period = model.Period{Year: 2025, Quarter: 1}
	resolveAll(t, ctx, map[string]string{
		"timeseries_전국_values_2": "102.0, 103.0",
	})
}

func TestChain_Labor(t *testing.T) {
	t.Parallel()

	schemas := &model.SchemaSet{Sheets: []model.SheetSchema{{Name: "고용률", Labor: true, Unit: "%"}}}
	ctx := newContext(t, schemas, "고용률", testutil.LaborRows())
	resolveAll(t, ctx, map[string]string{
		"national_rate":             "62.5",
		"national_point_change":     "0.5",
		"서울_point_change":           "1.2",
		"부산_point_change":           "-0.6",
		"부산_point_change_abs":       "0.6",
		"national_growth_rate":      "0.5",
		"top_region_1_name":         "서울",
		"top_region_1_growth_rate":  "1.2",
		"bottom_region_1_direction": "감소",
		"increase_region_names":     "서울",
	})
}

func TestChain_DoesNotWriteCache(t *testing.T) {
	t.Parallel()

	ctx := newContext(t, nil, industrySheet, testutil.IndustryRows())
	cache := ranking.NewCache()
	ctx.Cache = cache

	got, ok := NewChain(nil).Resolve("national_growth_rate", ctx)
	require.True(t, ok)
	assert.Equal(t, "5.2", got)
	assert.Equal(t, 0, cache.Len())
}

func TestChain_UsesCachedRanking(t *testing.T) {
	t.Parallel()

	ctx := newContext(t, nil, industrySheet, testutil.IndustryRows())
	cache := ranking.NewCache()
	key := model.RankingKey{Sheet: industrySheet, Period: ctx.Period}
	cache.Put(key, &model.RankingResult{
		Sheet:    industrySheet,
		Period:   ctx.Period,
		National: &model.RegionRecord{Name: "전국", DisplayName: "전국", GrowthRate: 7.77},
	})
	ctx.Cache = cache

	got, ok := NewChain(nil).Resolve("national_growth_rate", ctx)
	require.True(t, ok)
	assert.Equal(t, "7.8", got)
}

type stubHandler struct {
	name   string
	value  string
	ok     bool
	called *[]string
}

func (s stubHandler) Name() string { return s.name }

func (s stubHandler) CanHandle(Query, *Context) bool { return true }

func (s stubHandler) Handle(Query, *Context) (string, bool) {
	*s.called = append(*s.called, s.name)
	return s.value, s.ok
}

func TestChain_FirstValueWins(t *testing.T) {
	t.Parallel()

	var called []string
	chain := NewChain(nil,
		stubHandler{name: "a", called: &called},
		stubHandler{name: "b", value: "B", ok: true, called: &called},
		stubHandler{name: "c", value: "C", ok: true, called: &called},
	)
	got, ok := chain.Resolve("national_name", &Context{Format: DefaultFormatter()})
	require.True(t, ok)
	assert.Equal(t, "B", got)
	assert.Equal(t, []string{"a", "b"}, called)

	called = nil
	got, ok = chain.Resolve("not a key", &Context{Format: DefaultFormatter()})
	assert.False(t, ok)
	assert.Equal(t, model.MissingValue, got)
	assert.Empty(t, called)
}
