package handler

import (
	"regionreport/internal/model"
	"regionreport/internal/parser"
)

// TimeSeriesHandler 차트용 분기 시계열 (최근 N 분기, 요청 기간까지)
type TimeSeriesHandler struct{}

func (TimeSeriesHandler) Name() string { return "timeseries" }

func (TimeSeriesHandler) CanHandle(q Query, _ *Context) bool {
	_, ok := q.(TimeSeriesQuery)
	return ok
}

func (TimeSeriesHandler) Handle(q Query, ctx *Context) (string, bool) {
	tq, ok := q.(TimeSeriesQuery)
	if !ok {
		return "", false
	}
	resolver := ctx.Engine.Resolver()
	pr := resolver.DetectAvailablePeriods(ctx.Sheet)
	periods := seriesPeriods(pr.Available, ctx.Period, tq.Count)
	if len(periods) == 0 {
		return "", false
	}

	f := ctx.Format
	items := make([]string, 0, len(periods))
	if tq.Mode == SeriesLabels {
		for _, p := range periods {
			items = append(items, parser.FormatPeriodLabel(p, pr.IsPreliminary(p)))
		}
		return f.Join(items), true
	}

	row, ok := ctx.Engine.RegionRow(ctx.Sheet, tq.Region)
	if !ok {
		return "", false
	}
	found := false
	for _, p := range periods {
		item := f.missing()
		switch tq.Mode {
		case SeriesValues:
			if col, ok := resolver.QuarterColumn(ctx.Sheet, p.Year, p.Quarter); ok {
				if v, ok := resolver.Value(ctx.Sheet, row, col); ok {
					item, found = f.Value(v), true
				}
			}
		case SeriesGrowthRates:
			if cur, prior, ok := resolver.ColumnPair(ctx.Sheet, p); ok {
				c, okCur := resolver.Value(ctx.Sheet, row, cur)
				pv, okPrior := resolver.Value(ctx.Sheet, row, prior)
				if okCur && okPrior {
					if rate, ok := model.GrowthRate(c, pv); ok {
						item, found = f.Rate(rate), true
					}
				}
			}
		}
		items = append(items, item)
	}
	if !found {
		return "", false
	}
	return f.Join(items), true
}

// seriesPeriods until 이하의 마지막 count 개 기간 (until 이 비어 있으면 전체 기준)
func seriesPeriods(available []model.Period, until model.Period, count int) []model.Period {
	if count <= 0 {
		count = DefaultSeriesCount
	}
	out := make([]model.Period, 0, len(available))
	for _, p := range available {
		if !until.IsZero() && until.Before(p) {
			continue
		}
		out = append(out, p)
	}
	if len(out) > count {
		out = out[len(out)-count:]
	}
	return out
}
