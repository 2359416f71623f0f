package handler

// RegionHandler 순위 지역, 지역별 값, 지역별 분류
type RegionHandler struct{}

func (RegionHandler) Name() string { return "region" }

func (RegionHandler) CanHandle(q Query, _ *Context) bool {
	switch q.(type) {
	case RegionRankQuery, RegionMetricQuery, CategoryQuery:
		return true
	}
	return false
}

func (RegionHandler) Handle(q Query, ctx *Context) (string, bool) {
	res, ok := ctx.ranking()
	if !ok {
		return "", false
	}
	switch q := q.(type) {
	case RegionRankQuery:
		list := res.Top
		if q.Order == OrderBottom {
			list = res.Bottom
		}
		rec := nth(list, q.Index)
		if rec == nil {
			return "", false
		}
		if q.CategoryIndex > 0 {
			return categoryField(ctx.Format, nth(rec.TopCategories, q.CategoryIndex), q.Field)
		}
		return regionField(ctx.Format, rec, q.Field, res.RankBy)
	case RegionMetricQuery:
		rec, ok := findRegion(res, q.Region)
		if !ok {
			return "", false
		}
		return regionField(ctx.Format, rec, q.Field, res.RankBy)
	case CategoryQuery:
		rec, ok := findRegion(res, q.Region)
		if !ok {
			return "", false
		}
		return categoryField(ctx.Format, nth(rec.TopCategories, q.Index), q.Field)
	}
	return "", false
}
