package handler

import (
	"regionreport/internal/model"
	"regionreport/internal/service/ranking"
)

// NationalHandler national_* 키
type NationalHandler struct{}

func (NationalHandler) Name() string { return "national" }

func (NationalHandler) CanHandle(q Query, _ *Context) bool {
	switch q.(type) {
	case NationalQuery, NationalCategoryQuery:
		return true
	}
	return false
}

func (NationalHandler) Handle(q Query, ctx *Context) (string, bool) {
	res, ok := ctx.ranking()
	if !ok || res.National == nil {
		return "", false
	}
	switch q := q.(type) {
	case NationalQuery:
		return regionField(ctx.Format, res.National, q.Field, res.RankBy)
	case NationalCategoryQuery:
		var cats []model.CategoryRecord
		switch q.Kind {
		case CategoryTop:
			cats = res.National.TopCategories
		case CategoryIncrease, CategoryDecrease:
			all, ok := nationalCategories(ctx, res.National)
			if !ok {
				return "", false
			}
			if q.Kind == CategoryIncrease {
				cats = ranking.Increasing(all)
			} else {
				cats = ranking.Decreasing(all)
			}
		}
		return categoryField(ctx.Format, nth(cats, q.Index), q.Field)
	}
	return "", false
}

// nationalCategories 전국 분류 전체 (증가/감소 목록용)
func nationalCategories(ctx *Context, national *model.RegionRecord) ([]model.CategoryRecord, bool) {
	cur, prior, ok := ctx.Engine.Resolver().ColumnPair(ctx.Sheet, ctx.Period)
	if !ok {
		return nil, false
	}
	cats, err := ctx.Engine.CategoriesForRegion(ctx.Sheet, national.Name, national.Row, cur, prior)
	if err != nil {
		return nil, false
	}
	return cats, true
}
