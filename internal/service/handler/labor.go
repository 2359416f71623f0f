package handler

import "regionreport/internal/model"

// LaborHandler 고용률/실업률처럼 비율 자체가 값인 시트. 증감은 퍼센트포인트.
// labor 시트에서는 growth_rate 계열 항목도 퍼센트포인트 증감으로 답한다.
type LaborHandler struct{}

func (LaborHandler) Name() string { return "labor" }

func (LaborHandler) CanHandle(q Query, ctx *Context) bool {
	if _, ok := q.(LaborQuery); ok {
		return true
	}
	if s := ctx.schema(); s == nil || !s.Labor {
		return false
	}
	switch q := q.(type) {
	case NationalQuery:
		return laborField(q.Field)
	case RegionMetricQuery:
		return laborField(q.Field)
	case RegionRankQuery:
		return q.CategoryIndex == 0 && laborField(q.Field)
	}
	return false
}

func laborField(f Field) bool {
	return f == FieldGrowthRate || f == FieldGrowthRateAbs || f == FieldDirection
}

func (LaborHandler) Handle(q Query, ctx *Context) (string, bool) {
	res, ok := ctx.ranking()
	if !ok {
		return "", false
	}

	var rec *model.RegionRecord
	var field Field
	switch q := q.(type) {
	case LaborQuery:
		rec, _ = findRegion(res, q.Target)
		field = q.Field
	case NationalQuery:
		rec, field = res.National, q.Field
	case RegionMetricQuery:
		rec, _ = findRegion(res, q.Region)
		field = q.Field
	case RegionRankQuery:
		list := res.Top
		if q.Order == OrderBottom {
			list = res.Bottom
		}
		rec, field = nth(list, q.Index), q.Field
	}
	if rec == nil {
		return "", false
	}

	f := ctx.Format
	switch field {
	case FieldRate:
		return f.Rate(rec.Current), true
	case FieldPointChange, FieldGrowthRate:
		return f.Rate(rec.Change), true
	case FieldPointChangeAbs, FieldGrowthRateAbs:
		return f.Abs(rec.Change), true
	case FieldDirection:
		return f.Direction(rec.Change), true
	}
	return "", false
}
