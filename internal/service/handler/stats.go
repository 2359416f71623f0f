package handler

import (
	"sort"

	"regionreport/internal/model"
)

// StatsHandler 지역 전체 통계 (증가/감소 지역 수와 이름, 최대/최소/평균)
type StatsHandler struct{}

func (StatsHandler) Name() string { return "stats" }

func (StatsHandler) CanHandle(q Query, _ *Context) bool {
	_, ok := q.(StatQuery)
	return ok
}

func (StatsHandler) Handle(q Query, ctx *Context) (string, bool) {
	sq, ok := q.(StatQuery)
	if !ok {
		return "", false
	}
	res, ok := ctx.ranking()
	if !ok {
		return "", false
	}
	f := ctx.Format
	metric := func(r model.RegionRecord) float64 {
		if res.RankBy == model.RankByChange {
			return r.Change
		}
		return r.GrowthRate
	}

	switch sq.Condition {
	case ConditionMax, ConditionMin, ConditionAverage:
		if len(res.Regions) == 0 {
			return "", false
		}
		acc := res.Regions[0].GrowthRate
		total := 0.0
		for _, r := range res.Regions {
			total += r.GrowthRate
			switch sq.Condition {
			case ConditionMax:
				acc = max(acc, r.GrowthRate)
			case ConditionMin:
				acc = min(acc, r.GrowthRate)
			}
		}
		if sq.Condition == ConditionAverage {
			acc = total / float64(len(res.Regions))
		}
		return f.Rate(acc), true
	}

	var selected []model.RegionRecord
	for _, r := range res.Regions {
		dir := f.Direction(metric(r))
		switch sq.Condition {
		case ConditionAll:
		case ConditionIncrease:
			if dir != DirectionUp {
				continue
			}
		case ConditionDecrease:
			if dir != DirectionDown {
				continue
			}
		case ConditionUnchanged:
			if dir != DirectionFlat {
				continue
			}
		default:
			return "", false
		}
		selected = append(selected, r)
	}
	if sq.Condition == ConditionDecrease {
		// 감소 폭이 큰 순
		sort.SliceStable(selected, func(i, j int) bool {
			return metric(selected[i]) < metric(selected[j])
		})
	}

	switch sq.Field {
	case FieldCount:
		return f.Count(len(selected)), true
	case FieldNames:
		if len(selected) == 0 {
			return "", false
		}
		names := make([]string, len(selected))
		for i := range selected {
			names[i], _ = regionField(f, &selected[i], FieldName, res.RankBy)
		}
		return f.Join(names), true
	}
	return "", false
}
