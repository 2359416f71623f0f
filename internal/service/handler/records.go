package handler

import "regionreport/internal/model"

// regionField 지역 레코드 항목 문자열
func regionField(f Formatter, r *model.RegionRecord, field Field, rankBy string) (string, bool) {
	if r == nil {
		return "", false
	}
	switch field {
	case FieldName:
		if r.DisplayName != "" {
			return r.DisplayName, true
		}
		return r.Name, true
	case FieldValue:
		return f.Value(r.Current), true
	case FieldPriorValue:
		return f.Value(r.Prior), true
	case FieldGrowthRate:
		return f.Rate(r.GrowthRate), true
	case FieldGrowthRateAbs:
		return f.Abs(r.GrowthRate), true
	case FieldChange:
		return f.Rate(r.Change), true
	case FieldChangeAbs:
		return f.Abs(r.Change), true
	case FieldDirection:
		if rankBy == model.RankByChange {
			return f.Direction(r.Change), true
		}
		return f.Direction(r.GrowthRate), true
	case FieldWeight:
		return f.Value(r.Weight), true
	}
	return "", false
}

// categoryField 분류 레코드 항목 문자열
func categoryField(f Formatter, c *model.CategoryRecord, field Field) (string, bool) {
	if c == nil {
		return "", false
	}
	switch field {
	case FieldName:
		if c.DisplayName != "" {
			return c.DisplayName, true
		}
		return c.Name, true
	case FieldValue:
		return f.Value(c.Current), true
	case FieldPriorValue:
		return f.Value(c.Prior), true
	case FieldGrowthRate:
		return f.Rate(c.GrowthRate), true
	case FieldGrowthRateAbs:
		return f.Abs(c.GrowthRate), true
	case FieldChange:
		return f.Rate(c.Change), true
	case FieldChangeAbs:
		return f.Abs(c.Change), true
	case FieldDirection:
		return f.Direction(c.GrowthRate), true
	case FieldWeight:
		return f.Value(c.Weight), true
	}
	return "", false
}

// nth 1부터 시작하는 인덱스, 범위를 벗어나면 nil
func nth[T any](items []T, index int) *T {
	if index < 1 || index > len(items) {
		return nil
	}
	return &items[index-1]
}
