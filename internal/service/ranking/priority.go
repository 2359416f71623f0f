package ranking

import (
	"sort"
	"strings"

	"regionreport/internal/model"
	"regionreport/internal/parser"
)

// 우선 키워드 매칭 점수
const (
	scoreNone       = 0
	scoreSubstring  = 1
	scoreNormalized = 2
	scoreExact      = 3
)

// priorityScore 정확 일치 3, 정규화 일치 2, 포함 1
func priorityScore(keyword, name string) int {
	if keyword == "" || name == "" {
		return scoreNone
	}
	if keyword == name {
		return scoreExact
	}
	kw, n := parser.NormalizeName(keyword), parser.NormalizeName(name)
	if kw == "" || n == "" {
		return scoreNone
	}
	if kw == n {
		return scoreNormalized
	}
	if strings.Contains(n, kw) || strings.Contains(kw, n) {
		return scoreSubstring
	}
	return scoreNone
}

// selectCategories 키워드마다 최고 점수 분류 하나 (키워드 순서 유지), 나머지는 magnitude 내림차순.
// 같은 점수/크기는 행 순서.
func selectCategories(cats []model.CategoryRecord, priority []string, magnitude func(model.CategoryRecord) float64, topN int) []model.CategoryRecord {
	if topN <= 0 || len(cats) == 0 {
		return nil
	}
	used := make([]bool, len(cats))
	out := make([]model.CategoryRecord, 0, topN)

	for _, kw := range priority {
		if len(out) >= topN {
			break
		}
		best, bestScore := -1, scoreNone
		for i, c := range cats {
			if used[i] {
				continue
			}
			if s := priorityScore(kw, c.Name); s > bestScore {
				best, bestScore = i, s
			}
		}
		if best < 0 {
			continue
		}
		used[best] = true
		picked := cats[best]
		picked.Priority = true
		out = append(out, picked)
	}

	if len(out) >= topN {
		return out
	}
	pool := make([]model.CategoryRecord, 0, len(cats))
	for i, c := range cats {
		if !used[i] {
			pool = append(pool, c)
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return magnitude(pool[i]) > magnitude(pool[j])
	})
	for _, c := range pool {
		if len(out) >= topN {
			break
		}
		out = append(out, c)
	}
	return out
}

// Increasing 성장률 > 0 분류, 가중 성장률 내림차순
func Increasing(cats []model.CategoryRecord) []model.CategoryRecord {
	out := filterCategories(cats, func(c model.CategoryRecord) bool { return c.GrowthRate > 0 })
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WeightedGrowthRate > out[j].WeightedGrowthRate
	})
	return out
}

// Decreasing 성장률 < 0 분류, 가중 성장률 오름차순 (기여 감소 폭이 큰 순)
func Decreasing(cats []model.CategoryRecord) []model.CategoryRecord {
	out := filterCategories(cats, func(c model.CategoryRecord) bool { return c.GrowthRate < 0 })
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WeightedGrowthRate < out[j].WeightedGrowthRate
	})
	return out
}

func filterCategories(cats []model.CategoryRecord, keep func(model.CategoryRecord) bool) []model.CategoryRecord {
	out := make([]model.CategoryRecord, 0, len(cats))
	for _, c := range cats {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
