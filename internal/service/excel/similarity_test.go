package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchName_ExactWinsOverFuzzy(t *testing.T) {
	t.Parallel()

	// "광공업생산지수" 가 포함 관계로도 맞지만 정확 일치가 우선
	cands := []string{"광공업생산지수", "광공업생산", "광공업생산(잠정)"}
	m, ok := matchName("광공업생산", cands, DefaultSheetThreshold)
	require.True(t, ok)
	assert.Equal(t, 1, m.Index)
	assert.Equal(t, stageExact, m.Stage)
}

func TestMatchName_ContainsEitherDirection(t *testing.T) {
	t.Parallel()

	m, ok := matchName("서비스업 생산", []string{"광공업생산", "서비스업생산지수"}, DefaultSheetThreshold)
	require.True(t, ok)
	assert.Equal(t, 1, m.Index)
	assert.Equal(t, stageContains, m.Stage)

	m, ok = matchName("서울특별시", []string{"부산", "서울"}, DefaultRowThreshold)
	require.True(t, ok)
	assert.Equal(t, 1, m.Index)
}

func TestMatchName_KeywordOverlap(t *testing.T) {
	t.Parallel()

	cands := []string{"광공업생산", "서비스업생산", "소비(소매, 추가)", "고용률"}
	m, ok := matchName("소매판매", cands, DefaultSheetThreshold)
	require.True(t, ok)
	assert.Equal(t, "소비(소매, 추가)", cands[m.Index])
	assert.Equal(t, stageKeyword, m.Stage)
}

func TestMatchName_SimilarityThreshold(t *testing.T) {
	t.Parallel()

	m, ok := matchName("employmnet", []string{"unemployment", "employment"}, DefaultColumnThreshold)
	require.True(t, ok)
	assert.Equal(t, 1, m.Index)
	assert.Equal(t, stageSimilarity, m.Stage)

	_, ok = matchName("xyz", []string{"지역", "산업"}, DefaultColumnThreshold)
	assert.False(t, ok)
}

func TestKeywordOverlap(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.0/3.0, keywordOverlap([]string{"소매판매"}, []string{"소비", "소매", "추가"}), 1e-9)
	assert.InDelta(t, 0.5, keywordOverlap([]string{"mining", "index"}, []string{"mining"}), 1e-9)
	assert.Zero(t, keywordOverlap([]string{"고용률"}, []string{"실업률"}))
}

func TestSimilarityRatio(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.0, similarityRatio("abc", "abc"), 1e-9)
	assert.InDelta(t, 2.0/3.0, similarityRatio("abc", "abd"), 1e-9)
	assert.InDelta(t, 0.0, similarityRatio("abc", "xyz"), 1e-9)
	assert.Equal(t, 3, levenshtein([]rune("kitten"), []rune("sitting")))
}
