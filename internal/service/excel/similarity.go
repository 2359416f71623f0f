package excel

import (
	"strings"
	"unicode/utf8"

	"regionreport/internal/parser"
)

// matchStage 이름 매칭 단계 (앞 단계가 우선)
type matchStage int

const (
	stageNone matchStage = iota
	stageExact
	stageContains
	stageKeyword
	stageSimilarity
)

func (s matchStage) String() string {
	switch s {
	case stageExact:
		return "exact"
	case stageContains:
		return "contains"
	case stageKeyword:
		return "keyword"
	case stageSimilarity:
		return "similarity"
	default:
		return "none"
	}
}

// nameMatch 후보 목록에서 찾은 결과
type nameMatch struct {
	Index int
	Stage matchStage
	Score float64
}

// matchName 정확 일치 -> 포함 관계 -> 키워드 겹침 -> 문자 유사도 순으로 첫 단계에서 결정.
// 유사도 단계는 threshold 이상일 때만 채택한다. 빈 후보는 건너뛴다.
func matchName(target string, candidates []string, threshold float64) (nameMatch, bool) {
	if strings.TrimSpace(target) == "" || len(candidates) == 0 {
		return nameMatch{}, false
	}

	// 1. 정확 일치
	for i, c := range candidates {
		if c != "" && c == target {
			return nameMatch{Index: i, Stage: stageExact, Score: 1}, true
		}
	}

	normTarget := parser.NormalizeName(target)
	normCands := make([]string, len(candidates))
	for i, c := range candidates {
		normCands[i] = parser.NormalizeName(c)
	}

	// 2. 포함 관계 (양방향). 정규화 후 동일 > 길이 차이가 작은 순 > 앞 순서
	if normTarget != "" {
		best, bestDiff := -1, 0
		for i, c := range normCands {
			if c == "" {
				continue
			}
			if !strings.Contains(c, normTarget) && !strings.Contains(normTarget, c) {
				continue
			}
			diff := utf8.RuneCountInString(c) - utf8.RuneCountInString(normTarget)
			if diff < 0 {
				diff = -diff
			}
			if best < 0 || diff < bestDiff {
				best, bestDiff = i, diff
			}
		}
		if best >= 0 {
			return nameMatch{Index: best, Stage: stageContains, Score: 1}, true
		}
	}

	// 3. 키워드 겹침
	targetTokens := parser.Tokenize(target)
	if len(targetTokens) > 0 {
		best, bestScore := -1, 0.0
		for i, c := range candidates {
			score := keywordOverlap(targetTokens, parser.Tokenize(c))
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		if best >= 0 && bestScore > 0 {
			return nameMatch{Index: best, Stage: stageKeyword, Score: bestScore}, true
		}
	}

	// 4. 문자 유사도
	if normTarget == "" {
		return nameMatch{}, false
	}
	best, bestScore := -1, 0.0
	for i, c := range normCands {
		if c == "" {
			continue
		}
		score := similarityRatio(normTarget, c)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best >= 0 && bestScore >= threshold {
		return nameMatch{Index: best, Stage: stageSimilarity, Score: bestScore}, true
	}
	return nameMatch{}, false
}

// keywordOverlap |교집합| / max(|target|, |candidate|).
// 한글 복합어("소매판매" ⊃ "소매")를 위해 한쪽 토큰이 다른 쪽을 포함해도 같은 토큰으로 본다.
func keywordOverlap(target, candidate []string) float64 {
	if len(target) == 0 || len(candidate) == 0 {
		return 0
	}
	used := make([]bool, len(candidate))
	hits := 0
	for _, t := range target {
		for j, c := range candidate {
			if used[j] {
				continue
			}
			if t == c || strings.Contains(t, c) || strings.Contains(c, t) {
				used[j] = true
				hits++
				break
			}
		}
	}
	denom := len(target)
	if len(candidate) > denom {
		denom = len(candidate)
	}
	return float64(hits) / float64(denom)
}

// similarityRatio 1 - levenshtein/max(len) (룬 단위, 0~1)
func similarityRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(maxLen)
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
