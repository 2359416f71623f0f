package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeColumnName 헤더 라벨 정리: 전각 문자 통일, 줄바꿈/탭 제거, 공백 하나로 압축
func NormalizeColumnName(name string) string {
	name = norm.NFKC.String(name)
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\n", " ")
	name = strings.ReplaceAll(name, "\t", " ")
	name = whitespaceRe.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// NormalizeName 비교용 정규화: 공백/문장부호 제거, 라틴 문자 case-fold
func NormalizeName(name string) string {
	name = cases.Fold().String(norm.NFKC.String(name))
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Tokenize 영숫자(한글 포함) 연속 구간 중 2글자 이상만
func Tokenize(text string) []string {
	text = cases.Fold().String(norm.NFKC.String(text))
	tokens := make([]string, 0, 4)
	seen := make(map[string]struct{})
	var cur []rune
	flush := func() {
		if len(cur) >= 2 {
			tok := string(cur)
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				tokens = append(tokens, tok)
			}
		}
		cur = cur[:0]
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			cur = append(cur, r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}

// ContainsAny 키워드 중 하나라도 포함하는지
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// 결측 표기
var missingMarks = map[string]struct{}{
	"":    {},
	"-":   {},
	"–":   {},
	"—":   {},
	"…":   {},
	"...": {},
	"x":   {},
	"X":   {},
	"*":   {},
	"na":  {},
	"NA":  {},
	"N/A": {},
	"n/a": {},
	"nan": {},
	"NaN": {},
}

// IsMissing 결측 표기인지
func IsMissing(raw string) bool {
	_, ok := missingMarks[strings.TrimSpace(norm.NFKC.String(raw))]
	return ok
}

// ParseNumber 셀 값을 숫자로. "-" 등 결측 표기와 비숫자는 ok=false.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(norm.NFKC.String(raw))
	if _, missing := missingMarks[s]; missing {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseLevel 분류 단계 값. 비어 있으면 0.
func ParseLevel(raw string) int {
	v, ok := ParseNumber(raw)
	if !ok {
		return 0
	}
	return int(v)
}
