package parser

import (
	"fmt"
	"regexp"
	"strings"

	"regionreport/internal/model"
)

var (
	// markerRe {시트:키} / {시트:키:연산} / {시트:셀:셀[:연산]}
	markerRe = regexp.MustCompile(`\{([^:{}]+):([^:}]+)(?::([^}]+))?\}`)

	cellRefRe    = regexp.MustCompile(`^[A-Za-z]+[0-9]+$`)
	rangeTailRe  = regexp.MustCompile(`^([A-Za-z]+[0-9]+)(?::(.*))?$`)
	maskBlockRes = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style\s*>`),
		regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`),
	}
)

const maskFormat = "\x00MASK%d\x00"

// maskedText style/script 블록을 자리표시자로 바꾼 텍스트
type maskedText struct {
	text   string
	blocks []string
}

func mask(text string) maskedText {
	m := maskedText{text: text}
	for _, re := range maskBlockRes {
		m.text = re.ReplaceAllStringFunc(m.text, func(block string) string {
			m.blocks = append(m.blocks, block)
			return fmt.Sprintf(maskFormat, len(m.blocks)-1)
		})
	}
	return m
}

func (m maskedText) restore(text string) string {
	if len(m.blocks) == 0 {
		return text
	}
	// 나중에 가려진 블록이 먼저 가려진 블록을 포함할 수 있으므로 역순 복원
	for i := len(m.blocks) - 1; i >= 0; i-- {
		text = strings.Replace(text, fmt.Sprintf(maskFormat, i), m.blocks[i], 1)
	}
	return text
}

// IsCellReference 셀 주소 형식(A1) 여부
func IsCellReference(key string) bool {
	return cellRefRe.MatchString(strings.TrimSpace(key))
}

// ParseMarker 단일 토큰 파싱
func ParseMarker(token string) (model.Marker, bool) {
	m := markerRe.FindStringSubmatch(token)
	if len(m) < 4 || m[0] != token {
		return model.Marker{}, false
	}
	return buildMarker(m), true
}

func buildMarker(m []string) model.Marker {
	marker := model.Marker{
		Raw:   m[0],
		Sheet: strings.TrimSpace(m[1]),
		Key:   strings.TrimSpace(m[2]),
		Kind:  model.MarkerSemantic,
	}
	tail := strings.TrimSpace(m[3])

	if IsCellReference(marker.Key) {
		marker.Kind = model.MarkerLiteral
		marker.Key = strings.ToUpper(marker.Key)
		if tail != "" {
			if rt := rangeTailRe.FindStringSubmatch(tail); rt != nil {
				marker.RangeEnd = strings.ToUpper(rt[1])
				tail = strings.TrimSpace(rt[2])
			}
		}
	}
	marker.Operation = strings.TrimSpace(tail)
	return marker
}

// ExtractMarkers 템플릿에서 마커 추출 (등장 순서, 동일 토큰은 한 번)
// style/script 블록 안의 토큰은 제외한다.
func ExtractMarkers(templateText string) []model.Marker {
	masked := mask(templateText)
	matches := markerRe.FindAllStringSubmatch(masked.text, -1)

	markers := make([]model.Marker, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[0]]; ok {
			continue
		}
		seen[m[0]] = struct{}{}
		markers = append(markers, buildMarker(m))
	}
	return markers
}

// Substitute 마커 토큰을 값으로 치환 (모든 등장 위치)
func Substitute(templateText string, marker model.Marker, value string) string {
	if marker.Raw == "" {
		return templateText
	}
	masked := mask(templateText)
	return masked.restore(strings.ReplaceAll(masked.text, marker.Raw, value))
}

// SubstituteAll 값 맵에 있는 토큰을 한 번에 치환. 맵에 없는 토큰은 그대로 둔다.
func SubstituteAll(templateText string, values map[string]string) string {
	if len(values) == 0 {
		return templateText
	}
	masked := mask(templateText)
	out := markerRe.ReplaceAllStringFunc(masked.text, func(token string) string {
		if v, ok := values[token]; ok {
			return v
		}
		return token
	})
	return masked.restore(out)
}
