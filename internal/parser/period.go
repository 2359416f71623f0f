package parser

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"regionreport/internal/model"
)

// 분기 표기 패턴. 앞뒤 숫자에 붙은 경우는 제외한다.
//
//	"2025 2/4", "2025 2/4p", "2025.2/4", "2025년 2/4분기", "'25 2/4"
//	"2025년 2분기", "25년 2분기"
//	"2025.Q2", "2025 Q2", "2025Q2", "2025-Q2"
//	"Q2 2025"
var (
	fractionQuarterRe = regexp.MustCompile(`(?:^|[^\d])'?(\d{4}|\d{2})\s*(?:년|[.\-/])?\s*([1-4])\s*/\s*4\s*(?:분기)?\s*(\(p\)|p|P|잠정)?`)
	koreanQuarterRe   = regexp.MustCompile(`(?:^|[^\d])'?(\d{4}|\d{2})\s*년\s*([1-4])\s*분기\s*(\(p\)|p|P|잠정)?`)
	qQuarterRe        = regexp.MustCompile(`(?:^|[^\d])'?(\d{4}|\d{2})\s*[.\-]?\s*[Qq]\s*([1-4])\s*(\(p\)|p|P|잠정)?(?:[^\d]|$)`)
	qLeadingRe        = regexp.MustCompile(`(?:^|[^\w])[Qq]([1-4])\s*[.\-]?\s*(\d{4})\s*(\(p\)|p|P|잠정)?(?:[^\d]|$)`)
)

// ParsePeriod 분기 표기를 (연도, 분기)로 변환. preliminary 는 잠정치(p) 표시.
func ParsePeriod(text string) (period model.Period, preliminary bool, ok bool) {
	text = strings.TrimSpace(norm.NFKC.String(text))
	if text == "" {
		return model.Period{}, false, false
	}

	for _, re := range []*regexp.Regexp{koreanQuarterRe, fractionQuarterRe, qQuarterRe} {
		if m := re.FindStringSubmatch(text); len(m) >= 4 {
			year := expandYear(m[1])
			quarter, _ := strconv.Atoi(m[2])
			return model.Period{Year: year, Quarter: quarter}, m[3] != "", true
		}
	}

	if m := qLeadingRe.FindStringSubmatch(text); len(m) >= 4 {
		quarter, _ := strconv.Atoi(m[1])
		year := expandYear(m[2])
		return model.Period{Year: year, Quarter: quarter}, m[3] != "", true
	}

	return model.Period{}, false, false
}

// FormatPeriodLabel 차트 라벨 "2025 2/4" (잠정치면 "p")
func FormatPeriodLabel(p model.Period, preliminary bool) string {
	label := p.Label()
	if preliminary {
		label += "p"
	}
	return label
}

func expandYear(s string) int {
	y, _ := strconv.Atoi(s)
	if len(s) == 2 {
		y += 2000
	}
	return y
}
