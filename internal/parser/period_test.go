package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"regionreport/internal/model"
)

func TestParsePeriod_Variants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text    string
		year    int
		quarter int
		prelim  bool
	}{
		{"2025 2/4", 2025, 2, false},
		{"2025 2/4p", 2025, 2, true},
		{"2025 2/4(p)", 2025, 2, true},
		{"2025.2/4", 2025, 2, false},
		{"2025. 3/4", 2025, 3, false},
		{"2025년 2/4분기", 2025, 2, false},
		{"2025년 1분기", 2025, 1, false},
		{"25년 4분기", 2025, 4, false},
		{"'24 3/4", 2024, 3, false},
		{"24 3/4p", 2024, 3, true},
		{"2025.Q2", 2025, 2, false},
		{"2025 Q3", 2025, 3, false},
		{"2025Q4p", 2025, 4, true},
		{"2025-Q1", 2025, 1, false},
		{"Q2 2024", 2024, 2, false},
		{"광공업생산지수 2023 4/4", 2023, 4, false},
		{"２０２５　２／４", 2025, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			p, prelim, ok := ParsePeriod(tt.text)
			assert.True(t, ok)
			assert.Equal(t, model.Period{Year: tt.year, Quarter: tt.quarter}, p)
			assert.Equal(t, tt.prelim, prelim)
		})
	}
}

func TestParsePeriod_Rejects(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "지역", "2025", "2025 5/4", "가중치", "12345 1/4", "2025년 12월"} {
		_, _, ok := ParsePeriod(text)
		assert.False(t, ok, text)
	}
}

func TestFormatPeriodLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2025 2/4p", FormatPeriodLabel(model.Period{Year: 2025, Quarter: 2}, true))
	assert.Equal(t, "2024 4/4", FormatPeriodLabel(model.Period{Year: 2024, Quarter: 4}, false))
}
