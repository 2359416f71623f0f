// Package testutil 테스트용 워크북 픽스처
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Sheet 시트 이름 + 행 (1행부터). Merges 는 "B1:E1" 형태 병합 범위.
type Sheet struct {
	Name   string
	Rows   [][]interface{}
	Merges []string
}

// BuildWorkbook 메모리 워크북 생성 (시트 순서 유지)
func BuildWorkbook(t *testing.T, sheets ...Sheet) *excelize.File {
	t.Helper()

	wb := excelize.NewFile()
	defaultSheet := wb.GetSheetName(wb.GetActiveSheetIndex())

	keepDefault := false
	for _, s := range sheets {
		if s.Name == defaultSheet {
			keepDefault = true
		} else if _, err := wb.NewSheet(s.Name); err != nil {
			t.Fatalf("NewSheet %s failed: %v", s.Name, err)
		}
		for i, row := range s.Rows {
			r := row
			cell := fmt.Sprintf("A%d", i+1)
			if err := wb.SetSheetRow(s.Name, cell, &r); err != nil {
				t.Fatalf("SetSheetRow %s!%s failed: %v", s.Name, cell, err)
			}
		}
		for _, m := range s.Merges {
			from, to, _ := strings.Cut(m, ":")
			if err := wb.MergeCell(s.Name, from, to); err != nil {
				t.Fatalf("MergeCell %s!%s failed: %v", s.Name, m, err)
			}
		}
	}
	if !keepDefault && len(sheets) > 0 {
		if err := wb.DeleteSheet(defaultSheet); err != nil {
			t.Fatalf("DeleteSheet %s failed: %v", defaultSheet, err)
		}
	}
	t.Cleanup(func() { _ = wb.Close() })
	return wb
}

// WorkbookBytes xlsx 바이트 (업로드 테스트용)
func WorkbookBytes(t *testing.T, sheets ...Sheet) []byte {
	t.Helper()

	buf, err := BuildWorkbook(t, sheets...).WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf.Bytes()
}

// IndustryHeader 지역별 산업 시트 헤더 (F~K 열이 2024 1/4 ~ 2025 2/4p)
func IndustryHeader() []interface{} {
	return []interface{}{"지역코드", "지역이름", "분류단계", "가중치", "산업이름",
		"2024 1/4", "2024 2/4", "2024 3/4", "2024 4/4", "2025 1/4", "2025 2/4p"}
}

// IndustryRows 광공업생산 형태의 시트
//
//	전국 5.2, 서울 10, 대구 10(서울과 동률), 경기 3, 부산 -5, 인천(전년 "-") 제외, 수도권(그룹 코드) 제외
func IndustryRows() [][]interface{} {
	return [][]interface{}{
		{"광공업생산지수 (2020=100)"},
		IndustryHeader(),
		{"00", "전국", 0, 1000, "총지수", 98.0, 100.0, 101.0, 102.0, 103.0, 105.2},
		{"00", "전국", 1, 300, "반도체", 90.0, 100.0, 105.0, 110.0, 115.0, 120.0},
		{"00", "전국", 1, 200, "자동차", 100.0, 100.0, 99.0, 98.0, 97.0, 95.0},
		{"00", "전국", 2, 50, "전자부품", 100.0, 100.0, 102.0, 104.0, 106.0, 110.0},
		{"00", "전국", 1, 100, "식료품", 100.0, 100.0, 100.0, 100.0, 100.0, 101.0},
		{"11", "서울", 0, "", "총지수", 95.0, 100.0, 102.0, 104.0, 106.0, 110.0},
		{"11", "서울", 1, "", "반도체", 45.0, 50.0, 52.0, 55.0, 58.0, 60.0},
		{"11", "서울", 1, "", "자동차", 80.0, 80.0, 78.0, 76.0, 74.0, 72.0},
		{"21", "부산", 0, "", "총지수", 210.0, 200.0, 198.0, 195.0, 192.0, 190.0},
		{"21", "부산", 1, "", "자동차", 110.0, 100.0, 98.0, 96.0, 93.0, 90.0},
		{"22", "대구", 0, "", "총지수", 100.0, 100.0, 102.0, 104.0, 106.0, 110.0},
		{"23", "인천", 0, "", "총지수", 100.0, "-", 102.0, 104.0, 106.0, 110.0},
		{"A1", "수도권", 0, "", "총지수", 100.0, 100.0, 100.0, 100.0, 100.0, 150.0},
		{"31", "경기", 0, "", "총지수", 100.0, 100.0, 100.0, 101.0, 102.0, 103.0},
	}
}

// LaborRows 고용률 형태의 시트 (분류 열 없음, 단위 %)
//
//	전국 62.0 -> 62.5 (+0.5%p), 서울 60.0 -> 61.2, 부산 58.0 -> 57.4
func LaborRows() [][]interface{} {
	return [][]interface{}{
		{"시도", "2024 1/4", "2024 2/4", "2025 1/4", "2025 2/4"},
		{"전국", 61.5, 62.0, 62.1, 62.5},
		{"서울", 59.8, 60.0, 60.5, 61.2},
		{"부산", 58.5, 58.0, 57.9, 57.4},
	}
}
