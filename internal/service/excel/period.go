package excel

import (
	"fmt"
	"sort"

	"regionreport/internal/model"
	"regionreport/internal/parser"
)

// QuarterColumn (연도, 분기)의 열 번호. 헤더 스캔 우선, 없으면 기준 열 공식.
func (r *Resolver) QuarterColumn(sheet string, year, quarter int) (int, bool) {
	p := model.Period{Year: year, Quarter: quarter}
	if !p.Valid() {
		return 0, false
	}
	st, err := r.Structure(sheet)
	if err != nil {
		return 0, false
	}
	if col, ok := st.HeaderColumn(p); ok {
		return col, true
	}
	return r.formulaColumn(sheet, p)
}

// formulaColumn base_column + (year-base_year)*4 + (quarter-base_quarter)
func (r *Resolver) formulaColumn(sheet string, p model.Period) (int, bool) {
	schema := r.Schema(sheet)
	if !schema.HasBasePeriod() {
		return 0, false
	}
	col := schema.BaseColumn + (p.Year-schema.BaseYear)*4 + (p.Quarter - schema.BaseQuarter)
	if col < 1 {
		return 0, false
	}
	return col, true
}

// PriorColumn 전년 동분기 열
func (r *Resolver) PriorColumn(sheet string, year, quarter int) (int, bool) {
	p := model.Period{Year: year, Quarter: quarter}
	if !p.Valid() {
		return 0, false
	}
	st, err := r.Structure(sheet)
	if err != nil {
		return 0, false
	}
	if _, ok := st.HeaderColumn(p); ok {
		if col, ok := st.HeaderColumn(p.PriorYear()); ok {
			return col, true
		}
		return r.formulaColumn(sheet, p.PriorYear())
	}
	cur, ok := r.formulaColumn(sheet, p)
	if !ok || cur-4 < 1 {
		return 0, false
	}
	return cur - 4, true
}

// ColumnPair 현재/전년 동분기 열
func (r *Resolver) ColumnPair(sheet string, p model.Period) (current, prior int, ok bool) {
	current, ok = r.QuarterColumn(sheet, p.Year, p.Quarter)
	if !ok {
		return 0, 0, false
	}
	prior, ok = r.PriorColumn(sheet, p.Year, p.Quarter)
	if !ok {
		return 0, 0, false
	}
	return current, prior, true
}

// DetectAvailablePeriods 시트에서 사용 가능한 기간
func (r *Resolver) DetectAvailablePeriods(sheet string) model.PeriodRange {
	if pr, ok := r.periods[sheet]; ok {
		return pr
	}
	pr := model.PeriodRange{Preliminary: make(map[model.Period]bool)}
	st, err := r.Structure(sheet)
	if err != nil {
		r.periods[sheet] = pr
		return pr
	}

	// 헤더만 있고 값이 없는 (예정) 분기 열은 제외
	for p, col := range st.PeriodColumns {
		if !r.columnHasData(sheet, st, col) {
			continue
		}
		pr.Available = append(pr.Available, p)
		if st.Preliminary[p] {
			pr.Preliminary[p] = true
		}
	}

	if len(pr.Available) == 0 {
		if schema := r.Schema(sheet); schema.HasBasePeriod() {
			base := model.Period{Year: schema.BaseYear, Quarter: schema.BaseQuarter}
			for col := schema.BaseColumn; col <= st.LastColumn; col++ {
				if r.columnHasData(sheet, st, col) {
					pr.Available = append(pr.Available, base.Add(col-schema.BaseColumn))
				}
			}
		}
	}

	sort.Slice(pr.Available, func(i, j int) bool {
		return pr.Available[i].Before(pr.Available[j])
	})
	if n := len(pr.Available); n > 0 {
		pr.Min = pr.Available[0]
		pr.Max = pr.Available[n-1]
		pr.Default = pr.Max
	}
	r.periods[sheet] = pr
	return pr
}

func (r *Resolver) columnHasData(sheet string, st *model.SheetStructure, col int) bool {
	rows, err := r.wb.Rows(sheet)
	if err != nil {
		return false
	}
	for row := st.FirstDataRow; row <= len(rows); row++ {
		if _, ok := parser.ParseNumber(cellAt(rows, row, col)); ok {
			return true
		}
	}
	return false
}

// ValidatePeriod 요청 기간 검증. 실패 시 사람이 읽을 수 있는 사유.
func (r *Resolver) ValidatePeriod(sheet string, year, quarter int) model.PeriodCheck {
	if quarter < 1 || quarter > 4 {
		return model.PeriodCheck{Reason: fmt.Sprintf("분기는 1~4 사이여야 합니다 (요청: %d분기)", quarter)}
	}
	pr := r.DetectAvailablePeriods(sheet)
	if pr.Empty() {
		return model.PeriodCheck{Reason: fmt.Sprintf("%s 시트에서 사용 가능한 기간을 찾을 수 없습니다", sheet)}
	}
	if year < pr.Min.Year || year > pr.Max.Year {
		return model.PeriodCheck{Reason: fmt.Sprintf("%d년은 %s 시트의 데이터 범위(%d년~%d년)를 벗어났습니다",
			year, sheet, pr.Min.Year, pr.Max.Year)}
	}
	p := model.Period{Year: year, Quarter: quarter}
	if !pr.Contains(p) {
		return model.PeriodCheck{Reason: fmt.Sprintf("%s 데이터가 없습니다. %s 시트는 %s부터 %s까지 제공됩니다",
			p, sheet, pr.Min, pr.Max)}
	}
	return model.PeriodCheck{OK: true}
}

// ResolvePeriod 요청 기간이 비어 있으면 시트 기본(최신) 기간
func (r *Resolver) ResolvePeriod(sheet string, requested model.Period) (model.Period, model.PeriodCheck) {
	if requested.IsZero() {
		pr := r.DetectAvailablePeriods(sheet)
		if pr.Empty() {
			return model.Period{}, model.PeriodCheck{Reason: fmt.Sprintf("%s 시트에서 사용 가능한 기간을 찾을 수 없습니다", sheet)}
		}
		return pr.Default, model.PeriodCheck{OK: true}
	}
	return requested, r.ValidatePeriod(sheet, requested.Year, requested.Quarter)
}
