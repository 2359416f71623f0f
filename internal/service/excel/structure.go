package excel

import (
	"fmt"
	"strings"

	"regionreport/internal/model"
	"regionreport/internal/parser"
)

// 열 탐지 키워드 (정규화 후 포함 비교)
var (
	regionKeywords   = []string{"시도", "지역", "region", "area"}
	codeKeywords     = []string{"코드", "code"}
	levelKeywords    = []string{"분류단계", "단계", "level", "depth"}
	weightKeywords   = []string{"가중치", "weight"}
	categoryKeywords = []string{"산업", "업태", "품목", "업종", "분류", "항목", "공종", "category", "industry", "item"}
)

// 지역 열 탐지 실패 시 고정 기본값 (A=코드, B=지역이름 배치)
const defaultRegionColumn = 2

// 지역 이름 탐지용 표본
var knownRegions = []string{"전국", "서울", "부산", "대구", "인천", "광주", "대전", "울산", "세종", "경기", "강원", "충북", "충남", "전북", "전남", "경북", "경남", "제주"}

// Structure 시트 구조 (시트별 한 번 계산)
func (r *Resolver) Structure(sheet string) (*model.SheetStructure, error) {
	if st, ok := r.structures[sheet]; ok {
		return st, nil
	}
	if r.wb == nil {
		return nil, ErrNoWorkbook
	}
	rows, err := r.wb.Rows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheet)
	}

	schema := r.Schema(sheet)
	st := &model.SheetStructure{
		Sheet:         sheet,
		LastRow:       len(rows),
		PeriodColumns: make(map[model.Period]int),
		Preliminary:   make(map[model.Period]bool),
	}
	for _, row := range rows {
		if len(row) > st.LastColumn {
			st.LastColumn = len(row)
		}
	}

	st.HeaderRow = r.detectHeaderRow(rows, schema)
	st.FirstDataRow = st.HeaderRow + 1

	headerRows := r.opts.HeaderRows
	if schema != nil && schema.HeaderRows > 0 {
		headerRows = schema.HeaderRows
	}
	merges, err := r.wb.MergedRanges(sheet)
	if err != nil {
		r.logger.Debug().Str("sheet", sheet).Err(err).Msg("merged cells unavailable")
	}
	st.Labels = buildLabels(rows, merges, st.HeaderRow, headerRows, st.LastColumn)

	// 분기 열: 헤더 행 셀 우선, 없으면 이어붙인 라벨
	for col := 1; col <= st.LastColumn; col++ {
		p, prelim, ok := parser.ParsePeriod(cellAt(rows, st.HeaderRow, col))
		if !ok {
			p, prelim, ok = parser.ParsePeriod(st.Labels[col-1])
		}
		if !ok {
			continue
		}
		if _, dup := st.PeriodColumns[p]; dup {
			continue
		}
		st.PeriodColumns[p] = col
		if prelim {
			st.Preliminary[p] = true
		}
	}

	periodCols := make(map[int]bool, len(st.PeriodColumns))
	for _, c := range st.PeriodColumns {
		periodCols[c] = true
	}
	taken := func(col int) bool {
		return col <= 0 || periodCols[col] ||
			col == st.RegionColumn || col == st.CodeColumn || col == st.LevelColumn ||
			col == st.CategoryColumn || col == st.WeightColumn
	}
	pick := func(configured int, header string, keywords []string, exclude []string) int {
		if configured > 0 {
			return configured
		}
		if header != "" {
			if m, ok := matchName(header, st.Labels, r.opts.ColumnThreshold); ok && !taken(m.Index+1) {
				return m.Index + 1
			}
		}
		return findLabelColumn(st.Labels, keywords, exclude, taken)
	}

	var sc model.SheetSchema
	if schema != nil {
		sc = *schema
	}

	st.CodeColumn = pick(sc.CodeColumn, "", codeKeywords, nil)
	st.LevelColumn = pick(sc.LevelColumn, "", levelKeywords, nil)
	st.RegionColumn = pick(sc.RegionColumn, sc.RegionHeader, regionKeywords, []string{"코드", "code"})
	if st.RegionColumn == 0 {
		st.RegionColumn = findRegionByValues(rows, st.FirstDataRow, st.LastColumn, taken)
	}
	if st.RegionColumn == 0 {
		st.RegionColumn = defaultRegionColumn
		if st.LastColumn < defaultRegionColumn {
			st.RegionColumn = 1
		}
	}
	st.WeightColumn = pick(sc.WeightColumn, sc.WeightHeader, weightKeywords, nil)
	st.CategoryColumn = pick(sc.CategoryColumn, sc.CategoryHeader, categoryKeywords, []string{"단계", "코드", "code", "가중치"})

	r.logger.Debug().
		Str("sheet", sheet).
		Int("header_row", st.HeaderRow).
		Int("region_column", st.RegionColumn).
		Int("category_column", st.CategoryColumn).
		Int("level_column", st.LevelColumn).
		Int("weight_column", st.WeightColumn).
		Int("periods", len(st.PeriodColumns)).
		Msg("sheet structure detected")

	r.structures[sheet] = st
	return st, nil
}

// detectHeaderRow 분기 표기가 가장 많은 행. 없으면 지역 키워드가 있는 행, 그래도 없으면 1행.
func (r *Resolver) detectHeaderRow(rows [][]string, schema *model.SheetSchema) int {
	if schema != nil && schema.HeaderRow > 0 {
		return schema.HeaderRow
	}
	limit := r.opts.HeaderScanRows
	if limit > len(rows) {
		limit = len(rows)
	}

	bestRow, bestHits := 0, 0
	for i := 0; i < limit; i++ {
		hits := 0
		for _, cell := range rows[i] {
			if _, _, ok := parser.ParsePeriod(cell); ok {
				hits++
			}
		}
		if hits > bestHits {
			bestRow, bestHits = i+1, hits
		}
	}
	if bestRow > 0 {
		return bestRow
	}

	for i := 0; i < limit; i++ {
		for _, cell := range rows[i] {
			if parser.ContainsAny(parser.NormalizeName(cell), regionKeywords) {
				return i + 1
			}
		}
	}
	return 1
}

// buildLabels 헤더 행 위쪽 최대 n 개 행을 열별로 이어붙인다. 병합 셀 값은 덮인 열 전체에 채우고
// 반복된 값은 한 번만 쓴다.
func buildLabels(rows [][]string, merges []CellRange, headerRow, n, lastColumn int) []string {
	first := headerRow - n + 1
	if first < 1 {
		first = 1
	}
	header := make([][]string, headerRow-first+1)
	for i := range header {
		header[i] = make([]string, lastColumn)
		for col := 1; col <= lastColumn; col++ {
			header[i][col-1] = cellAt(rows, first+i, col)
		}
	}
	for _, m := range merges {
		// 1열부터 가로로 병합된 셀은 표 제목
		if m.Value == "" || (m.Left == 1 && m.Right > 1) {
			continue
		}
		for row := max(m.Top, first); row <= min(m.Bottom, headerRow); row++ {
			for col := max(m.Left, 1); col <= min(m.Right, lastColumn); col++ {
				header[row-first][col-1] = m.Value
			}
		}
	}

	labels := make([]string, lastColumn)
	for col := 1; col <= lastColumn; col++ {
		parts := make([]string, 0, n)
		for _, line := range header {
			v := parser.NormalizeColumnName(line[col-1])
			if v == "" {
				continue
			}
			if len(parts) > 0 && parts[len(parts)-1] == v {
				continue
			}
			parts = append(parts, v)
		}
		labels[col-1] = strings.Join(parts, " ")
	}
	return labels
}

func findLabelColumn(labels []string, keywords, exclude []string, taken func(int) bool) int {
	// 키워드 순서가 우선순위
	for _, kw := range keywords {
		for i, label := range labels {
			col := i + 1
			if taken(col) {
				continue
			}
			norm := parser.NormalizeName(label)
			if norm == "" || !strings.Contains(norm, kw) {
				continue
			}
			if len(exclude) > 0 && parser.ContainsAny(norm, exclude) {
				continue
			}
			return col
		}
	}
	return 0
}

// findRegionByValues 데이터 행에 알려진 지역 이름이 가장 많이 나오는 열
func findRegionByValues(rows [][]string, firstDataRow, lastColumn int, taken func(int) bool) int {
	bestCol, bestHits := 0, 0
	for col := 1; col <= lastColumn; col++ {
		if taken(col) {
			continue
		}
		hits := 0
		for row := firstDataRow; row <= len(rows); row++ {
			v := parser.NormalizeName(cellAt(rows, row, col))
			if v == "" {
				continue
			}
			for _, reg := range knownRegions {
				if strings.HasPrefix(v, reg) {
					hits++
					break
				}
			}
		}
		if hits > bestHits {
			bestCol, bestHits = col, hits
		}
	}
	return bestCol
}
