package excel

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrNoWorkbook 워크북이 로드되지 않음
	ErrNoWorkbook = errors.New("no workbook loaded")
	// ErrWorkbookUnreadable 워크북을 읽을 수 없음
	ErrWorkbookUnreadable = errors.New("workbook unreadable")
)

// Workbook 읽기 전용 스프레드시트 (행/열 1부터)
type Workbook interface {
	SheetNames() []string
	HasSheet(name string) bool
	// Rows 시트 전체 행 (빈 셀은 "")
	Rows(sheet string) ([][]string, error)
	// Cell 셀 값. 범위를 벗어나면 "".
	Cell(sheet string, row, col int) (string, error)
	// MergedRanges 병합 셀 범위. 값은 왼쪽 위 셀에만 있다.
	MergedRanges(sheet string) ([]CellRange, error)
}

// CellRange 병합 셀 범위 (양 끝 포함)
type CellRange struct {
	Top, Left     int
	Bottom, Right int
	Value         string
}

// File excelize 기반 Workbook. 시트 행은 처음 읽을 때 한 번만 읽어 둔다.
// 한 요청 안에서만 사용한다 (동시 접근 보호 없음).
type File struct {
	file   *excelize.File
	sheets []string
	rows   map[string][][]string
}

// OpenFile 경로에서 워크북 열기
func OpenFile(path string) (*File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookUnreadable, err)
	}
	return NewFile(f), nil
}

// OpenReader 업로드 스트림에서 워크북 열기
func OpenReader(reader io.Reader) (*File, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookUnreadable, err)
	}
	return NewFile(f), nil
}

// NewFile 이미 열린 excelize 파일 감싸기
func NewFile(f *excelize.File) *File {
	wb := &File{
		file: f,
		rows: make(map[string][][]string),
	}
	if f != nil {
		wb.sheets = f.GetSheetList()
	}
	return wb
}

// Close 파일 닫기
func (w *File) Close() error {
	if w == nil || w.file == nil {
		return nil
	}
	return w.file.Close()
}

// SheetNames 시트 이름 목록 (문서 순서)
func (w *File) SheetNames() []string {
	out := make([]string, len(w.sheets))
	copy(out, w.sheets)
	return out
}

// HasSheet 시트 존재 여부
func (w *File) HasSheet(name string) bool {
	for _, s := range w.sheets {
		if s == name {
			return true
		}
	}
	return false
}

// Rows 시트 행 읽기 (서식 없는 원시 값)
func (w *File) Rows(sheet string) ([][]string, error) {
	if w == nil || w.file == nil {
		return nil, ErrNoWorkbook
	}
	if rows, ok := w.rows[sheet]; ok {
		return rows, nil
	}
	if !w.HasSheet(sheet) {
		return nil, fmt.Errorf("sheet %s not found", sheet)
	}
	rows, err := w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	for i := range rows {
		for j := range rows[i] {
			rows[i][j] = strings.TrimSpace(rows[i][j])
		}
	}
	w.rows[sheet] = rows
	return rows, nil
}

// Cell 셀 값
func (w *File) Cell(sheet string, row, col int) (string, error) {
	rows, err := w.Rows(sheet)
	if err != nil {
		return "", err
	}
	return cellAt(rows, row, col), nil
}

// MergedRanges 시트의 병합 셀 목록
func (w *File) MergedRanges(sheet string) ([]CellRange, error) {
	if w == nil || w.file == nil {
		return nil, ErrNoWorkbook
	}
	merges, err := w.file.GetMergeCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read merged cells of %s: %w", sheet, err)
	}
	out := make([]CellRange, 0, len(merges))
	for _, m := range merges {
		top, left, err := ParseCellAddress(m.GetStartAxis())
		if err != nil {
			continue
		}
		bottom, right, err := ParseCellAddress(m.GetEndAxis())
		if err != nil {
			continue
		}
		out = append(out, CellRange{
			Top:    top,
			Left:   left,
			Bottom: bottom,
			Right:  right,
			Value:  strings.TrimSpace(m.GetCellValue()),
		})
	}
	return out, nil
}

func cellAt(rows [][]string, row, col int) string {
	if row < 1 || row > len(rows) {
		return ""
	}
	r := rows[row-1]
	if col < 1 || col > len(r) {
		return ""
	}
	return r[col-1]
}

// ParseCellAddress "E5" -> (row=5, col=5)
func ParseCellAddress(addr string) (row, col int, err error) {
	col, row, err = excelize.CellNameToCoordinates(strings.ToUpper(strings.TrimSpace(addr)))
	return row, col, err
}

// ColumnName 열 번호 -> "E"
func ColumnName(col int) string {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return ""
	}
	return name
}
