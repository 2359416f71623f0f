package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"regionreport/internal/model"
)

// SaveSheetSchema 시트 스키마 덮어쓰기 저장
func (s *Store) SaveSheetSchema(schema model.SheetSchema) error {
	set := &model.SchemaSet{Sheets: []model.SheetSchema{schema}}
	if err := set.Validate(); err != nil {
		return err
	}
	body, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("failed to encode sheet schema: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO sheet_schemas (sheet, schema_json) VALUES (?, ?)
		ON CONFLICT(sheet) DO UPDATE SET schema_json = excluded.schema_json, updated_at = CURRENT_TIMESTAMP
	`, schema.Name, string(body))
	if err != nil {
		return fmt.Errorf("failed to save sheet schema: %w", err)
	}
	return nil
}

// GetSheetSchema 시트 이름으로 조회
func (s *Store) GetSheetSchema(sheet string) (*model.SheetSchema, error) {
	var body string
	err := s.db.QueryRow("SELECT schema_json FROM sheet_schemas WHERE sheet = ?", sheet).Scan(&body)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("sheet schema %s: %w", sheet, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get sheet schema: %w", err)
	}
	schema := &model.SheetSchema{}
	if err := json.Unmarshal([]byte(body), schema); err != nil {
		return nil, fmt.Errorf("failed to decode sheet schema %s: %w", sheet, err)
	}
	return schema, nil
}

// ListSheetSchemas 저장된 스키마 전체 (시트 이름순)
func (s *Store) ListSheetSchemas() ([]model.SheetSchema, error) {
	rows, err := s.db.Query("SELECT sheet, schema_json FROM sheet_schemas ORDER BY sheet")
	if err != nil {
		return nil, fmt.Errorf("failed to list sheet schemas: %w", err)
	}
	defer rows.Close()

	var list []model.SheetSchema
	for rows.Next() {
		var sheet, body string
		if err := rows.Scan(&sheet, &body); err != nil {
			return nil, err
		}
		var schema model.SheetSchema
		if err := json.Unmarshal([]byte(body), &schema); err != nil {
			return nil, fmt.Errorf("failed to decode sheet schema %s: %w", sheet, err)
		}
		list = append(list, schema)
	}
	return list, rows.Err()
}

// DeleteSheetSchema 덮어쓰기 제거
func (s *Store) DeleteSheetSchema(sheet string) error {
	res, err := s.db.Exec("DELETE FROM sheet_schemas WHERE sheet = ?", sheet)
	if err != nil {
		return fmt.Errorf("failed to delete sheet schema: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("sheet schema %s: %w", sheet, ErrNotFound)
	}
	return nil
}

// MergedSchemas 파일 스키마 위에 저장된 덮어쓰기를 얹은 새 스키마 모음. base 는 바꾸지 않는다.
func (s *Store) MergedSchemas(base *model.SchemaSet) (*model.SchemaSet, error) {
	merged := &model.SchemaSet{}
	if base != nil {
		merged.Sheets = append(merged.Sheets, base.Sheets...)
	}
	overrides, err := s.ListSheetSchemas()
	if err != nil {
		return nil, err
	}
	for _, o := range overrides {
		merged.Put(o)
	}
	return merged, nil
}
