package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"regionreport/internal/model"
)

// ErrNotFound 조회 대상 없음
var ErrNotFound = errors.New("not found")

// SaveTemplate 이름 기준 upsert. 새 템플릿이면 ID 를 발급한다.
func (s *Store) SaveTemplate(t *model.Template) error {
	if t.Name == "" {
		return fmt.Errorf("template name is required")
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	_, err := s.db.Exec(`
		INSERT INTO templates (id, name, description, body)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			description = excluded.description,
			body = excluded.body,
			updated_at = CURRENT_TIMESTAMP
	`, t.ID, t.Name, t.Description, t.Body)
	if err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}

	saved, err := s.GetTemplate(t.Name)
	if err != nil {
		return err
	}
	*t = *saved
	return nil
}

// GetTemplate 이름으로 조회
func (s *Store) GetTemplate(name string) (*model.Template, error) {
	t := &model.Template{}
	err := s.db.QueryRow(`
		SELECT id, name, description, body, created_at, updated_at
		FROM templates WHERE name = ?
	`, name).Scan(&t.ID, &t.Name, &t.Description, &t.Body, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("template %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return t, nil
}

// ListTemplates 이름순 목록 (본문 제외)
func (s *Store) ListTemplates() ([]model.Template, error) {
	rows, err := s.db.Query(`
		SELECT id, name, description, created_at, updated_at
		FROM templates ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var list []model.Template
	for rows.Next() {
		var t model.Template
		var created, updated time.Time
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &created, &updated); err != nil {
			return nil, err
		}
		t.CreatedAt, t.UpdatedAt = created, updated
		list = append(list, t)
	}
	return list, rows.Err()
}

// DeleteTemplate 이름으로 삭제
func (s *Store) DeleteTemplate(name string) error {
	res, err := s.db.Exec("DELETE FROM templates WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("template %s: %w", name, ErrNotFound)
	}
	return nil
}
