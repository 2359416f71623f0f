package store

import (
	"fmt"

	"regionreport/internal/model"
)

// CreateFillLog 채우기 이력 기록
func (s *Store) CreateFillLog(templateName, workbookName string, report *model.FillReport) error {
	if report == nil {
		return fmt.Errorf("fill report is nil")
	}
	_, err := s.db.Exec(`
		INSERT INTO fill_logs (id, template, workbook, markers, failures, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`, report.ID, templateName, workbookName, len(report.Values), len(report.Failures), report.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to create fill log: %w", err)
	}
	return nil
}

// ListFillLogs 최근 이력 (limit <= 0 이면 50건)
func (s *Store) ListFillLogs(limit int) ([]model.FillLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, template, workbook, markers, failures, duration_ms, created_at
		FROM fill_logs ORDER BY created_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list fill logs: %w", err)
	}
	defer rows.Close()

	var logs []model.FillLog
	for rows.Next() {
		var l model.FillLog
		if err := rows.Scan(&l.ID, &l.Template, &l.Workbook, &l.Markers, &l.Failures, &l.DurationMs, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
