package store

import (
	"database/sql"
	"fmt"
	"strconv"

	"regionreport/internal/model"
)

const (
	keyDefaultYear    = "default_year"
	keyDefaultQuarter = "default_quarter"
)

// GetConfig 설정값 조회
func (s *Store) GetConfig(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("config key %s: %w", key, ErrNotFound)
		}
		return "", err
	}
	return value, nil
}

// GetConfigInt 정수 설정값
func (s *Store) GetConfigInt(key string) (int, error) {
	value, err := s.GetConfig(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

// SetConfig 설정값 저장
func (s *Store) SetConfig(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
	`, key, value, value)
	return err
}

// GetAllConfig 전체 설정값
func (s *Store) GetAllConfig() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM config")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	config := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		config[key] = value
	}
	return config, rows.Err()
}

// GetDefaultPeriod 요청에 기간이 없을 때 쓸 기간. 저장된 값이 없으면 영 값.
func (s *Store) GetDefaultPeriod() (model.Period, error) {
	year, err := s.GetConfigInt(keyDefaultYear)
	if err != nil {
		return model.Period{}, fmt.Errorf("failed to get %s: %w", keyDefaultYear, err)
	}
	quarter, err := s.GetConfigInt(keyDefaultQuarter)
	if err != nil {
		return model.Period{}, fmt.Errorf("failed to get %s: %w", keyDefaultQuarter, err)
	}
	return model.Period{Year: year, Quarter: quarter}, nil
}

// SetDefaultPeriod 기본 기간 저장
func (s *Store) SetDefaultPeriod(p model.Period) error {
	if !p.Valid() {
		return fmt.Errorf("invalid period: %s", p)
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for key, v := range map[string]int{keyDefaultYear: p.Year, keyDefaultQuarter: p.Quarter} {
		if _, err := tx.Exec(`
			INSERT INTO config (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
		`, key, strconv.Itoa(v)); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}
	return tx.Commit()
}
