package model

import "time"

// Template 저장된 보고서 템플릿
type Template struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Body        string    `json:"body" validate:"required"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FillLog 채우기 이력
type FillLog struct {
	ID         string    `json:"id"`
	Template   string    `json:"template"`
	Workbook   string    `json:"workbook"`
	Markers    int       `json:"markers"`
	Failures   int       `json:"failures"`
	DurationMs int64     `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}
