package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

// schemaVersion schema.sql 의 판. 테이블이 바뀌면 올리고 migrate 에 단계를 추가한다.
// 파일에는 PRAGMA user_version 으로 기록된다.
const schemaVersion = 1

// ErrSchemaTooNew 이 빌드보다 새 판으로 만들어진 데이터 파일
var ErrSchemaTooNew = errors.New("database schema is newer than this build")

// Store 템플릿, 시트 스키마, 채우기 이력을 담는 SQLite 파일
type Store struct {
	db      *sql.DB
	version int
}

// New 데이터 파일 열기. 없으면 만들고 현재 판까지 올린다.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// 잠금 대기 5초
	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// migrate 기록된 판을 읽고 schema.sql 적용
func (s *Store) migrate() error {
	var current int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > schemaVersion {
		return fmt.Errorf("%w: file v%d, build v%d", ErrSchemaTooNew, current, schemaVersion)
	}

	// 모든 문장이 IF NOT EXISTS
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := s.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to apply schema v%d: %w", schemaVersion, err)
	}

	if current < schemaVersion {
		// PRAGMA 는 바인딩 인자를 받지 않는다
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
	}
	s.version = schemaVersion
	return nil
}

// SchemaVersion 열린 파일의 스키마 판
func (s *Store) SchemaVersion() int {
	return s.version
}

// Close 연결 닫기
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
