package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"

	"regionreport/internal/model"
)

// 환경 변수
const (
	EnvPort       = "REPORTGEN_PORT"
	EnvDataDir    = "REPORTGEN_DATA_DIR"
	EnvSchemaPath = "REPORTGEN_SCHEMA_PATH"
	EnvLogLevel   = "REPORTGEN_LOG_LEVEL"
)

// AppConfig 애플리케이션 설정
type AppConfig struct {
	Server  ServerConfig  `toml:"server"`
	Data    DataConfig    `toml:"data"`
	Engine  EngineConfig  `toml:"engine"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig 서버 설정
type ServerConfig struct {
	Port    int  `toml:"port" validate:"gte=1,lte=65535"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 데이터 설정
type DataConfig struct {
	DataDir string `toml:"data_dir" validate:"required"`
}

// EngineConfig 마커 해석/순위 설정
type EngineConfig struct {
	MissingValue    string  `toml:"missing_value" validate:"required"`
	TopN            int     `toml:"top_n" validate:"gte=1"`
	BottomN         int     `toml:"bottom_n" validate:"gte=1"`
	CategoryTopN    int     `toml:"category_top_n" validate:"gte=1"`
	HeaderRows      int     `toml:"header_rows" validate:"gte=1,lte=10"`
	HeaderScanRows  int     `toml:"header_scan_rows" validate:"gte=1"`
	Decimals        int     `toml:"decimals" validate:"gte=0,lte=4"`
	SheetThreshold  float64 `toml:"sheet_threshold" validate:"gt=0,lte=1"`
	ColumnThreshold float64 `toml:"column_threshold" validate:"gt=0,lte=1"`
	RowThreshold    float64 `toml:"row_threshold" validate:"gt=0,lte=1"`
	// SchemaPath 시트 스키마 TOML (상대 경로는 실행 파일 기준)
	SchemaPath string `toml:"schema_path"`
}

// LoggingConfig 로그 설정
type LoggingConfig struct {
	Level  string `toml:"level" validate:"oneof=trace debug info warn error"`
	Output string `toml:"output" validate:"oneof=console"`
}

// LoadConfigInfo 설정 로드 메타 정보
type LoadConfigInfo struct {
	Path          string
	PortSpecified bool
}

// DefaultConfig 기본 설정
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20261,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Engine: EngineConfig{
			MissingValue:    model.MissingValue,
			TopN:            5,
			BottomN:         5,
			CategoryTopN:    3,
			HeaderRows:      3,
			HeaderScanRows:  12,
			Decimals:        1,
			SheetThreshold:  0.3,
			ColumnThreshold: 0.6,
			RowThreshold:    0.7,
			SchemaPath:      "schema.toml",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "console",
		},
	}
}

// Validate 설정 검증
func (c *AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 실행 파일 디렉터리
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

func exeDirOrDot() string {
	exeDir, err := GetExeDir()
	if err != nil || exeDir == "" {
		return "."
	}
	return exeDir
}

// LoadConfigWithInfo 실행 파일 옆 config.toml (+ .env) 로드
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	exeDir := exeDirOrDot()
	// .env 는 없어도 된다
	_ = godotenv.Load(filepath.Join(exeDir, ".env"))
	return LoadConfigFrom(filepath.Join(exeDir, "config.toml"))
}

// LoadConfigFrom 경로에서 설정 로드. 파일이 없으면 기본값에 환경 변수만 적용.
func LoadConfigFrom(configPath string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: configPath}
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}
	case os.IsNotExist(err):
		// 설정 파일 없음, 기본값 사용
	default:
		return nil, info, err
	}

	if err := applyEnv(config, &info); err != nil {
		return nil, info, err
	}
	if err := config.Validate(); err != nil {
		return nil, info, err
	}
	return config, info, nil
}

// applyEnv 환경 변수 덮어쓰기
func applyEnv(config *AppConfig, info *LoadConfigInfo) error {
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		config.Server.Port = port
		info.PortSpecified = true
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv(EnvSchemaPath); v != "" {
		config.Engine.SchemaPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		config.Logging.Level = v
	}
	return nil
}

// LoadConfig 실행 파일 옆 config.toml 로드
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// SaveConfig config.toml 저장
func SaveConfig(config *AppConfig) error {
	configPath := filepath.Join(exeDirOrDot(), "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// resolvePath 상대 경로는 실행 파일 기준
func resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(exeDirOrDot(), path)
}

// EnsureDataDir 데이터 디렉터리 생성 (workbooks, reports 하위 디렉터리 포함)
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := resolvePath(config.Data.DataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	for _, subdir := range []string{"workbooks", "reports"} {
		if err := os.MkdirAll(filepath.Join(dataDir, subdir), 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}

// GetDataPath 데이터 파일 경로
func GetDataPath(config *AppConfig, subdir, filename string) string {
	return filepath.Join(resolvePath(config.Data.DataDir), subdir, filename)
}

// SchemaPath 시트 스키마 파일 경로
func SchemaPath(config *AppConfig) string {
	return resolvePath(config.Engine.SchemaPath)
}

// LoadSchemas 시트 스키마 로드 (파일이 없으면 빈 스키마)
func LoadSchemas(config *AppConfig) (*model.SchemaSet, error) {
	return model.LoadSchemaSet(SchemaPath(config))
}

// NewLogger 설정에 맞는 콘솔 로거
func NewLogger(config *AppConfig) arbor.ILogger {
	level := "info"
	if config != nil && config.Logging.Level != "" {
		level = config.Logging.Level
	}
	return arbor.NewLogger().WithConsoleWriter(models.WriterConfiguration{
		Type:       models.LogWriterTypeConsole,
		TimeFormat: "15:04:05",
	}).WithLevelFromString(level)
}
