package server

import (
	"fmt"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/ternarybob/arbor"

	v1 "regionreport/internal/api/v1"
	"regionreport/internal/config"
	"regionreport/internal/service/filler"
	"regionreport/internal/store"
)

// Server HTTP 서버
type Server struct {
	router *gin.Engine
	store  *store.Store
	v1     *v1.Handler
	logger arbor.ILogger
}

// NewServer 저장소를 열고 라우트를 구성한다
func NewServer(cfg *config.AppConfig, logger arbor.ILogger) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare data directory: %w", err)
	}

	schemas, err := config.LoadSchemas(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load sheet schemas: %w", err)
	}

	sqliteStore, err := store.New(filepath.Join(dataDir, "regionreport.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	handler := v1.NewHandler(sqliteStore, schemas, filler.OptionsFromConfig(cfg.Engine),
		filepath.Join(dataDir, "reports"), logger)

	s := &Server{
		router: gin.New(),
		store:  sqliteStore,
		v1:     handler,
		logger: logger,
	}
	s.setupRoutes()

	logger.Info().
		Str("data_dir", dataDir).
		Int("sheet_schemas", len(schemas.Sheets)).
		Msg("server initialized")
	return s, nil
}

// setupRoutes 미들웨어와 API 라우트
func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery(), s.requestLogger())

	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		s.v1.RegisterRoutes(api)
	}
}

// requestLogger 요청 로그 (arbor)
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("request")
	}
}

// Handler 테스트용 http.Handler
func (s *Server) Handler() *gin.Engine {
	return s.router
}

// Run 서버 시작
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 저장소 닫기
func (s *Server) Close() error {
	return s.store.Close()
}

// GetStore 저장소 (테스트용)
func (s *Server) GetStore() *store.Store {
	return s.store
}
