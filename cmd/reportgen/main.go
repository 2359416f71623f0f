package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/ternarybob/arbor"

	"regionreport/internal/config"
	"regionreport/internal/model"
	"regionreport/internal/server"
	"regionreport/internal/service/excel"
	"regionreport/internal/service/filler"
)

var (
	port    = flag.Int("port", 0, "서비스 포트 (config.toml 에 port 가 없을 때만 적용)")
	devMode = flag.Bool("dev", false, "개발 모드")
	dataDir = flag.String("dataDir", "", "데이터 디렉터리 (설정 파일 덮어쓰기)")

	// 단발 실행 모드
	fill     = flag.Bool("fill", false, "서버 없이 템플릿 한 건 채우기")
	periods  = flag.Bool("periods", false, "워크북 시트별 사용 가능 기간 출력")
	workbook = flag.String("workbook", "", "원자료 워크북 (.xlsx)")
	template = flag.String("template", "", "템플릿 파일")
	year     = flag.Int("year", 0, "연도 (생략 시 시트별 최신)")
	quarter  = flag.Int("quarter", 0, "분기 1~4")
	out      = flag.String("out", "", "결과 파일 (생략 시 표준 출력)")
)

func main() {
	flag.Parse()

	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		fmt.Fprintf(os.Stderr, "설정 로드 실패, 기본 설정 사용: %v\n", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	logger := config.NewLogger(cfg)

	switch {
	case *fill:
		if err := runFill(cfg, logger); err != nil {
			logger.Error().Err(err).Msg("fill failed")
			os.Exit(1)
		}
	case *periods:
		if err := runPeriods(cfg, logger); err != nil {
			logger.Error().Err(err).Msg("period detection failed")
			os.Exit(1)
		}
	default:
		runServer(cfg, logger)
	}
}

func runServer(cfg *config.AppConfig, logger arbor.ILogger) {
	fmt.Println("==========================================")
	fmt.Println("  RegionReport - 지역 통계 보고서 생성기")
	fmt.Println("==========================================")

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("server initialization failed")
	}
	defer srv.Close()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("server listening")
		if err := srv.Run(addr); err != nil {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	fmt.Println("\nCtrl+C 로 종료합니다...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
}

func newFiller(cfg *config.AppConfig, logger arbor.ILogger) (*filler.Filler, error) {
	schemas, err := config.LoadSchemas(cfg)
	if err != nil {
		return nil, err
	}
	return filler.New(schemas, filler.OptionsFromConfig(cfg.Engine), logger), nil
}

func runFill(cfg *config.AppConfig, logger arbor.ILogger) error {
	if *workbook == "" || *template == "" {
		return fmt.Errorf("-workbook 과 -template 이 필요합니다")
	}
	if (*year == 0) != (*quarter == 0) {
		return fmt.Errorf("-year 와 -quarter 는 함께 지정해야 합니다")
	}
	body, err := os.ReadFile(*template)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}
	wb, err := excel.OpenFile(*workbook)
	if err != nil {
		return err
	}
	defer wb.Close()

	f, err := newFiller(cfg, logger)
	if err != nil {
		return err
	}
	report, err := f.Fill(wb, filler.Request{
		Template: string(body),
		Period:   model.Period{Year: *year, Quarter: *quarter},
	})
	if err != nil {
		return err
	}
	for _, failure := range report.Failures {
		fmt.Fprintf(os.Stderr, "%s: %s\n", failure.Marker, failure.Reason)
	}

	if *out == "" {
		fmt.Print(report.Text)
		return nil
	}
	if err := os.WriteFile(*out, []byte(report.Text), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	logger.Info().
		Str("out", *out).
		Int("resolved", report.Resolved()).
		Int("failures", len(report.Failures)).
		Msg("report written")
	return nil
}

func runPeriods(cfg *config.AppConfig, logger arbor.ILogger) error {
	if *workbook == "" {
		return fmt.Errorf("-workbook 이 필요합니다")
	}
	wb, err := excel.OpenFile(*workbook)
	if err != nil {
		return err
	}
	defer wb.Close()

	f, err := newFiller(cfg, logger)
	if err != nil {
		return err
	}
	ranges, err := f.Periods(wb)
	if err != nil {
		return err
	}

	sheets := make([]string, 0, len(ranges))
	for name := range ranges {
		sheets = append(sheets, name)
	}
	sort.Strings(sheets)

	type sheetPeriods struct {
		Sheet string            `json:"sheet"`
		Range model.PeriodRange `json:"range"`
	}
	list := make([]sheetPeriods, 0, len(sheets))
	for _, name := range sheets {
		list = append(list, sheetPeriods{Sheet: name, Range: ranges[name]})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}
