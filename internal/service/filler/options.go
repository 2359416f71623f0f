package filler

import (
	"regionreport/internal/config"
	"regionreport/internal/service/excel"
	"regionreport/internal/service/handler"
	"regionreport/internal/service/ranking"
)

// OptionsFromConfig 엔진 설정을 채우기 옵션으로
func OptionsFromConfig(cfg config.EngineConfig) Options {
	return Options{
		Resolver: excel.Options{
			SheetThreshold:  cfg.SheetThreshold,
			ColumnThreshold: cfg.ColumnThreshold,
			RowThreshold:    cfg.RowThreshold,
			HeaderRows:      cfg.HeaderRows,
			HeaderScanRows:  cfg.HeaderScanRows,
		},
		Ranking: ranking.Config{
			TopN:         cfg.TopN,
			BottomN:      cfg.BottomN,
			CategoryTopN: cfg.CategoryTopN,
		},
		Format: handler.Formatter{
			Decimals: cfg.Decimals,
			Missing:  cfg.MissingValue,
		},
	}
}
