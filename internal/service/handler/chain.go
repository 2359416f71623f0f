// Package handler 의미 키를 순위 결과에 대해 해석해 표시 문자열로 만든다.
package handler

import (
	"github.com/ternarybob/arbor"

	"regionreport/internal/model"
	"regionreport/internal/parser"
	"regionreport/internal/service/ranking"
)

// Context 한 마커를 해석할 때의 시트/기간과 공유 자원
type Context struct {
	Sheet  string
	Period model.Period
	Engine *ranking.Engine
	Cache  ranking.Reader
	Format Formatter
	Logger arbor.ILogger
}

func (c *Context) logger() arbor.ILogger {
	if c.Logger == nil {
		return arbor.NewNoOpLogger()
	}
	return c.Logger
}

func (c *Context) schema() *model.SheetSchema {
	return c.Engine.Resolver().Schema(c.Sheet)
}

// ranking 캐시 우선, 미스면 계산만 (캐시는 건드리지 않음)
func (c *Context) ranking() (*model.RankingResult, bool) {
	res, err := c.Engine.Lookup(c.Cache, c.Sheet, c.Period)
	if err != nil {
		c.logger().Debug().Str("sheet", c.Sheet).Int("year", c.Period.Year).Int("quarter", c.Period.Quarter).Err(err).Msg("ranking unavailable")
		return nil, false
	}
	return res, true
}

// findRegion 지역 이름(원래 이름 또는 표시 이름)으로 레코드 찾기. 전국 포함.
func findRegion(res *model.RankingResult, region string) (*model.RegionRecord, bool) {
	if IsNational(region) {
		return res.National, res.National != nil
	}
	key := parser.NormalizeName(region)
	if key == "" {
		return nil, false
	}
	for i := range res.Regions {
		r := &res.Regions[i]
		if parser.NormalizeName(r.Name) == key || parser.NormalizeName(r.DisplayName) == key {
			return r, true
		}
	}
	if res.National != nil && parser.NormalizeName(res.National.Name) == key {
		return res.National, true
	}
	return nil, false
}

// Handler 체인의 한 단계. 부작용이 없어야 한다.
type Handler interface {
	Name() string
	CanHandle(q Query, ctx *Context) bool
	// Handle ok=false 면 다음 핸들러로 넘어간다.
	Handle(q Query, ctx *Context) (string, bool)
}

// DefaultHandlers 시계열 -> 고용 지표 -> 전국 -> 지역 순위 -> 지역 통계
func DefaultHandlers() []Handler {
	return []Handler{
		TimeSeriesHandler{},
		LaborHandler{},
		NationalHandler{},
		RegionHandler{},
		StatsHandler{},
	}
}

// Chain 고정 순서 핸들러 체인. 첫 번째 결과가 채택된다.
type Chain struct {
	handlers []Handler
	logger   arbor.ILogger
}

// NewChain 체인 생성. handlers 가 없으면 기본 순서.
func NewChain(logger arbor.ILogger, handlers ...Handler) *Chain {
	if logger == nil {
		logger = arbor.NewNoOpLogger()
	}
	if len(handlers) == 0 {
		handlers = DefaultHandlers()
	}
	return &Chain{handlers: handlers, logger: logger}
}

// Resolve 의미 키 해석. 해석하지 못하면 (결측 표시, false).
func (c *Chain) Resolve(key string, ctx *Context) (string, bool) {
	missing := ctx.Format.missing()
	q, ok := ParseQuery(key)
	if !ok {
		c.logger.Debug().Str("sheet", ctx.Sheet).Str("key", key).Msg("unparseable key")
		return missing, false
	}
	for _, h := range c.handlers {
		if !h.CanHandle(q, ctx) {
			continue
		}
		if v, ok := h.Handle(q, ctx); ok {
			c.logger.Debug().Str("sheet", ctx.Sheet).Str("key", key).Str("handler", h.Name()).Str("value", v).Msg("key resolved")
			return v, true
		}
	}
	c.logger.Debug().Str("sheet", ctx.Sheet).Str("key", key).Msg("no handler produced a value")
	return missing, false
}
