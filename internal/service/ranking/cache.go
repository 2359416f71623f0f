package ranking

import "regionreport/internal/model"

// Reader 순위 캐시 읽기 전용 뷰 (핸들러용)
type Reader interface {
	Get(key model.RankingKey) (*model.RankingResult, bool)
}

// Cache 시트+기간별 순위 결과. 한 번의 채우기 동안만 유지하며 요청 간 공유하지 않는다.
type Cache struct {
	results map[model.RankingKey]*model.RankingResult
}

// NewCache 빈 캐시
func NewCache() *Cache {
	return &Cache{results: make(map[model.RankingKey]*model.RankingResult)}
}

// Get 캐시 조회
func (c *Cache) Get(key model.RankingKey) (*model.RankingResult, bool) {
	if c == nil {
		return nil, false
	}
	res, ok := c.results[key]
	return res, ok
}

// Put 결과 저장 (같은 키는 교체)
func (c *Cache) Put(key model.RankingKey, res *model.RankingResult) {
	c.results[key] = res
}

// Len 저장된 결과 수
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.results)
}

// Reset 전부 버린다 (워크북 재로드 시)
func (c *Cache) Reset() {
	c.results = make(map[model.RankingKey]*model.RankingResult)
}

// Warm 캐시에 없으면 계산해서 저장
func (c *Cache) Warm(engine *Engine, sheet string, p model.Period) (*model.RankingResult, error) {
	key := model.RankingKey{Sheet: sheet, Period: p}
	if res, ok := c.Get(key); ok {
		return res, nil
	}
	res, err := engine.Rank(sheet, p)
	if err != nil {
		return nil, err
	}
	c.Put(key, res)
	return res, nil
}
