package v1

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// 다운로드 토큰 유효 시간
const downloadTTL = 30 * time.Minute

type reportDownload struct {
	filePath  string
	fileName  string
	expiresAt time.Time
}

type reportDownloadStore struct {
	mu    sync.Mutex
	items map[string]reportDownload
}

func newReportDownloadStore() *reportDownloadStore {
	return &reportDownloadStore{
		items: make(map[string]reportDownload),
	}
}

func (s *reportDownloadStore) put(filePath, fileName string, ttl time.Duration) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	token = uuid.New().String()
	s.items[token] = reportDownload{
		filePath:  filePath,
		fileName:  fileName,
		expiresAt: time.Now().Add(ttl),
	}
	return token
}

func (s *reportDownloadStore) get(token string) (reportDownload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	v, ok := s.items[token]
	return v, ok
}

func (s *reportDownloadStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}
