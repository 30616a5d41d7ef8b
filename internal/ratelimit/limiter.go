package ratelimit

import (
	"sync"
	"time"
)

// Limiter sabit pencereli istek sayacı. Store süreç içi (memory) veya çok
// instance'lı kurulumlar için Redis olabilir.
type Limiter struct {
	store  Store
	max    int
	window time.Duration
}

type Store interface {
	// Incr pencere içindeki sayacı artırır ve yeni değeri döndürür.
	// Pencere dolmuşsa sayaç sıfırdan başlar.
	Incr(key string, window time.Duration) (int, error)
}

func New(store Store, max int, window time.Duration) *Limiter {
	return &Limiter{store: store, max: max, window: window}
}

// Allow anahtarın bu penceredeki istek hakkının dolup dolmadığını söyler.
// Store hatasında istek reddedilmez; limiter koruma katmanıdır, kapı değil.
func (l *Limiter) Allow(key string) bool {
	n, err := l.store.Incr(key, l.window)
	if err != nil {
		return true
	}
	return n <= l.max
}

// MemoryStore süreç ömrüyle sınırlı, kilitli map tabanlı pencere sayacı.
// Yeniden başlatmada sıfırlanır; birden çok instance arasında paylaşılmaz.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

type window struct {
	count   int
	resetAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (s *MemoryStore) Incr(key string, d time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(d)}
		s.windows[key] = w
	}
	w.count++
	return w.count, nil
}
