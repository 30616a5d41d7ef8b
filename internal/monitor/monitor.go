package monitor

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Monitor süreç içi zamanlayıcı kayıtları tutar ve aynı ölçümleri Prometheus
// registry'sine de yazar. Süreç yeniden başlayınca sayaçlar sıfırlanır.
type Monitor struct {
	mu        sync.Mutex
	startedAt time.Time
	timers    map[string]*timerStat

	registry      *prometheus.Registry
	httpDuration  *prometheus.HistogramVec
	requestsTotal *prometheus.CounterVec
	opDuration    *prometheus.HistogramVec
}

type timerStat struct {
	Count int64
	Total time.Duration
	Max   time.Duration
}

func New() *Monitor {
	reg := prometheus.NewRegistry()

	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tvservis",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP isteği süresi",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tvservis",
		Name:      "http_requests_total",
		Help:      "Toplam HTTP isteği",
	}, []string{"method", "path", "status"})

	opDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tvservis",
		Name:      "operation_duration_seconds",
		Help:      "İç operasyon süresi (db, mail, ...)",
		Buckets:   prometheus.DefBuckets,
	}, []string{"name"})

	reg.MustRegister(httpDuration, requestsTotal, opDuration)

	return &Monitor{
		startedAt:     time.Now(),
		timers:        make(map[string]*timerStat),
		registry:      reg,
		httpDuration:  httpDuration,
		requestsTotal: requestsTotal,
		opDuration:    opDuration,
	}
}

// Observe adlandırılmış bir operasyonun süresini kaydeder.
func (m *Monitor) Observe(name string, elapsed time.Duration) {
	m.mu.Lock()
	st, ok := m.timers[name]
	if !ok {
		st = &timerStat{}
		m.timers[name] = st
	}
	st.Count++
	st.Total += elapsed
	if elapsed > st.Max {
		st.Max = elapsed
	}
	m.mu.Unlock()

	m.opDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}

func (m *Monitor) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	m.httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
	m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.Observe("http "+method+" "+path, elapsed)
}

// Summary health endpoint'inde gösterilen özet.
func (m *Monitor) Summary() fiber.Map {
	m.mu.Lock()
	defer m.mu.Unlock()

	timers := make(fiber.Map, len(m.timers))
	for name, st := range m.timers {
		avg := time.Duration(0)
		if st.Count > 0 {
			avg = st.Total / time.Duration(st.Count)
		}
		timers[name] = fiber.Map{
			"count":  st.Count,
			"avg_ms": avg.Milliseconds(),
			"max_ms": st.Max.Milliseconds(),
		}
	}

	return fiber.Map{
		"uptime_sec": int64(time.Since(m.startedAt).Seconds()),
		"timers":     timers,
	}
}

// MetricsHandler /metrics için promhttp çıktısını Fiber'e uyarlar.
func (m *Monitor) MetricsHandler() fiber.Handler {
	h := fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	return func(c *fiber.Ctx) error {
		h(c.Context())
		return nil
	}
}
