package world

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/annel0/voxel-world/internal/logging"
)

// Metrics инкапсулирует Prometheus-метрики ядра мира. Подключение
// необязательно: мир с metrics == nil работает без экспорта, все
// методы безопасны для nil-получателя.
type Metrics struct {
	blocksPlaced     prometheus.Counter
	blocksRemoved    prometheus.Counter
	chunksGenerated  prometheus.Counter
	columnsGenerated prometheus.Counter
	meshesBuilt      prometheus.Counter
	meshesReleased   prometheus.Counter
	chunkTransitions prometheus.Counter

	buildQueueDepth prometheus.Gauge
	genQueueDepth   prometheus.Gauge
	blocksLoaded    prometheus.Gauge
	blocksDrawn     prometheus.Gauge
}

// NewMetrics создаёт метрики и регистрирует их в глобальном регистре
// Prometheus. Вызывать не более одного раза на процесс.
func NewMetrics() *Metrics {
	m := &Metrics{
		blocksPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "blocks_placed_total",
			Help:      "Общее число установленных блоков.",
		}),
		blocksRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "blocks_removed_total",
			Help:      "Общее число удалённых блоков.",
		}),
		chunksGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "chunks_generated_total",
			Help:      "Общее число сгенерированных чанков.",
		}),
		columnsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "columns_generated_total",
			Help:      "Общее число заполненных колонок ландшафта.",
		}),
		meshesBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "meshes_built_total",
			Help:      "Геометрия, переданная рендереру.",
		}),
		meshesReleased: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "meshes_released_total",
			Help:      "Геометрия, освобождённая рендерером.",
		}),
		chunkTransitions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "chunk_transitions_total",
			Help:      "Переходы точки обзора между чанками.",
		}),
		buildQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "world",
			Name:      "build_queue_depth",
			Help:      "Элементов в очереди сборки/разборки геометрии.",
		}),
		genQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "world",
			Name:      "generation_queue_depth",
			Help:      "Элементов в очереди генерации ландшафта.",
		}),
		blocksLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "world",
			Name:      "blocks_loaded",
			Help:      "Блоков в карте мира.",
		}),
		blocksDrawn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "world",
			Name:      "blocks_drawn",
			Help:      "Позиций, представленных геометрией рендерера.",
		}),
	}

	prometheus.MustRegister(
		m.blocksPlaced, m.blocksRemoved,
		m.chunksGenerated, m.columnsGenerated,
		m.meshesBuilt, m.meshesReleased,
		m.chunkTransitions,
		m.buildQueueDepth, m.genQueueDepth,
		m.blocksLoaded, m.blocksDrawn,
	)
	return m
}

// StartHTTP запускает HTTP-эндпоинт Prometheus на указанном адресе
// (например, ":2112"). Метод неблокирующий.
func (m *Metrics) StartHTTP(addr string) {
	go func() {
		logging.LogInfo("Prometheus /metrics доступен по адресу %s", addr)
		if err := http.ListenAndServe(addr, promhttp.Handler()); err != nil {
			logging.LogError("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
}

func (m *Metrics) blockPlaced() {
	if m == nil {
		return
	}
	m.blocksPlaced.Inc()
}

func (m *Metrics) blockRemoved() {
	if m == nil {
		return
	}
	m.blocksRemoved.Inc()
}

func (m *Metrics) chunkGenerated() {
	if m == nil {
		return
	}
	m.chunksGenerated.Inc()
}

func (m *Metrics) columnGenerated() {
	if m == nil {
		return
	}
	m.columnsGenerated.Inc()
}

func (m *Metrics) meshBuilt() {
	if m == nil {
		return
	}
	m.meshesBuilt.Inc()
}

func (m *Metrics) meshReleased() {
	if m == nil {
		return
	}
	m.meshesReleased.Inc()
}

func (m *Metrics) chunkTransition() {
	if m == nil {
		return
	}
	m.chunkTransitions.Inc()
}

func (m *Metrics) setQueueDepths(build, generation int) {
	if m == nil {
		return
	}
	m.buildQueueDepth.Set(float64(build))
	m.genQueueDepth.Set(float64(generation))
}

func (m *Metrics) setWorldSize(blocks, drawn int) {
	if m == nil {
		return
	}
	m.blocksLoaded.Set(float64(blocks))
	m.blocksDrawn.Set(float64(drawn))
}
