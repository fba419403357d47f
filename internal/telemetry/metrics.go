package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics — Prometheus метрики pipeline.
//
// Создаются на отдельном Registry, чтобы тесты и CLI не конфликтовали
// с глобальным prometheus.DefaultRegisterer.
type Metrics struct {
	Registry *prometheus.Registry

	runs         *prometheus.CounterVec
	stageSeconds *prometheus.HistogramVec
	stageErrors  *prometheus.CounterVec
	upstream     *prometheus.CounterVec
	httpRequests prometheus.Counter
}

// Исходы запуска pipeline.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
)

// NewMetrics создаёт и регистрирует метрики.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cityweather_pipeline_runs_total",
			Help: "Total pipeline invocations by outcome",
		}, []string{"outcome"}),
		stageSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cityweather_stage_duration_seconds",
			Help:    "Duration of each pipeline stage",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
		stageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cityweather_stage_failures_total",
			Help: "Stages that aborted a pipeline run",
		}, []string{"stage"}),
		upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cityweather_upstream_responses_total",
			Help: "Responses from external APIs by api and status code",
		}, []string{"api", "status"}),
		httpRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cityweather_http_requests_total",
			Help: "Total HTTP requests handled by the web server",
		}),
	}

	m.Registry.MustRegister(
		m.runs,
		m.stageSeconds,
		m.stageErrors,
		m.upstream,
		m.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveRun учитывает завершённый запуск pipeline.
func (m *Metrics) ObserveRun(outcome string) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
}

// ObserveStage учитывает длительность стадии.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageSeconds.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveStageFailure учитывает стадию, прервавшую запуск.
func (m *Metrics) ObserveStageFailure(stage string) {
	if m == nil {
		return
	}
	m.stageErrors.WithLabelValues(stage).Inc()
}

// ObserveUpstream учитывает ответ внешнего API.
func (m *Metrics) ObserveUpstream(api string, status int) {
	if m == nil {
		return
	}
	m.upstream.WithLabelValues(api, strconv.Itoa(status)).Inc()
}

// IncHTTPRequests учитывает входящий HTTP-запрос.
func (m *Metrics) IncHTTPRequests() {
	if m == nil {
		return
	}
	m.httpRequests.Inc()
}
