// Package telemetry обеспечивает наблюдаемость системы.
//
// Включает:
//   - logging.go — structured logging через slog
//   - metrics.go — Prometheus метрики
//
// CLI и веб-сервер используют единый формат логирования,
// веб-сервер экспортирует метрики на /metrics endpoint.
package telemetry
