package pipeline

import (
	"log/slog"

	"github.com/shaiso/cityweather/internal/config"
	"github.com/shaiso/cityweather/internal/steps"
	"github.com/shaiso/cityweather/internal/telemetry"
)

// NewFromConfig собирает Pipeline со стандартными стадиями.
// Все стадии используют один HTTP клиент с таймаутом из конфигурации.
func NewFromConfig(cfg *config.Config, metrics *telemetry.Metrics, logger *slog.Logger) (*Pipeline, error) {
	client := steps.NewHTTPClient(cfg.HTTPTimeout)

	registry := steps.DefaultRegistry(steps.Config{
		DefaultCity: cfg.DefaultCity,
		Weather: steps.WeatherConfig{
			BaseURL: cfg.Weather.BaseURL,
			APIKey:  cfg.Weather.APIKey,
			Client:  client,
			Metrics: metrics,
		},
		Image: steps.ImageConfig{
			BaseURL:   cfg.Image.BaseURL,
			AccessKey: cfg.Image.AccessKey,
			Client:    client,
			Metrics:   metrics,
		},
		Present: steps.PresentConfig{
			Client:  client,
			Metrics: metrics,
		},
	})

	return New(Config{
		Registry: registry,
		Metrics:  metrics,
		Logger:   logger,
	})
}
