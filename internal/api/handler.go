package api

import (
	"context"
	"log/slog"

	"github.com/shaiso/cityweather/internal/domain"
	"github.com/shaiso/cityweather/internal/pipeline"
	"github.com/shaiso/cityweather/internal/steps"
	"github.com/shaiso/cityweather/internal/telemetry"
)

// Runner запускает pipeline. Реализуется *pipeline.Pipeline.
type Runner interface {
	Run(ctx context.Context, src steps.Source, r steps.Renderer) (*pipeline.Result, error)
}

// Handler — главный обработчик HTTP с зависимостями.
type Handler struct {
	runner      Runner
	metrics     *telemetry.Metrics
	logger      *slog.Logger
	defaultCity string
}

// Config — конфигурация для создания Handler.
type Config struct {
	Runner      Runner
	Metrics     *telemetry.Metrics
	Logger      *slog.Logger
	DefaultCity string // значение поля ввода по умолчанию
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	defaultCity := cfg.DefaultCity
	if defaultCity == "" {
		defaultCity = domain.DefaultCity
	}
	return &Handler{
		runner:      cfg.Runner,
		metrics:     cfg.Metrics,
		logger:      logger,
		defaultCity: defaultCity,
	}
}

// run запускает pipeline и собирает View.
func (h *Handler) run(ctx context.Context, city string) (*View, error) {
	view := &View{}
	res, err := h.runner.Run(ctx, steps.StaticSource(city), view)
	if err != nil {
		return nil, err
	}
	view.Bind(res)
	return view, nil
}
