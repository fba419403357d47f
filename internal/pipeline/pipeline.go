package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/cityweather/internal/domain"
	"github.com/shaiso/cityweather/internal/steps"
	"github.com/shaiso/cityweather/internal/telemetry"
)

// Pipeline — фиксированная последовательность стадий.
//
// Создаётся один раз при старте и используется для всех запусков.
// Сам Pipeline не хранит состояния запусков, поэтому Run можно
// вызывать из нескольких горутин.
type Pipeline struct {
	registry *steps.Registry
	hooks    Hooks
	metrics  *telemetry.Metrics
	logger   *slog.Logger
}

// Config — конфигурация Pipeline.
type Config struct {
	// Registry — стадии. Должен содержать шаг для каждой domain.Stages().
	Registry *steps.Registry

	// Hooks — необязательные callback'и. Вызываются после MetricsHooks(Metrics).
	Hooks Hooks

	// Metrics — необязательные метрики.
	Metrics *telemetry.Metrics

	// Logger
	Logger *slog.Logger
}

// Result — результат успешного запуска.
type Result struct {
	RunID    uuid.UUID
	Record   *domain.Record
	Duration time.Duration
}

// New создаёт Pipeline. Возвращает ошибку, если в реестре не хватает стадий.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("%w: registry is nil", steps.ErrStepNotFound)
	}
	if err := cfg.Registry.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		registry: cfg.Registry,
		hooks:    MetricsHooks(cfg.Metrics).Merge(cfg.Hooks),
		metrics:  cfg.Metrics,
		logger:   logger,
	}, nil
}

// Run выполняет один запуск: COLLECT → WEATHER → IMAGE → PRESENT.
//
// src — откуда взять название города, r — куда вывести результат.
// Ошибка стадии прерывает запуск, оставшиеся стадии не выполняются.
func (p *Pipeline) Run(ctx context.Context, src steps.Source, r steps.Renderer) (*Result, error) {
	runID := uuid.New()
	logger := telemetry.WithRunID(p.logger, runID.String())
	ctx = telemetry.WithLogger(ctx, logger)

	req := steps.NewRequest(src, r)
	start := time.Now()

	for stage := domain.StageStart.Next(); !stage.IsTerminal(); stage = stage.Next() {
		if err := p.runStage(ctx, runID, stage, req); err != nil {
			p.metrics.ObserveRun(telemetry.OutcomeFailed)
			logger.Error("pipeline aborted", "stage", stage, "error", err)
			return nil, fmt.Errorf("stage %s: %w", stage, err)
		}
	}

	res := &Result{
		RunID:    runID,
		Record:   req.Record,
		Duration: time.Since(start),
	}

	p.metrics.ObserveRun(telemetry.OutcomeSucceeded)
	logger.Info("pipeline finished",
		"city", res.Record.City,
		"has_weather", res.Record.HasWeather(),
		"has_image", res.Record.HasImage(),
		"duration", res.Duration,
	)

	return res, nil
}

// runStage выполняет одну стадию.
func (p *Pipeline) runStage(ctx context.Context, runID uuid.UUID, stage domain.Stage, req *steps.Request) error {
	step, err := p.registry.Get(stage)
	if err != nil {
		return err
	}

	logger := telemetry.WithStage(telemetry.FromContext(ctx), stage.String())
	ctx = telemetry.WithLogger(ctx, logger)

	event := StageEvent{RunID: runID.String(), Stage: stage}
	p.hooks.OnStart.call(ctx, event)
	logger.Debug("stage started")

	start := time.Now()
	err = step.Execute(ctx, req)
	event.Duration = time.Since(start)

	if err != nil {
		event.Err = err
		p.hooks.OnFailure.call(ctx, event)
		return err
	}

	p.hooks.OnSuccess.call(ctx, event)
	logger.Debug("stage finished", "duration", event.Duration)
	return nil
}
