package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/shaiso/cityweather/internal/pipeline"
	"github.com/shaiso/cityweather/internal/steps"
)

// ErrNoRunner — Scheduler создан без Runner.
var ErrNoRunner = errors.New("scheduler: runner is required")

// Runner запускает pipeline. Реализуется *pipeline.Pipeline.
type Runner interface {
	Run(ctx context.Context, src steps.Source, r steps.Renderer) (*pipeline.Result, error)
}

// Scheduler — периодический запуск pipeline.
type Scheduler struct {
	runner    Runner
	cronExpr  string
	source    steps.Source
	renderer  func() steps.Renderer
	onResult  func(*pipeline.Result, error)
	immediate bool
	logger    *slog.Logger
}

// Config — конфигурация Scheduler.
type Config struct {
	Runner   Runner
	CronExpr string

	// Source — город для каждого запуска.
	Source steps.Source

	// Renderer — создаёт Renderer для каждого запуска (опционально).
	Renderer func() steps.Renderer

	// OnResult вызывается после каждого запуска (опционально).
	OnResult func(*pipeline.Result, error)

	// Immediate — выполнить первый запуск сразу, не дожидаясь расписания.
	Immediate bool

	Logger *slog.Logger
}

// New создаёт Scheduler. Возвращает ошибку для невалидного cron-выражения.
func New(cfg Config) (*Scheduler, error) {
	if cfg.Runner == nil {
		return nil, ErrNoRunner
	}
	if err := ValidateCronExpr(cfg.CronExpr); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		runner:    cfg.Runner,
		cronExpr:  cfg.CronExpr,
		source:    cfg.Source,
		renderer:  cfg.Renderer,
		onResult:  cfg.OnResult,
		immediate: cfg.Immediate,
		logger:    logger,
	}, nil
}

// Run запускает расписание и блокируется до отмены ctx.
// Перед возвратом дожидается завершения текущего запуска.
func (s *Scheduler) Run(ctx context.Context) error {
	c := cron.New(
		cron.WithParser(cronParser),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	if _, err := c.AddFunc(s.cronExpr, func() { s.Tick(ctx) }); err != nil {
		return err
	}

	if s.immediate {
		s.Tick(ctx)
	}

	c.Start()
	if next, err := NextRun(s.cronExpr, time.Now()); err == nil {
		s.logger.Info("scheduler started", "cron", s.cronExpr, "next_run", next)
	}

	<-ctx.Done()

	stopCtx := c.Stop()
	<-stopCtx.Done()

	s.logger.Info("scheduler stopped")
	return nil
}

// Tick выполняет один запуск pipeline.
func (s *Scheduler) Tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	var r steps.Renderer
	if s.renderer != nil {
		r = s.renderer()
	}

	res, err := s.runner.Run(ctx, s.source, r)
	if err != nil {
		s.logger.Error("scheduled run failed", "error", err)
	}

	if s.onResult != nil {
		s.onResult(res, err)
	}
}
