package pipeline

import (
	"context"
	"time"

	"github.com/shaiso/cityweather/internal/domain"
	"github.com/shaiso/cityweather/internal/telemetry"
)

// StageEvent описывает начало или завершение стадии.
type StageEvent struct {
	RunID    string
	Stage    domain.Stage
	Duration time.Duration
	Err      error
}

// HookFunc вызывается при событиях стадии.
type HookFunc func(context.Context, StageEvent)

// Hooks — необязательные callback'и жизненного цикла стадий.
type Hooks struct {
	OnStart   HookFunc
	OnSuccess HookFunc
	OnFailure HookFunc
}

// Merge объединяет два набора hooks, receiver вызывается первым.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnStart:   chainHooks(h.OnStart, other.OnStart),
		OnSuccess: chainHooks(h.OnSuccess, other.OnSuccess),
		OnFailure: chainHooks(h.OnFailure, other.OnFailure),
	}
}

// MetricsHooks пишет длительность каждой стадии и стадии, прервавшие запуск.
func MetricsHooks(m *telemetry.Metrics) Hooks {
	if m == nil {
		return Hooks{}
	}
	return Hooks{
		OnSuccess: func(_ context.Context, e StageEvent) {
			m.ObserveStage(e.Stage.String(), e.Duration)
		},
		OnFailure: func(_ context.Context, e StageEvent) {
			m.ObserveStage(e.Stage.String(), e.Duration)
			m.ObserveStageFailure(e.Stage.String())
		},
	}
}

func chainHooks(first, second HookFunc) HookFunc {
	switch {
	case first == nil:
		return second
	case second == nil:
		return first
	default:
		return func(ctx context.Context, event StageEvent) {
			first(ctx, event)
			second(ctx, event)
		}
	}
}

func (f HookFunc) call(ctx context.Context, event StageEvent) {
	if f != nil {
		f(ctx, event)
	}
}
