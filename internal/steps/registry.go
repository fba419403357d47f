package steps

import (
	"fmt"
	"sync"

	"github.com/shaiso/cityweather/internal/domain"
)

// Registry — реестр стадий.
//
// Хранит по одной реализации Step на каждую domain.Stage.
// Потокобезопасен.
type Registry struct {
	mu    sync.RWMutex
	steps map[domain.Stage]Step
}

// NewRegistry создаёт пустой реестр.
func NewRegistry() *Registry {
	return &Registry{
		steps: make(map[domain.Stage]Step),
	}
}

// Config — зависимости стандартных стадий.
type Config struct {
	DefaultCity string
	Weather     WeatherConfig
	Image       ImageConfig
	Present     PresentConfig
}

// DefaultRegistry создаёт реестр со всеми четырьмя стадиями.
func DefaultRegistry(cfg Config) *Registry {
	r := NewRegistry()

	r.Register(NewInputStep(cfg.DefaultCity))
	r.Register(NewWeatherStep(cfg.Weather))
	r.Register(NewImageStep(cfg.Image))
	r.Register(NewPresentStep(cfg.Present))

	return r
}

// Register регистрирует шаг для его стадии.
// Если шаг для стадии уже существует, он будет перезаписан.
func (r *Registry) Register(step Step) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps[step.Stage()] = step
}

// Get возвращает шаг для стадии.
// Возвращает ErrStepNotFound, если шаг не зарегистрирован.
func (r *Registry) Get(stage domain.Stage) (Step, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	step, exists := r.steps[stage]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrStepNotFound, stage)
	}

	return step, nil
}

// Has проверяет, зарегистрирован ли шаг для стадии.
func (r *Registry) Has(stage domain.Stage) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.steps[stage]
	return exists
}

// Count возвращает количество зарегистрированных шагов.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.steps)
}

// Validate проверяет, что для каждой рабочей стадии есть шаг.
func (r *Registry) Validate() error {
	for _, stage := range domain.Stages() {
		if !r.Has(stage) {
			return fmt.Errorf("%w: %s", ErrStepNotFound, stage)
		}
	}
	return nil
}
