package steps

import (
	"context"
	"errors"

	"github.com/shaiso/cityweather/internal/domain"
)

// Ошибки стадий.
var (
	// ErrStepNotFound — стадия не найдена в реестре.
	ErrStepNotFound = errors.New("step not found")

	// ErrTransport — запрос не дошёл до API или ответ не прочитан.
	ErrTransport = errors.New("transport failure")

	// ErrMalformedResponse — API ответило 200, но тело не соответствует ожидаемому.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrImageDecode — скачанное фото не удалось декодировать.
	ErrImageDecode = errors.New("image decode failed")

	// ErrUpstreamTimeout — внешний API не ответил за HTTP_TIMEOUT.
	ErrUpstreamTimeout = errors.New("upstream timeout")

	// ErrResponseTooLarge — ответ внешнего API больше допустимого размера.
	ErrResponseTooLarge = errors.New("response too large")

	// ErrStepCancelled — выполнение стадии отменено.
	ErrStepCancelled = errors.New("step execution cancelled")
)

// Step — интерфейс стадии pipeline.
type Step interface {
	// Stage возвращает стадию, за которую отвечает шаг.
	Stage() domain.Stage

	// Execute выполняет стадию над req.Record.
	// Шаг должен учитывать ctx.Done() для graceful shutdown.
	Execute(ctx context.Context, req *Request) error
}

// Request — входные данные для выполнения стадии.
type Request struct {
	// Record — запись текущего запуска. Стадия владеет ей на время Execute.
	Record *domain.Record

	// Source — откуда InputStep берёт название города.
	Source Source

	// Renderer — куда PresentStep выводит результат.
	Renderer Renderer
}

// NewRequest создаёт Request с пустым Record.
func NewRequest(src Source, r Renderer) *Request {
	return &Request{
		Record:   &domain.Record{},
		Source:   src,
		Renderer: r,
	}
}
