package steps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/shaiso/cityweather/internal/telemetry"
)

const (
	// Значения по умолчанию.
	defaultHTTPTimeout = 30 * time.Second
	maxResponseBody    = 10 * 1024 * 1024 // 10 MB
	maxImageBody       = 32 * 1024 * 1024 // 32 MB
)

// NewHTTPClient создаёт HTTP клиент для запросов к внешним API.
// timeout <= 0 означает таймаут по умолчанию (30s).
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

// fetcher выполняет GET запросы к одному внешнему API.
type fetcher struct {
	api     string // метка для метрик и логов: "weather", "image"
	client  *http.Client
	metrics *telemetry.Metrics
}

// get выполняет GET и возвращает код ответа и тело.
//
// Любой ответ сервера (включая 4xx/5xx) — не ошибка.
// Ошибка возвращается только если ответ не получен или не прочитан.
// В тексте ошибки URL без query: там лежат ключи API.
func (f *fetcher) get(ctx context.Context, rawURL string, limit int64) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s: create request: %v", ErrTransport, f.api, unwrapURLError(err))
	}
	req.Header.Set("Accept", "application/json")

	target := redactURL(req.URL)

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, nil, f.failure(ctx, target, err)
	}
	defer resp.Body.Close()

	f.metrics.ObserveUpstream(f.api, resp.StatusCode)

	// Читаем на байт больше лимита, чтобы отличить обрезанный ответ
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return resp.StatusCode, nil, f.failure(ctx, target, err)
	}
	if int64(len(body)) > limit {
		return resp.StatusCode, nil, fmt.Errorf("%w: %s: %s: more than %d bytes", ErrResponseTooLarge, f.api, target, limit)
	}

	return resp.StatusCode, body, nil
}

// failure классифицирует ошибку запроса или чтения ответа.
func (f *fetcher) failure(ctx context.Context, target string, err error) error {
	cause := unwrapURLError(err)

	switch {
	case ctx.Err() != nil:
		return fmt.Errorf("%w: %s: %s: %v", ErrStepCancelled, f.api, target, ctx.Err())
	case isTimeout(err):
		return fmt.Errorf("%w: %s: %s: %v", ErrUpstreamTimeout, f.api, target, cause)
	default:
		return fmt.Errorf("%w: %s: %s: %v", ErrTransport, f.api, target, cause)
	}
}

// unwrapURLError снимает *url.Error: его текст содержит полный URL запроса.
func unwrapURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}

// isTimeout — сработал таймаут http.Client или дедлайн соединения.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}

// redactURL возвращает URL без query, fragment и userinfo.
func redactURL(u *url.URL) string {
	r := *u
	r.RawQuery = ""
	r.ForceQuery = false
	r.Fragment = ""
	r.RawFragment = ""
	r.User = nil
	return r.String()
}

// decode парсит JSON ответа в v.
func (f *fetcher) decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, f.api, err)
	}
	return nil
}

// truncate обрезает строку до указанной длины.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
