package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shaiso/cityweather/internal/domain"
	"github.com/shaiso/cityweather/internal/telemetry"
)

// ImageConfig — конфигурация ImageStep.
type ImageConfig struct {
	BaseURL   string
	AccessKey string
	Client    *http.Client
	Metrics   *telemetry.Metrics
}

// ImageStep — стадия IMAGE: случайное фото города из Unsplash.
//
// Ответ (200):
//
//	{"urls": {"regular": "https://images.unsplash.com/..."}}
type ImageStep struct {
	baseURL   string
	accessKey string
	fetcher   fetcher
}

// NewImageStep создаёт ImageStep.
func NewImageStep(cfg ImageConfig) *ImageStep {
	client := cfg.Client
	if client == nil {
		client = NewHTTPClient(0)
	}
	return &ImageStep{
		baseURL:   cfg.BaseURL,
		accessKey: cfg.AccessKey,
		fetcher:   fetcher{api: "image", client: client, metrics: cfg.Metrics},
	}
}

// Stage возвращает стадию.
func (s *ImageStep) Stage() domain.Stage {
	return domain.StageImage
}

type imageResponse struct {
	URLs struct {
		Regular string `json:"regular"`
	} `json:"urls"`
}

// Execute ищет фото для req.Record.City.
func (s *ImageStep) Execute(ctx context.Context, req *Request) error {
	status, body, err := s.fetcher.get(ctx, s.requestURL(req.Record.City), maxResponseBody)
	if err != nil {
		return err
	}

	if status != http.StatusOK {
		telemetry.FromContext(ctx).Warn("image api error",
			"city", req.Record.City,
			"status", status,
			"body", truncate(string(body), 200),
		)
		req.Record.SetImageURL("")
		return nil
	}

	var data imageResponse
	if err := s.fetcher.decode(body, &data); err != nil {
		return err
	}
	if data.URLs.Regular == "" {
		return fmt.Errorf("%w: image: missing urls.regular", ErrMalformedResponse)
	}

	req.Record.SetImageURL(data.URLs.Regular)
	return nil
}

// requestURL строит URL запроса: query, client_id.
func (s *ImageStep) requestURL(city string) string {
	q := url.Values{}
	q.Set("query", city)
	q.Set("client_id", s.accessKey)
	return s.baseURL + "?" + q.Encode()
}
