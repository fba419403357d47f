package steps

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/shaiso/cityweather/internal/domain"
	"github.com/shaiso/cityweather/internal/telemetry"
)

// Picture — скачанное и декодированное фото.
type Picture struct {
	// Caption — подпись (название города).
	Caption string

	// URL — откуда скачано фото.
	URL string

	// Format — формат, определённый декодером: "jpeg", "png", "gif".
	Format string

	// Width, Height — размеры в пикселях.
	Width  int
	Height int

	// Data — исходные байты фото.
	Data []byte
}

// ContentType возвращает MIME-тип по формату.
func (p Picture) ContentType() string {
	return "image/" + p.Format
}

// Renderer — куда выводится результат запуска.
type Renderer interface {
	// Weather выводит данные о погоде. Вызывается, если rec.HasWeather().
	Weather(rec *domain.Record)

	// Error выводит сообщение об ошибке. Вызывается, если погоды нет.
	Error(message string)

	// Image выводит фото с подписью.
	Image(pic Picture)
}

// PresentConfig — конфигурация PresentStep.
type PresentConfig struct {
	Client  *http.Client
	Metrics *telemetry.Metrics
}

// PresentStep — стадия PRESENT.
type PresentStep struct {
	fetcher fetcher
}

// NewPresentStep создаёт PresentStep.
func NewPresentStep(cfg PresentConfig) *PresentStep {
	client := cfg.Client
	if client == nil {
		client = NewHTTPClient(0)
	}
	return &PresentStep{
		fetcher: fetcher{api: "image_download", client: client, metrics: cfg.Metrics},
	}
}

// Stage возвращает стадию.
func (s *PresentStep) Stage() domain.Stage {
	return domain.StagePresent
}

// Execute выводит Record в req.Renderer.
//
// Ошибка скачивания или декодирования фото прерывает запуск.
// Блок погоды или ошибки к этому моменту уже выведен.
func (s *PresentStep) Execute(ctx context.Context, req *Request) error {
	rec := req.Record
	r := req.Renderer
	if r == nil {
		r = nopRenderer{}
	}

	if rec.HasWeather() {
		r.Weather(rec)
	} else {
		r.Error(rec.Description)
	}

	if !rec.HasImage() {
		return nil
	}

	pic, err := s.download(ctx, *rec.ImageURL)
	if err != nil {
		return err
	}
	pic.Caption = rec.City
	r.Image(pic)
	return nil
}

// download скачивает и декодирует фото.
func (s *PresentStep) download(ctx context.Context, url string) (Picture, error) {
	status, body, err := s.fetcher.get(ctx, url, maxImageBody)
	if err != nil {
		return Picture{}, err
	}
	if status != http.StatusOK {
		return Picture{}, fmt.Errorf("%w: HTTP %d from %s", ErrImageDecode, status, url)
	}

	img, format, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return Picture{}, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	bounds := img.Bounds()
	return Picture{
		URL:    url,
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Data:   body,
	}, nil
}

// nopRenderer — Renderer, который ничего не выводит.
type nopRenderer struct{}

func (nopRenderer) Weather(*domain.Record) {}
func (nopRenderer) Error(string)           {}
func (nopRenderer) Image(Picture)          {}
