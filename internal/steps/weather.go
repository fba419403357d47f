package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shaiso/cityweather/internal/domain"
	"github.com/shaiso/cityweather/internal/telemetry"
)

// WeatherConfig — конфигурация WeatherStep.
type WeatherConfig struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Metrics *telemetry.Metrics
}

// WeatherStep — стадия WEATHER: текущая погода из OpenWeatherMap.
//
// Ответ (200):
//
//	{
//	    "main": {"temp": 18.5, "humidity": 60},
//	    "wind": {"speed": 3.2},
//	    "weather": [{"description": "clear sky"}]
//	}
type WeatherStep struct {
	baseURL string
	apiKey  string
	fetcher fetcher
}

// NewWeatherStep создаёт WeatherStep.
func NewWeatherStep(cfg WeatherConfig) *WeatherStep {
	client := cfg.Client
	if client == nil {
		client = NewHTTPClient(0)
	}
	return &WeatherStep{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		fetcher: fetcher{api: "weather", client: client, metrics: cfg.Metrics},
	}
}

// Stage возвращает стадию.
func (s *WeatherStep) Stage() domain.Stage {
	return domain.StageWeather
}

// weatherResponse — нужные поля ответа OpenWeatherMap.
// Указатели позволяют отличить отсутствующее поле от нуля.
type weatherResponse struct {
	Main *struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// Execute запрашивает погоду для req.Record.City.
func (s *WeatherStep) Execute(ctx context.Context, req *Request) error {
	logger := telemetry.FromContext(ctx)

	status, body, err := s.fetcher.get(ctx, s.requestURL(req.Record.City), maxResponseBody)
	if err != nil {
		return err
	}

	if status != http.StatusOK {
		kind := domain.ClassifyStatus(status)
		logger.Warn("weather api error",
			"city", req.Record.City,
			"status", status,
			"failure", kind,
			"body", truncate(string(body), 200),
		)
		req.Record.SetWeatherFailure(kind)
		return nil
	}

	var data weatherResponse
	if err := s.fetcher.decode(body, &data); err != nil {
		return err
	}
	if data.Main == nil || data.Main.Temp == nil || data.Main.Humidity == nil {
		return fmt.Errorf("%w: weather: missing main.temp or main.humidity", ErrMalformedResponse)
	}
	if data.Wind == nil || data.Wind.Speed == nil {
		return fmt.Errorf("%w: weather: missing wind.speed", ErrMalformedResponse)
	}
	if len(data.Weather) == 0 {
		return fmt.Errorf("%w: weather: empty weather list", ErrMalformedResponse)
	}

	req.Record.SetWeather(*data.Main.Temp, *data.Main.Humidity, *data.Wind.Speed, data.Weather[0].Description)
	return nil
}

// requestURL строит URL запроса: q, appid, units=metric.
func (s *WeatherStep) requestURL(city string) string {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", s.apiKey)
	q.Set("units", "metric")
	return s.baseURL + "?" + q.Encode()
}
