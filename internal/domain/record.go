package domain

// WeatherErrorDescription — текст, который Weather Fetcher записывает в Description,
// когда API погоды ответило не 200.
const WeatherErrorDescription = "City not found or API error"

// DefaultCity — город, который используется, если пользователь ничего не ввёл.
const DefaultCity = "New York"

// Record — запись, которая проходит через все стадии pipeline.
//
// Record создаётся с нулевыми значениями на каждый запуск и передаётся
// стадиям по очереди. Каждая стадия пишет только свои поля:
//   - Input Collector — City
//   - Weather Fetcher — Temperature, Humidity, WindSpeed, Description, WeatherFailure
//   - Image Fetcher — ImageURL
//
// Nil-указатель означает отсутствие значения.
type Record struct {
	// City — название города. Не валидируется.
	City string `json:"city"`

	// Temperature — температура в °C.
	Temperature *float64 `json:"temperature"`

	// Humidity — влажность в %.
	Humidity *float64 `json:"humidity"`

	// WindSpeed — скорость ветра в м/с.
	WindSpeed *float64 `json:"wind_speed"`

	// Description — описание погоды или WeatherErrorDescription.
	Description string `json:"description"`

	// ImageURL — ссылка на фото города. Nil, если фото не найдено.
	ImageURL *string `json:"image_url"`

	// WeatherFailure — причина ошибки API погоды. Пусто при успехе.
	// Description при этом остаётся общим (WeatherErrorDescription).
	WeatherFailure FailureKind `json:"weather_failure,omitempty"`
}

// HasWeather возвращает true, если данные о погоде получены.
// Presenter показывает ошибку тогда и только тогда, когда HasWeather() == false.
func (r *Record) HasWeather() bool {
	return r.Temperature != nil
}

// HasImage возвращает true, если есть ссылка на фото.
func (r *Record) HasImage() bool {
	return r.ImageURL != nil && *r.ImageURL != ""
}

// SetWeather записывает успешный ответ API погоды.
func (r *Record) SetWeather(temp, humidity, windSpeed float64, description string) {
	r.Temperature = &temp
	r.Humidity = &humidity
	r.WindSpeed = &windSpeed
	r.Description = description
	r.WeatherFailure = ""
}

// SetWeatherFailure сбрасывает погодные поля и записывает общий текст ошибки.
func (r *Record) SetWeatherFailure(kind FailureKind) {
	r.Temperature = nil
	r.Humidity = nil
	r.WindSpeed = nil
	r.Description = WeatherErrorDescription
	r.WeatherFailure = kind
}

// SetImageURL записывает ссылку на фото. Пустая строка означает отсутствие фото.
func (r *Record) SetImageURL(url string) {
	if url == "" {
		r.ImageURL = nil
		return
	}
	r.ImageURL = &url
}

// FailureKind — причина ошибки внешнего API.
type FailureKind string

const (
	// FailureNotFound — город не найден (404).
	FailureNotFound FailureKind = "not_found"

	// FailureUnauthorized — неверный или отсутствующий ключ (401, 403).
	FailureUnauthorized FailureKind = "unauthorized"

	// FailureRateLimited — превышена квота (429).
	FailureRateLimited FailureKind = "rate_limited"

	// FailureUpstream — любой другой не-200 ответ.
	FailureUpstream FailureKind = "upstream"
)

// ClassifyStatus определяет FailureKind по HTTP-коду ответа.
func ClassifyStatus(status int) FailureKind {
	switch status {
	case 404:
		return FailureNotFound
	case 401, 403:
		return FailureUnauthorized
	case 429:
		return FailureRateLimited
	default:
		return FailureUpstream
	}
}
