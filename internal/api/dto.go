package api

import (
	"encoding/base64"
	"html/template"

	"github.com/google/uuid"

	"github.com/shaiso/cityweather/internal/domain"
	"github.com/shaiso/cityweather/internal/pipeline"
	"github.com/shaiso/cityweather/internal/steps"
)

// View — результат запуска pipeline для HTML и JSON.
//
// View реализует steps.Renderer: PresentStep заполняет блоки Conditions,
// Message и Photo, после чего Bind добавляет запись и run_id.
type View struct {
	RunID      uuid.UUID      `json:"run_id"`
	City       string         `json:"city"`
	Conditions *WeatherBlock  `json:"weather,omitempty"`
	Message    string         `json:"error,omitempty"`
	Photo      *ImageBlock    `json:"image,omitempty"`
	Record     *domain.Record `json:"record"`
}

// WeatherBlock — данные о погоде.
type WeatherBlock struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Description string  `json:"description"`
}

// ImageBlock — фото города.
type ImageBlock struct {
	Caption string `json:"caption"`
	URL     string `json:"url"`
	Format  string `json:"format"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`

	// DataURI — фото, встроенное в страницу. В JSON не отдаётся.
	DataURI template.URL `json:"-"`
}

// Weather реализует steps.Renderer.
func (v *View) Weather(rec *domain.Record) {
	v.City = rec.City
	v.Conditions = &WeatherBlock{
		Temperature: *rec.Temperature,
		Humidity:    *rec.Humidity,
		WindSpeed:   *rec.WindSpeed,
		Description: rec.Description,
	}
}

// Error реализует steps.Renderer.
func (v *View) Error(message string) {
	v.Message = message
}

// Image реализует steps.Renderer.
func (v *View) Image(pic steps.Picture) {
	v.Photo = &ImageBlock{
		Caption: pic.Caption,
		URL:     pic.URL,
		Format:  pic.Format,
		Width:   pic.Width,
		Height:  pic.Height,
		DataURI: template.URL("data:" + pic.ContentType() + ";base64," + base64.StdEncoding.EncodeToString(pic.Data)),
	}
}

// Bind добавляет в View итог запуска.
func (v *View) Bind(res *pipeline.Result) {
	v.RunID = res.RunID
	v.Record = res.Record
	v.City = res.Record.City
}
