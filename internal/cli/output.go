package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shaiso/cityweather/internal/domain"
	"github.com/shaiso/cityweather/internal/pipeline"
	"github.com/shaiso/cityweather/internal/steps"
)

// Output управляет форматированием вывода CLI.
type Output struct {
	jsonMode bool
	w        io.Writer // stdout для данных
	errW     io.Writer // stderr для сообщений
}

// NewOutput создаёт Output. Если jsonMode=true, данные выводятся в JSON.
func NewOutput(jsonMode bool) *Output {
	return NewOutputTo(jsonMode, os.Stdout, os.Stderr)
}

// NewOutputTo создаёт Output с заданными writer'ами.
func NewOutputTo(jsonMode bool, w, errW io.Writer) *Output {
	return &Output{
		jsonMode: jsonMode,
		w:        w,
		errW:     errW,
	}
}

// Renderer возвращает Renderer для PresentStep.
// В JSON режиме PresentStep ничего не печатает, печатается только итоговый Record.
func (o *Output) Renderer() steps.Renderer {
	if o.jsonMode {
		return nil
	}
	return &textRenderer{w: o.w}
}

// Result выводит итог локального запуска. В текстовом режиме всё уже
// напечатано Renderer'ом.
func (o *Output) Result(res *pipeline.Result) {
	if !o.jsonMode {
		return
	}
	o.JSON(recordOutput{RunID: res.RunID.String(), Record: res.Record})
}

// Remote выводит ответ веб-сервера.
func (o *Output) Remote(resp *WeatherResponse) {
	if o.jsonMode {
		o.JSON(resp)
		return
	}
	if resp.Weather != nil {
		writeWeather(o.w, resp.City, resp.Weather.Temperature, resp.Weather.Humidity, resp.Weather.WindSpeed, resp.Weather.Description)
	} else {
		writeError(o.w, resp.Error)
	}
	if img := resp.Image; img != nil {
		writeImage(o.w, img.Caption, img.Format, img.Width, img.Height, img.URL)
	}
}

// JSON выводит данные в формате JSON с отступами.
func (o *Output) JSON(v any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// Success выводит сообщение об успехе в stderr.
func (o *Output) Success(msg string) {
	fmt.Fprintln(o.errW, msg)
}

// Error выводит сообщение об ошибке в stderr.
func (o *Output) Error(msg string) {
	fmt.Fprintln(o.errW, "Error: "+msg)
}

// Separator печатает разделитель между запусками в watch режиме.
func (o *Output) Separator() {
	if !o.jsonMode {
		fmt.Fprintln(o.w, "---")
	}
}

type recordOutput struct {
	RunID  string         `json:"run_id"`
	Record *domain.Record `json:"record"`
}

// textRenderer печатает результат подписанными строками.
type textRenderer struct {
	w io.Writer
}

func (r *textRenderer) Weather(rec *domain.Record) {
	writeWeather(r.w, rec.City, *rec.Temperature, *rec.Humidity, *rec.WindSpeed, rec.Description)
}

func (r *textRenderer) Error(message string) {
	writeError(r.w, message)
}

func (r *textRenderer) Image(pic steps.Picture) {
	writeImage(r.w, pic.Caption, pic.Format, pic.Width, pic.Height, pic.URL)
}

func writeWeather(w io.Writer, city string, temp, humidity, wind float64, description string) {
	fmt.Fprintf(w, "Weather in %s\n", city)
	fmt.Fprintf(w, "Temperature: %s°C\n", num(temp))
	fmt.Fprintf(w, "Humidity: %s%%\n", num(humidity))
	fmt.Fprintf(w, "Wind Speed: %s m/s\n", num(wind))
	fmt.Fprintf(w, "Description: %s\n", description)
}

func writeError(w io.Writer, message string) {
	fmt.Fprintf(w, "Error: %s\n", message)
}

func writeImage(w io.Writer, caption, format string, width, height int, url string) {
	fmt.Fprintf(w, "Image: %s (%s, %dx%d) %s\n", caption, format, width, height, url)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
