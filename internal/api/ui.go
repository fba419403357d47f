package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"
)

const (
	pageTitle = "City Weather and Image Viewer"
	pageIntro = "Get the current weather of any city along with a beautiful image of the location. " +
		"Simply enter the name of the city below, and hit the button to see the results!"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"num": formatNumber,
}).ParseFS(templateFS, "templates/index.html"))

// page — данные для шаблона index.html.
type page struct {
	Title   string
	Intro   string
	City    string // значение поля ввода
	View    *View
	Failure string
}

// Index показывает форму. Если в query есть city, сразу запускает pipeline.
// GET /?city=...
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("city") {
		h.renderPage(w, http.StatusOK, page{City: h.defaultCity})
		return
	}
	h.runPage(w, r, q.Get("city"))
}

// Submit запускает pipeline для города из формы.
// POST /
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderPage(w, http.StatusBadRequest, page{City: h.defaultCity, Failure: "invalid form"})
		return
	}
	h.runPage(w, r, r.PostFormValue("city"))
}

func (h *Handler) runPage(w http.ResponseWriter, r *http.Request, city string) {
	view, err := h.run(r.Context(), city)
	if err != nil {
		status, _ := classifyPipelineError(err)
		h.logger.Warn("pipeline failed", "city", city, "error", err)
		h.renderPage(w, status, page{City: city, Failure: err.Error()})
		return
	}
	h.renderPage(w, http.StatusOK, page{City: view.City, View: view})
}

// renderPage рендерит шаблон в буфер, чтобы ошибка шаблона не оставила полстраницы.
func (h *Handler) renderPage(w http.ResponseWriter, status int, p page) {
	p.Title = pageTitle
	p.Intro = pageIntro

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, p); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// GetWeather запускает pipeline и возвращает View в JSON.
// GET /api/v1/weather?city=...
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	view, err := h.run(r.Context(), r.URL.Query().Get("city"))
	if HandlePipelineError(w, h.logger, err) {
		return
	}
	Success(w, view)
}

// formatNumber печатает число без лишних нулей: 18.5, 60, 3.2.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
