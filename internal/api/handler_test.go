package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaiso/cityweather/internal/pipeline"
	"github.com/shaiso/cityweather/internal/steps"
	"github.com/shaiso/cityweather/internal/telemetry"
)

// fakeRunner выполняет стадии поверх заранее заданных ответов.
type fakeRunner struct {
	err    error
	cities []string
}

func (f *fakeRunner) Run(ctx context.Context, src steps.Source, r steps.Renderer) (*pipeline.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	req := steps.NewRequest(src, r)
	if err := steps.NewInputStep("").Execute(ctx, req); err != nil {
		return nil, err
	}
	f.cities = append(f.cities, req.Record.City)
	if req.Record.City == "Paris" {
		req.Record.SetWeather(18.5, 60, 3.2, "clear sky")
	} else {
		req.Record.SetWeatherFailure("not_found")
	}
	if err := steps.NewPresentStep(steps.PresentConfig{}).Execute(ctx, req); err != nil {
		return nil, err
	}
	return &pipeline.Result{Record: req.Record}, nil
}

func newTestServer(t *testing.T, runner Runner) (*httptest.Server, *telemetry.Metrics) {
	t.Helper()
	metrics := telemetry.NewMetrics()
	h := NewHandler(Config{Runner: runner, Metrics: metrics, Logger: telemetry.Discard()})
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, metrics
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestIndex_FormOnly(t *testing.T) {
	runner := &fakeRunner{}
	ts, _ := newTestServer(t, runner)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "City Weather and Image Viewer")
	assert.Contains(t, body, `value="New York"`)
	assert.Contains(t, body, "Get Weather and Image")
	assert.Empty(t, runner.cities, "pipeline must not run without a button press")
}

func TestSubmit_Weather(t *testing.T) {
	runner := &fakeRunner{}
	ts, _ := newTestServer(t, runner)

	resp, err := http.PostForm(ts.URL+"/", url.Values{"city": {"Paris"}})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Weather in Paris")
	assert.Contains(t, body, "18.5°C")
	assert.Contains(t, body, "60%")
	assert.Contains(t, body, "3.2 m/s")
	assert.Contains(t, body, "clear sky")
	assert.NotContains(t, body, "Error:")
}

func TestSubmit_ErrorBranch(t *testing.T) {
	runner := &fakeRunner{}
	ts, _ := newTestServer(t, runner)

	resp, err := http.Get(ts.URL + "/?city=Zzzznotacity")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Error: City not found or API error")
	assert.NotContains(t, body, "Weather in")
}

func TestSubmit_EmptyCityUsesDefault(t *testing.T) {
	runner := &fakeRunner{}
	ts, _ := newTestServer(t, runner)

	resp, err := http.PostForm(ts.URL+"/", url.Values{"city": {""}})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, []string{"New York"}, runner.cities)
}

func TestSubmit_PipelineFailure(t *testing.T) {
	runner := &fakeRunner{err: fmt.Errorf("stage WEATHER: %w: weather: dial tcp", steps.ErrTransport)}
	ts, _ := newTestServer(t, runner)

	resp, err := http.PostForm(ts.URL+"/", url.Values{"city": {"Paris"}})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, "Request failed")
}

func TestGetWeather_JSON(t *testing.T) {
	ts, _ := newTestServer(t, &fakeRunner{})

	resp, err := http.Get(ts.URL + "/api/v1/weather?city=Paris")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var out struct {
		Data struct {
			City    string `json:"city"`
			Weather struct {
				Temperature float64 `json:"temperature"`
			} `json:"weather"`
			Record struct {
				Description string  `json:"description"`
				ImageURL    *string `json:"image_url"`
			} `json:"record"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Paris", out.Data.City)
	assert.Equal(t, 18.5, out.Data.Weather.Temperature)
	assert.Equal(t, "clear sky", out.Data.Record.Description)
	assert.Nil(t, out.Data.Record.ImageURL)
}

func TestGetWeather_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   ErrorCode
	}{
		{"transport", steps.ErrTransport, http.StatusBadGateway, ErrCodeUpstream},
		{"malformed", steps.ErrMalformedResponse, http.StatusBadGateway, ErrCodeUpstream},
		{"decode", steps.ErrImageDecode, http.StatusBadGateway, ErrCodeUpstream},
		{"too large", steps.ErrResponseTooLarge, http.StatusBadGateway, ErrCodeUpstream},
		{"cancelled", steps.ErrStepCancelled, http.StatusGatewayTimeout, ErrCodeTimeout},
		{"timeout", steps.ErrUpstreamTimeout, http.StatusGatewayTimeout, ErrCodeTimeout},
		{"unknown", io.ErrUnexpectedEOF, http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, _ := newTestServer(t, &fakeRunner{err: fmt.Errorf("stage X: %w", tt.err)})

			resp, err := http.Get(ts.URL + "/api/v1/weather?city=Paris")
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			var out ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			assert.Equal(t, tt.code, out.Error.Code)
		})
	}
}

func TestHealthAndMetrics(t *testing.T) {
	ts, metrics := newTestServer(t, &fakeRunner{})

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(readBody(t, resp), "ok "))

	resp, err = http.Get(ts.URL + "/api/v1/weather?city=Paris")
	require.NoError(t, err)
	resp.Body.Close()

	metrics.ObserveRun(telemetry.OutcomeSucceeded)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Contains(t, body, "cityweather_http_requests_total 1")
	assert.Contains(t, body, `cityweather_pipeline_runs_total{outcome="succeeded"} 1`)
}

// TestEndToEnd поднимает mock внешних API и реальный pipeline.
func TestEndToEnd(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	var photo bytes.Buffer
	require.NoError(t, png.Encode(&photo, img))

	var upstream *httptest.Server
	upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/weather":
			w.Write([]byte(`{"main":{"temp":18.5,"humidity":60},"wind":{"speed":3.2},"weather":[{"description":"clear sky"}]}`))
		case "/photos/random":
			fmt.Fprintf(w, `{"urls":{"regular":"%s/x.png"}}`, upstream.URL)
		case "/x.png":
			w.Write(photo.Bytes())
		default:
			http.NotFound(w, r)
		}
	}))
	defer upstream.Close()

	metrics := telemetry.NewMetrics()
	p, err := pipeline.New(pipeline.Config{
		Registry: steps.DefaultRegistry(steps.Config{
			Weather: steps.WeatherConfig{BaseURL: upstream.URL + "/weather", Metrics: metrics},
			Image:   steps.ImageConfig{BaseURL: upstream.URL + "/photos/random", Metrics: metrics},
			Present: steps.PresentConfig{Metrics: metrics},
		}),
		Metrics: metrics,
		Logger:  telemetry.Discard(),
	})
	require.NoError(t, err)

	ts, _ := newTestServer(t, p)

	resp, err := http.PostForm(ts.URL+"/", url.Values{"city": {"Paris"}})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Weather in Paris")
	assert.Contains(t, body, `src="data:image/png;base64,`)
	assert.Contains(t, body, "<figcaption>Paris</figcaption>")
}

func newRealPipeline(t *testing.T, weatherURL string, timeout time.Duration) *pipeline.Pipeline {
	t.Helper()
	client := steps.NewHTTPClient(timeout)
	p, err := pipeline.New(pipeline.Config{
		Registry: steps.DefaultRegistry(steps.Config{
			Weather: steps.WeatherConfig{BaseURL: weatherURL, APIKey: "SECRET-OWM-KEY", Client: client},
			Image:   steps.ImageConfig{BaseURL: weatherURL, AccessKey: "SECRET-UNSPLASH-KEY", Client: client},
			Present: steps.PresentConfig{Client: client},
		}),
		Logger: telemetry.Discard(),
	})
	require.NoError(t, err)
	return p
}

func TestUpstreamDown_DoesNotLeakCredentials(t *testing.T) {
	closed := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	weatherURL := closed.URL + "/weather"
	closed.Close()

	ts, _ := newTestServer(t, newRealPipeline(t, weatherURL, 0))

	resp, err := http.Get(ts.URL + "/api/v1/weather?city=Paris")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, string(ErrCodeUpstream))
	assert.NotContains(t, body, "SECRET-OWM-KEY")
	assert.NotContains(t, body, "appid")

	resp, err = http.PostForm(ts.URL+"/", url.Values{"city": {"Paris"}})
	require.NoError(t, err)
	body = readBody(t, resp)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.NotContains(t, body, "SECRET-OWM-KEY")
}

func TestUpstreamSlow_GatewayTimeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer slow.Close()

	ts, _ := newTestServer(t, newRealPipeline(t, slow.URL+"/weather", 50*time.Millisecond))

	resp, err := http.Get(ts.URL + "/api/v1/weather?city=Paris")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
	var out ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, ErrCodeTimeout, out.Error.Code)
	assert.NotContains(t, out.Error.Message, "SECRET-OWM-KEY")
}
