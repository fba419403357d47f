// cityweather-web — веб-интерфейс: форма ввода города, страница с погодой
// и фото, JSON API, /healthz и /metrics.
//
// Использование:
//
//	cityweather-web [--env FILE] [--port PORT]
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/shaiso/cityweather/internal/api"
	"github.com/shaiso/cityweather/internal/config"
	"github.com/shaiso/cityweather/internal/pipeline"
	"github.com/shaiso/cityweather/internal/telemetry"
)

func main() {
	envFile := flag.String("env", "", "Path to .env file (default $CITYWEATHER_ENV_FILE or ./.env)")
	port := flag.String("port", "", "Listen port (default $WEB_PORT or 8080)")
	flag.Parse()

	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting cityweather-web")

	cfg, err := config.Load(*envFile)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Web.Port = *port
	}
	if missing := cfg.MissingCredentials(); len(missing) > 0 {
		logger.Warn("missing API credentials, upstream calls will fail", "keys", missing)
	}

	metrics := telemetry.NewMetrics()

	p, err := pipeline.NewFromConfig(cfg, metrics, logger)
	if err != nil {
		logger.Error("failed to build pipeline", "error", err)
		os.Exit(1)
	}

	handler := api.NewHandler(api.Config{
		Runner:      p,
		Metrics:     metrics,
		Logger:      logger,
		DefaultCity: cfg.DefaultCity,
	})

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	addr := cfg.Addr()

	// Создаём HTTP сервер с возможностью graceful shutdown
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Ожидаем сигнал завершения
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	<-ctx.Done()
	logger.Info("shutting down")

	// Запрос может ждать до трёх внешних вызовов, даём ему завершиться
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout+5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("stopped")
}
