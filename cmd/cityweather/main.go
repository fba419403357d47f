// cityweather — инструмент командной строки: погода и фото города.
//
// Использование:
//
//	cityweather [--env FILE] [--api-url URL] [--json] <command> [CITY] [flags]
//
// Команды:
//
//	show   Один запуск pipeline
//	watch  Запуски по cron-расписанию
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shaiso/cityweather/internal/cli"
	"github.com/shaiso/cityweather/internal/config"
	"github.com/shaiso/cityweather/internal/pipeline"
	"github.com/shaiso/cityweather/internal/scheduler"
	"github.com/shaiso/cityweather/internal/telemetry"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var envFile string
	var apiURL string
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "cityweather",
		Short:         "cityweather — current weather and a photo of any city",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "Path to .env file (default $CITYWEATHER_ENV_FILE or ./.env)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Use a running cityweather-web server instead of calling the APIs directly")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	// Логи идут в stderr, stdout остаётся для результата
	logger := telemetry.SetupLoggerTo(os.Stderr)

	var cfg *config.Config
	loadConfig := func() (*config.Config, error) {
		if cfg != nil {
			return cfg, nil
		}
		c, err := config.Load(envFile)
		if err != nil {
			return nil, err
		}
		if missing := c.MissingCredentials(); len(missing) > 0 {
			logger.Warn("missing API credentials, upstream calls will fail", "keys", missing)
		}
		cfg = c
		return cfg, nil
	}

	deps := cli.Deps{
		Runner: func() (scheduler.Runner, error) {
			c, err := loadConfig()
			if err != nil {
				return nil, err
			}
			p, err := pipeline.NewFromConfig(c, nil, logger)
			if err != nil {
				return nil, err
			}
			return p, nil
		},
		Client: func() *cli.Client {
			if apiURL == "" {
				return nil
			}
			return cli.NewClient(apiURL)
		},
		Output: func() *cli.Output { return cli.NewOutput(jsonOutput) },
		WatchCron: func() string {
			if c, err := loadConfig(); err == nil {
				return c.Watch.Cron
			}
			return config.DefaultWatchCron
		},
	}

	rootCmd.AddCommand(
		cli.NewShowCmd(deps),
		cli.NewWatchCmd(deps),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cancel()
		os.Exit(1)
	}
}
