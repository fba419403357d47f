package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/shaiso/cityweather/internal/scheduler"
	"github.com/shaiso/cityweather/internal/steps"
)

// CityPrompt — приглашение ввода, если город не передан аргументом.
const CityPrompt = "Enter the name of the city: "

// Deps — ленивые зависимости команд. Вызываются в RunE, после парсинга флагов.
type Deps struct {
	// Runner собирает локальный pipeline.
	Runner func() (scheduler.Runner, error)

	// Client возвращает клиент API или nil, если --api-url не задан.
	Client func() *Client

	Output func() *Output

	// WatchCron — расписание по умолчанию для watch.
	WatchCron func() string
}

// NewShowCmd создаёт команду show.
func NewShowCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [CITY]",
		Short: "Show current weather and a photo of a city",
		Long: `Show fetches the current weather and a photo of the city.

Without CITY the command asks for it in the terminal.
An empty answer means "New York".`,
		Example: `  cityweather show Paris
  cityweather show "Rio de Janeiro" --json
  cityweather show --api-url http://localhost:8080 Tokyo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := deps.Output()
			src := citySource(cmd, args)

			if deps.Client != nil {
				if client := deps.Client(); client != nil {
					resp, err := client.Weather(cmd.Context(), src.City())
					if err != nil {
						return err
					}
					out.Remote(resp)
					return nil
				}
			}

			runner, err := deps.Runner()
			if err != nil {
				return err
			}

			res, err := runner.Run(cmd.Context(), src, out.Renderer())
			if err != nil {
				return err
			}
			out.Result(res)
			return nil
		},
	}

	return cmd
}

// citySource — аргументы команды или запрос в терминале.
func citySource(cmd *cobra.Command, args []string) steps.Source {
	if len(args) > 0 {
		return steps.StaticSource(strings.Join(args, " "))
	}
	return steps.PromptSource{
		In:     cmd.InOrStdin(),
		Out:    cmd.ErrOrStderr(),
		Prompt: CityPrompt,
	}
}
