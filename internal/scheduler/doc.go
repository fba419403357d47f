// Package scheduler повторяет запуск pipeline по cron-расписанию.
//
// Каждый тик — отдельный запуск с новым Record. Если предыдущий запуск
// ещё не закончился, тик пропускается, так что два запуска никогда не
// выполняются одновременно.
//
// Структура:
//   - scheduler.go — Scheduler (Run, Tick)
//   - cron.go      — парсинг cron-выражений и вычисление следующего времени
//
// Использование:
//
//	sched, err := scheduler.New(scheduler.Config{
//	    Runner:   p,
//	    CronExpr: "*/10 * * * *",
//	    Source:   steps.StaticSource("Paris"),
//	    Renderer: func() steps.Renderer { return out.Renderer() },
//	    Logger:   logger,
//	})
//
//	// Блокируется до отмены ctx
//	err = sched.Run(ctx)
package scheduler
