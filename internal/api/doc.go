// Package api содержит HTTP сервер: HTML-интерфейс и JSON API.
//
// Структура:
//   - handler.go    — Handler с DI (pipeline, metrics, logger)
//   - routes.go     — регистрация маршрутов
//   - middleware.go — middleware (logging, recovery, metrics)
//   - response.go   — унифицированные JSON-ответы и обработка ошибок
//   - dto.go        — View: результат запуска для HTML и JSON
//   - ui.go         — HTML-страница (форма + результат)
//
// Каждый запрос, запускающий pipeline, создаёт новый Record.
package api
