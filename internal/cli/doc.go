// Package cli реализует инструмент командной строки cityweather.
//
// # Обзор
//
// CLI запускает pipeline локально (по умолчанию) или обращается к
// запущенному веб-серверу через JSON API (флаг --api-url).
//
// # Ключевые компоненты
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Текст — подписанные строки, как на веб-странице (по умолчанию)
//   - JSON с отступами — с флагом --json
//
// Данные выводятся в stdout, сообщения и логи — в stderr.
// Это позволяет использовать pipe: cityweather show Paris --json | jq .
//
// ## Client
//
// HTTP-клиент для GET /api/v1/weather. Не импортирует internal/api.
//
// ## Commands
//
//   - show [CITY]  — один запуск; без аргумента спрашивает город в терминале
//   - watch [CITY] — повторные запуски по cron-расписанию
//
// Команды создаются фабричными функциями, принимающими замыкания для
// ленивого создания Runner, Client и Output после парсинга PersistentFlags.
package cli
