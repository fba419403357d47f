// Package pipeline выполняет стадии в фиксированном порядке.
//
// Порядок задаётся таблицей переходов domain.Stage:
//
//	COLLECT → WEATHER → IMAGE → PRESENT
//
// Каждый вызов Run создаёт новый Record и новый run_id. Между вызовами
// ничего не сохраняется. Ошибка любой стадии прерывает запуск.
package pipeline
