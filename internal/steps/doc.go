// Package steps содержит реализации стадий pipeline.
//
// # Обзор
//
// Каждая стадия реализует интерфейс Step и отвечает за одну стадию
// domain.Stage. Стадии получают один и тот же *domain.Record и пишут
// только свои поля.
//
// # Стадии
//
// ## InputStep (COLLECT)
//
// Получает название города из Source. Пустой ввод заменяется городом
// по умолчанию ("New York"). Никогда не возвращает ошибку.
//
// ## WeatherStep (WEATHER)
//
// GET к OpenWeatherMap:
//
//	GET {base_url}?q={city}&appid={api_key}&units=metric
//
// 200 — температура, влажность, скорость ветра и описание копируются в Record.
// Любой другой код — погодные поля сбрасываются, Description получает
// domain.WeatherErrorDescription, WeatherFailure — причину по коду ответа.
//
// ## ImageStep (IMAGE)
//
// GET к Unsplash:
//
//	GET {base_url}?query={city}&client_id={access_key}
//
// 200 — ImageURL = urls.regular. Любой другой код — ImageURL = nil.
//
// ## PresentStep (PRESENT)
//
// Передаёт результат в Renderer: блок погоды или сообщение об ошибке,
// затем скачанное и декодированное фото с подписью-городом.
//
// # Ошибки
//
// Пакет различает два уровня ошибок:
//   - Ошибки API (не-200) — обрабатываются внутри стадии, pipeline продолжается
//   - Ошибки транспорта (сеть, битый JSON, не декодируемое фото) — возвращаются
//     как error (ErrTransport, ErrMalformedResponse, ErrImageDecode),
//     pipeline прерывается
//
// Retry нет ни на одном уровне.
package steps
