package domain

// Stage — стадия pipeline.
//
// Жизненный цикл:
//
//	START → COLLECT → WEATHER → IMAGE → PRESENT → END
//
// Альтернативных переходов нет. Ошибка транспорта на любой стадии
// прерывает запуск.
type Stage string

const (
	// StageStart — запуск создан, Record пустой.
	StageStart Stage = "START"

	// StageCollect — получение названия города.
	StageCollect Stage = "COLLECT"

	// StageWeather — запрос к API погоды.
	StageWeather Stage = "WEATHER"

	// StageImage — запрос к API фотографий.
	StageImage Stage = "IMAGE"

	// StagePresent — отображение результата.
	StagePresent Stage = "PRESENT"

	// StageEnd — запуск завершён.
	StageEnd Stage = "END"
)

// transitions — таблица переходов между стадиями.
var transitions = map[Stage]Stage{
	StageStart:   StageCollect,
	StageCollect: StageWeather,
	StageWeather: StageImage,
	StageImage:   StagePresent,
	StagePresent: StageEnd,
}

// Next возвращает следующую стадию. Для StageEnd и неизвестных стадий возвращает StageEnd.
func (s Stage) Next() Stage {
	if next, ok := transitions[s]; ok {
		return next
	}
	return StageEnd
}

// IsTerminal возвращает true для финальной стадии.
func (s Stage) IsTerminal() bool {
	return s == StageEnd
}

// String возвращает строковое представление Stage.
func (s Stage) String() string {
	return string(s)
}

// Stages возвращает рабочие стадии в порядке выполнения (без START и END).
func Stages() []Stage {
	var out []Stage
	for s := StageStart.Next(); !s.IsTerminal(); s = s.Next() {
		out = append(out, s)
	}
	return out
}
