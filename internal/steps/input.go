package steps

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shaiso/cityweather/internal/domain"
)

// Source — источник названия города.
type Source interface {
	// City возвращает то, что ввёл пользователь. Пустая строка — пользователь ничего не ввёл.
	City() string
}

// StaticSource — название города, уже полученное от пользователя
// (поле формы, аргумент CLI).
type StaticSource string

// City возвращает строку как есть.
func (s StaticSource) City() string {
	return string(s)
}

// PromptSource спрашивает название города в терминале.
type PromptSource struct {
	In     io.Reader
	Out    io.Writer
	Prompt string
}

// City печатает приглашение и читает одну строку.
// Ошибка чтения (например, EOF) трактуется как пустой ввод.
func (p PromptSource) City() string {
	if p.Out != nil && p.Prompt != "" {
		fmt.Fprint(p.Out, p.Prompt)
	}
	if p.In == nil {
		return ""
	}
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimRight(line, "\r\n")
}

// InputStep — стадия COLLECT.
type InputStep struct {
	defaultCity string
}

// NewInputStep создаёт InputStep. Пустой defaultCity заменяется на domain.DefaultCity.
func NewInputStep(defaultCity string) *InputStep {
	if defaultCity == "" {
		defaultCity = domain.DefaultCity
	}
	return &InputStep{defaultCity: defaultCity}
}

// Stage возвращает стадию.
func (s *InputStep) Stage() domain.Stage {
	return domain.StageCollect
}

// Execute записывает название города в Record. Не валидирует и не возвращает ошибок.
func (s *InputStep) Execute(_ context.Context, req *Request) error {
	city := ""
	if req.Source != nil {
		city = req.Source.City()
	}
	if city == "" {
		city = s.defaultCity
	}
	req.Record.City = city
	return nil
}
