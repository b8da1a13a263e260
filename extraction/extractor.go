// Package extraction реализует конвейер извлечения измерений из сырого
// OCR-текста: токенизация, нечёткая коррекция единиц, нормализация к
// каноническим именам, конвертация в базовую шкалу категории и выбор
// значения по правилу сущности.
package extraction

import "regexp"

// tokenPattern число (с необязательной десятичной частью), необязательные
// пробелы, затем буквенный кандидат в единицы. Буквы должны следовать
// сразу за числом: варианты вида "2 point 5 kg" или "kg 2.5" не
// распознаются, это сознательное ограничение исходного формата этикеток.
var tokenPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([a-zA-Z]+)`)

// RawToken пара "сырое число + кандидат в единицы", извлеченная из текста.
// Число хранится строкой: парсинг откладывается до конвертации, чтобы не
// терять исходную запись значения.
type RawToken struct {
	Number string
	Unit   string
}

// Extract сканирует текст слева направо и возвращает все пары
// число-единица в порядке появления. Текст без совпадений дает пустой
// результат, а не ошибку: отсутствие измерений — ординарный исход.
func Extract(text string) []RawToken {
	matches := tokenPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	tokens := make([]RawToken, 0, len(matches))
	for _, match := range matches {
		tokens = append(tokens, RawToken{Number: match[1], Unit: match[2]})
	}
	return tokens
}
