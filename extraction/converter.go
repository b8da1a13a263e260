package extraction

import (
	"fmt"
	"strconv"

	"ocrserver/units"
)

// CanonicalPair сырое число и каноническая единица после нормализации
type CanonicalPair struct {
	Number string
	Unit   string
}

// Measurement измерение, приведенное к базовой шкале своей категории.
// Живет в пределах одного прогона конвейера и нигде не сохраняется.
type Measurement struct {
	Magnitude float64
	Unit      string
	BaseValue float64
	Display   string
}

// Categorized измерения, сгруппированные по категориям. Все пять категорий
// присутствуют всегда, в том числе с пустыми списками.
type Categorized map[units.Category][]Measurement

// Convert парсит числа, приводит каждую пару к базовой шкале её категории
// и группирует результат по категориям. Пары с некатегоризированной
// единицей либо с числом, не являющимся положительным вещественным,
// молча отбрасываются: конвейер работает по шумному входу и одна плохая
// пара не должна мешать остальным.
func Convert(registry *units.Registry, pairs []CanonicalPair) Categorized {
	categorized := make(Categorized, len(units.Categories))
	for _, category := range units.Categories {
		categorized[category] = []Measurement{}
	}

	for _, pair := range pairs {
		category, ok := registry.CategoryOf(pair.Unit)
		if !ok {
			continue
		}
		factor, ok := registry.Factor(pair.Unit)
		if !ok {
			continue
		}

		magnitude, err := strconv.ParseFloat(pair.Number, 64)
		if err != nil || magnitude <= 0 {
			continue
		}

		categorized[category] = append(categorized[category], Measurement{
			Magnitude: magnitude,
			Unit:      pair.Unit,
			BaseValue: magnitude * factor,
			Display:   fmt.Sprintf("%s %s", pair.Number, pair.Unit),
		})
	}

	return categorized
}

// Select возвращает отображаемое значение для типа сущности по правилу
// выбора: экстремум базовой шкалы в категории правила. Неизвестная
// сущность и пустая категория дают отсутствие результата — это ожидаемый
// исход, а не ошибка. Ничьи по экстремуму разрешаются порядком появления
// измерений, то есть порядком извлечения из текста.
func Select(registry *units.Registry, entity string, categorized Categorized) (string, bool) {
	rule, ok := registry.Rule(entity)
	if !ok {
		return "", false
	}

	measurements := categorized[rule.Category]
	if len(measurements) == 0 {
		return "", false
	}

	best := measurements[0]
	for _, m := range measurements[1:] {
		switch rule.Direction {
		case units.TakeMaximum:
			if m.BaseValue > best.BaseValue {
				best = m
			}
		case units.TakeMinimum:
			if m.BaseValue < best.BaseValue {
				best = m
			}
		}
	}

	return best.Display, true
}
