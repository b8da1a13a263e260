package extraction

import "ocrserver/units"

// Pipeline конвейер извлечения значения измерения из OCR-текста.
// Все четыре стадии — чистые функции над неизменяемым реестром, поэтому
// конвейер реентерабелен и безопасен для параллельных вызовов по
// независимым текстам без какой-либо координации.
type Pipeline struct {
	registry   *units.Registry
	matcher    *UnitMatcher
	normalizer *UnitNormalizer
}

// NewPipeline создает конвейер над реестром единиц. minScore <= 0
// означает порог нечёткого сопоставления по умолчанию.
func NewPipeline(registry *units.Registry, minScore float64) *Pipeline {
	return &Pipeline{
		registry:   registry,
		matcher:    NewUnitMatcher(registry, minScore),
		normalizer: NewUnitNormalizer(registry),
	}
}

// ExtractUnits выполняет первые три стадии: токенизацию, нечёткую
// коррекцию и нормализацию. Возвращает пары с каноническими единицами
// в порядке появления в тексте; непринятые токены отброшены.
func (p *Pipeline) ExtractUnits(text string) []CanonicalPair {
	var pairs []CanonicalPair
	for _, token := range Extract(text) {
		form, ok := p.matcher.Match(token.Unit)
		if !ok {
			continue
		}
		canonical := p.normalizer.Normalize(form)
		if canonical == "" {
			continue
		}
		pairs = append(pairs, CanonicalPair{Number: token.Number, Unit: canonical})
	}
	return pairs
}

// Predict возвращает каноническую строку "<число> <единица>" для
// запрошенного типа сущности или отсутствие результата, если текст не
// содержит пригодных измерений либо сущность неизвестна
func (p *Pipeline) Predict(text, entity string) (string, bool) {
	pairs := p.ExtractUnits(text)
	categorized := Convert(p.registry, pairs)
	return Select(p.registry, entity, categorized)
}
