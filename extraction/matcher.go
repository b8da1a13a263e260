package extraction

import (
	"ocrserver/extraction/algorithms"
	"ocrserver/units"
)

// DefaultMinScore порог принятия нечёткого совпадения по шкале 0-100.
// OCR вносит посимвольный шум ("ka" вместо "kg", "mI" вместо "ml");
// почти точное сопоставление восстанавливает такие единицы, отбрасывая
// посторонние короткие слова ("the", "Box").
const DefaultMinScore = 95.0

// UnitMatcher нечётко сопоставляет сырой токен со словарём поверхностных
// форм реестра единиц
type UnitMatcher struct {
	vocabulary []string
	matcher    *algorithms.Matcher
	minScore   float64
}

// NewUnitMatcher создает матчер над словарём реестра. minScore <= 0
// означает порог по умолчанию.
func NewUnitMatcher(registry *units.Registry, minScore float64) *UnitMatcher {
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	return &UnitMatcher{
		vocabulary: registry.SurfaceForms(),
		matcher:    algorithms.NewMatcher(nil),
		minScore:   minScore,
	}
}

// Match возвращает принятую поверхностную форму для сырого токена.
// Токены ниже порога схожести отбрасываются без ошибки.
func (um *UnitMatcher) Match(rawUnit string) (string, bool) {
	form, _, ok := um.matcher.BestMatch(rawUnit, um.vocabulary, um.minScore)
	return form, ok
}
