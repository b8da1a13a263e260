package extraction

import (
	"strings"

	"ocrserver/units"
)

// UnitNormalizer приводит принятую поверхностную форму к каноническому
// имени единицы
type UnitNormalizer struct {
	registry *units.Registry
}

// NewUnitNormalizer создает нормализатор над реестром единиц
func NewUnitNormalizer(registry *units.Registry) *UnitNormalizer {
	return &UnitNormalizer{registry: registry}
}

// Normalize возвращает каноническое имя единицы для поверхностной формы
// или пустую строку, если форму не признаёт ни одна единица. Ниже по
// конвейеру после матчера пустой результат означает расхождение словарей
// матчера и нормализатора; оба представления выводятся из одного реестра,
// так что это логическая ошибка, а не свойство входа.
func (un *UnitNormalizer) Normalize(surface string) string {
	return un.registry.Canonical(cleanSurface(surface))
}

// cleanSurface приводит форму к нижнему регистру и схлопывает серии
// пробельных символов в одиночные пробелы
func cleanSurface(surface string) string {
	return strings.Join(strings.Fields(strings.ToLower(surface)), " ")
}
