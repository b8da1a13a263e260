package units

import (
	"fmt"
	"sync"
)

// Registry неизменяемый реестр единиц измерения. Строится один раз при
// старте процесса и далее только читается, поэтому безопасен для
// конкурентного использования без синхронизации. Нечёткий матчер и
// нормализатор получают свои представления словаря из одного реестра,
// что исключает расхождение их словарей.
type Registry struct {
	entries            []unitEntry
	surfaceForms       []string
	canonicalBySurface map[string]string
	factors            map[string]float64
	categoryOf         map[string]Category
	rules              map[string]SelectionRule
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default возвращает общий реестр процесса. Таблицы словаря статичны,
// поэтому нарушение инвариантов здесь — ошибка программирования,
// а не входных данных.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		registry, err := NewRegistry()
		if err != nil {
			panic(fmt.Sprintf("units: invalid built-in vocabulary: %v", err))
		}
		defaultRegistry = registry
	})
	return defaultRegistry
}

// NewRegistry собирает реестр из встроенных таблиц и проверяет инварианты
func NewRegistry() (*Registry, error) {
	r := &Registry{
		entries:            vocabulary,
		canonicalBySurface: make(map[string]string),
		factors:            conversionFactors,
		categoryOf:         make(map[string]Category),
		rules:              selectionRules,
	}

	// Плоский список форм в порядке объявления: сначала каноническое имя,
	// затем его формы. Порядок определяет разрешение ничьих в матчере.
	for _, entry := range r.entries {
		forms := append([]string{entry.Canonical}, entry.Forms...)
		for _, form := range forms {
			owner, exists := r.canonicalBySurface[form]
			if exists {
				if owner != entry.Canonical {
					return nil, fmt.Errorf("surface form %q claimed by both %q and %q", form, owner, entry.Canonical)
				}
				continue
			}
			r.canonicalBySurface[form] = entry.Canonical
			r.surfaceForms = append(r.surfaceForms, form)
		}
	}

	for category, names := range categoryUnits {
		for _, name := range names {
			if other, exists := r.categoryOf[name]; exists {
				return nil, fmt.Errorf("unit %q belongs to both %q and %q", name, other, category)
			}
			r.categoryOf[name] = category
		}
	}

	if err := r.validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// validate проверяет согласованность таблиц реестра
func (r *Registry) validate() error {
	canonical := make(map[string]bool, len(r.entries))
	for _, entry := range r.entries {
		if canonical[entry.Canonical] {
			return fmt.Errorf("duplicate canonical unit %q", entry.Canonical)
		}
		canonical[entry.Canonical] = true
	}

	// Каждая категоризированная единица имеет строго положительный
	// коэффициент конвертации и существует в словаре
	for name, category := range r.categoryOf {
		if !canonical[name] {
			return fmt.Errorf("category %q references unknown unit %q", category, name)
		}
		factor, exists := r.factors[name]
		if !exists {
			return fmt.Errorf("unit %q of category %q has no conversion factor", name, category)
		}
		if factor <= 0 {
			return fmt.Errorf("unit %q has non-positive conversion factor %g", name, factor)
		}
	}

	for entity, rule := range r.rules {
		if _, exists := categoryUnits[rule.Category]; !exists {
			return fmt.Errorf("entity %q references unknown category %q", entity, rule.Category)
		}
		if rule.Direction != TakeMaximum && rule.Direction != TakeMinimum {
			return fmt.Errorf("entity %q has invalid selection direction", entity)
		}
	}

	return nil
}

// SurfaceForms возвращает плоский список всех поверхностных форм в
// стабильном порядке словаря. Вызывающие не должны изменять слайс.
func (r *Registry) SurfaceForms() []string {
	return r.surfaceForms
}

// Canonical возвращает каноническую единицу для очищенной поверхностной
// формы; пустую строку, если форма не принадлежит ни одной единице
func (r *Registry) Canonical(surface string) string {
	return r.canonicalBySurface[surface]
}

// Factor возвращает коэффициент приведения единицы к базовой шкале категории
func (r *Registry) Factor(unit string) (float64, bool) {
	factor, exists := r.factors[unit]
	return factor, exists
}

// CategoryOf возвращает категорию канонической единицы
func (r *Registry) CategoryOf(unit string) (Category, bool) {
	category, exists := r.categoryOf[unit]
	return category, exists
}

// Rule возвращает правило выбора значения для типа сущности
func (r *Registry) Rule(entity string) (SelectionRule, bool) {
	rule, exists := r.rules[entity]
	return rule, exists
}

// Entities возвращает список известных типов сущностей
func (r *Registry) Entities() []string {
	entities := make([]string, 0, len(r.rules))
	for entity := range r.rules {
		entities = append(entities, entity)
	}
	return entities
}
