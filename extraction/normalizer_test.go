package extraction

import (
	"testing"

	"ocrserver/units"
)

func TestUnitNormalizer_Normalize(t *testing.T) {
	normalizer := NewUnitNormalizer(units.Default())

	tests := []struct {
		surface  string
		expected string
	}{
		{"kg", "kilogram"},
		{"KG", "kilogram"},
		{"kgs", "kilogram"},
		{"kilogram", "kilogram"},
		{"  Cu   Ft ", "cubic foot"}, // серии пробелов схлопываются
		{"FL OZ", "fluid ounce"},
		{"ml", "millilitre"},
		{"v", "volt"},
		{"watts", "watt"},
		{"unknownunit", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizer.Normalize(tt.surface); got != tt.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tt.surface, got, tt.expected)
		}
	}
}

// Любая форма словаря нормализуется в свою каноническую единицу
func TestUnitNormalizer_AllSurfaceForms(t *testing.T) {
	registry := units.Default()
	normalizer := NewUnitNormalizer(registry)

	for _, form := range registry.SurfaceForms() {
		expected := registry.Canonical(form)
		if got := normalizer.Normalize(form); got != expected {
			t.Errorf("Normalize(%q) = %q, want %q", form, got, expected)
		}
	}
}
