package extraction

import (
	"fmt"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []RawToken
	}{
		{
			name:     "number with space before unit",
			text:     "12.5 kg",
			expected: []RawToken{{"12.5", "kg"}},
		},
		{
			name:     "number attached to unit",
			text:     "500g",
			expected: []RawToken{{"500", "g"}},
		},
		{
			name:     "several measurements keep text order",
			text:     "10cm x 5 cm, weight 2.5kg",
			expected: []RawToken{{"10", "cm"}, {"5", "cm"}, {"2.5", "kg"}},
		},
		{
			name:     "no digit-letter adjacency",
			text:     "no measurements here",
			expected: nil,
		},
		{
			name:     "empty text",
			text:     "",
			expected: nil,
		},
		{
			name: "unit letters must follow the number",
			// Единицы перед числом не распознаются: ограничение формата
			text:     "kg 2.5",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if len(got) != len(tt.expected) {
				t.Fatalf("Extract(%q) = %v, want %v", tt.text, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Extract(%q)[%d] = %v, want %v", tt.text, i, got[i], tt.expected[i])
				}
			}
		})
	}
}

// Извлечение не зависит от окружающего текста
func TestExtract_SurroundingNoise(t *testing.T) {
	gofakeit.Seed(0)

	for i := 0; i < 20; i++ {
		words := make([]string, 6)
		for j := range words {
			words[j] = gofakeit.Word()
		}
		text := fmt.Sprintf("%s 12.5 kg %s", strings.Join(words[:3], " "), strings.Join(words[3:], " "))

		found := false
		for _, token := range Extract(text) {
			if token.Number == "12.5" && token.Unit == "kg" {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Extract(%q) lost the embedded measurement", text)
		}
	}
}
