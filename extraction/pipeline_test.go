package extraction

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocrserver/units"
)

func newTestPipeline() *Pipeline {
	return NewPipeline(units.Default(), 0)
}

func TestPipeline_ExtractUnits(t *testing.T) {
	pipeline := newTestPipeline()

	pairs := pipeline.ExtractUnits("Box 10cm x 5 cm, Net Wt 2.5 kg approx")

	require.Len(t, pairs, 3)
	assert.Equal(t, CanonicalPair{"10", "centimetre"}, pairs[0])
	assert.Equal(t, CanonicalPair{"5", "centimetre"}, pairs[1])
	assert.Equal(t, CanonicalPair{"2.5", "kilogram"}, pairs[2])
}

// Токен, далекий от любой формы словаря, не дает пары
func TestPipeline_ExtractUnitsRejectsNoise(t *testing.T) {
	pipeline := newTestPipeline()

	assert.Empty(t, pipeline.ExtractUnits("12 zzqqxx and 7 Boxes"))
}

func TestPipeline_Predict(t *testing.T) {
	pipeline := newTestPipeline()

	tests := []struct {
		name     string
		text     string
		entity   string
		expected string
		found    bool
	}{
		{
			name:     "weight label",
			text:     "Net Wt 2.5 kg approx",
			entity:   "item_weight",
			expected: "2.5 kilogram",
			found:    true,
		},
		{
			name:     "width takes the smallest length",
			text:     "Dimensions: 30cm x 20 cm x 10cm",
			entity:   "width",
			expected: "10 centimetre",
			found:    true,
		},
		{
			name:     "height takes the largest length",
			text:     "Dimensions: 30cm x 20 cm x 10cm",
			entity:   "height",
			expected: "30 centimetre",
			found:    true,
		},
		{
			name:     "voltage across mixed units",
			text:     "Input 12v or 0.2 kv max",
			entity:   "voltage",
			expected: "0.2 kilovolt",
			found:    true,
		},
		{
			name:   "no measurements at all",
			text:   "no measurements here",
			entity: "item_weight",
		},
		{
			name:   "category empty for the entity",
			text:   "Net Wt 2.5 kg approx",
			entity: "wattage",
		},
		{
			name:   "unknown entity",
			text:   "Net Wt 2.5 kg approx",
			entity: "unknown_entity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := pipeline.Predict(tt.text, tt.entity)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// Сквозная проверка базовой шкалы: 2.5 kg -> 2500000 миллиграмм
func TestPipeline_BaseScale(t *testing.T) {
	pipeline := newTestPipeline()

	pairs := pipeline.ExtractUnits("Net Wt 2.5 kg approx")
	categorized := Convert(units.Default(), pairs)

	weight := categorized[units.CategoryWeight]
	require.Len(t, weight, 1)
	assert.Equal(t, 2500000.0, weight[0].BaseValue)
}

// Конвейер безопасен для параллельных вызовов по независимым текстам
func TestPipeline_ConcurrentUse(t *testing.T) {
	pipeline := newTestPipeline()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, found := pipeline.Predict("Net Wt 2.5 kg approx", "item_weight")
			if !found || got != "2.5 kilogram" {
				t.Errorf("Predict = (%q, %t), want (2.5 kilogram, true)", got, found)
			}
		}()
	}
	wg.Wait()
}
