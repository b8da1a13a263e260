// Package algorithms содержит метрики схожести строк для нечёткого
// сопоставления зашумлённых OCR-токенов со словарём единиц измерения.
package algorithms

import "strings"

// DamerauLevenshtein вычисляет расстояние Дамерау-Левенштейна
// (учитывает транспозиции соседних символов)
type DamerauLevenshtein struct{}

// NewDamerauLevenshtein создает новый экземпляр метрики
func NewDamerauLevenshtein() *DamerauLevenshtein {
	return &DamerauLevenshtein{}
}

// Distance вычисляет расстояние редактирования между двумя строками
func (dl *DamerauLevenshtein) Distance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	len1 := len(r1)
	len2 := len(r2)

	if len1 == 0 {
		return len2
	}
	if len2 == 0 {
		return len1
	}

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}

			matrix[i][j] = min3(
				matrix[i-1][j]+1,      // удаление
				matrix[i][j-1]+1,      // вставка
				matrix[i-1][j-1]+cost, // замена
			)

			// Транспозиция соседних символов
			if i > 1 && j > 1 && r1[i-1] == r2[j-2] && r1[i-2] == r2[j-1] {
				matrix[i][j] = min2(matrix[i][j], matrix[i-2][j-2]+1)
			}
		}
	}

	return matrix[len1][len2]
}

// Similarity вычисляет нормализованную схожесть от 0.0 до 1.0
func (dl *DamerauLevenshtein) Similarity(s1, s2 string) float64 {
	distance := dl.Distance(s1, s2)
	maxLen := len([]rune(s1))
	if len([]rune(s2)) > maxLen {
		maxLen = len([]rune(s2))
	}

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/float64(maxLen)
}

// Indel вычисляет расстояние редактирования без замен (только вставки и
// удаления) и схожесть, нормированную на суммарную длину строк. Такая
// нормировка мягче к шуму-суффиксу на длинных словах ("kilogramss") и
// жестче к заменам в коротких аббревиатурах ("ka" против "kg").
type Indel struct{}

// NewIndel создает новый экземпляр метрики
func NewIndel() *Indel {
	return &Indel{}
}

// Distance вычисляет indel-расстояние через длину наибольшей общей
// подпоследовательности
func (in *Indel) Distance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	return len(r1) + len(r2) - 2*lcsLength(r1, r2)
}

// Similarity вычисляет нормализованную схожесть от 0.0 до 1.0
func (in *Indel) Similarity(s1, s2 string) float64 {
	total := len([]rune(s1)) + len([]rune(s2))
	if total == 0 {
		return 1.0
	}
	return 1.0 - float64(in.Distance(s1, s2))/float64(total)
}

// lcsLength длина наибольшей общей подпоследовательности
func lcsLength(r1, r2 []rune) int {
	if len(r1) == 0 || len(r2) == 0 {
		return 0
	}

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for i := 1; i <= len(r1); i++ {
		for j := 1; j <= len(r2); j++ {
			if r1[i-1] == r2[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max2(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(r2)]
}

// Metric метрика схожести строк от 0.0 до 1.0
type Metric interface {
	Similarity(s1, s2 string) float64
}

// Matcher ищет ближайшую строку словаря для кандидата
type Matcher struct {
	metric Metric
}

// NewMatcher создает матчер над заданной метрикой; nil означает
// indel-метрику по умолчанию
func NewMatcher(metric Metric) *Matcher {
	if metric == nil {
		metric = NewIndel()
	}
	return &Matcher{metric: metric}
}

// BestMatch возвращает элемент словаря с наибольшей схожестью с кандидатом
// и саму схожесть по шкале 0-100, где 100 означает идентичные строки после
// приведения регистра. Совпадение принимается только при схожести не ниже
// minScore. Ничьи разрешаются порядком перебора словаря: побеждает первый
// встреченный элемент с максимальной оценкой (порядок стабилен, поскольку
// словарь передается слайсом).
func (m *Matcher) BestMatch(candidate string, vocabulary []string, minScore float64) (string, float64, bool) {
	folded := strings.ToLower(candidate)

	best := ""
	bestScore := -1.0
	for _, form := range vocabulary {
		score := m.metric.Similarity(folded, strings.ToLower(form)) * 100
		if score > bestScore {
			best = form
			bestScore = score
			if bestScore == 100 {
				break
			}
		}
	}

	if bestScore < minScore {
		return "", 0, false
	}
	return best, bestScore, true
}

func min2(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func min3(a, b, c int) int {
	return min2(min2(a, b), c)
}

func max2(a, b int) int {
	if a > b {
		return a
	}
	return b
}
