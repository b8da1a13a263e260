package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Result результат обработки одной записи: идентификатор и предсказанное
// значение либо пустая строка при отсутствии предсказания
type Result struct {
	Index      int
	Prediction string
}

// resultHeader заголовок файла результатов
var resultHeader = []string{"index", "prediction"}

// ResultWriter инкрементальный приёмник результатов. Дописывает записи в
// существующий CSV-файл, не переписывая его, поэтому прерванный прогон
// можно возобновить без дублирования уже сохранённых записей.
type ResultWriter struct {
	path string
	mu   sync.Mutex
}

// NewResultWriter создает приёмник результатов для файла path
func NewResultWriter(path string) *ResultWriter {
	return &ResultWriter{path: path}
}

// CompletedIndices возвращает множество идентификаторов, уже записанных в
// файл результатов. Отсутствующий файл означает пустое множество.
func (w *ResultWriter) CompletedIndices() (map[int]bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	file, err := os.Open(w.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[int]bool{}, nil
		}
		return nil, fmt.Errorf("open results file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}

	completed := make(map[int]bool, len(records))
	for _, record := range records {
		if len(record) == 0 {
			continue
		}
		index, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			continue // заголовок или мусорная строка
		}
		completed[index] = true
	}
	return completed, nil
}

// Append дописывает пачку результатов в файл. Заголовок пишется только
// при создании нового файла.
func (w *ResultWriter) Append(results []Result) error {
	if len(results) == 0 {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	info, err := os.Stat(w.path)
	writeHeader := os.IsNotExist(err) || (err == nil && info.Size() == 0)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("stat results file: %w", err)
	}

	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open results file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if writeHeader {
		if err := writer.Write(resultHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for _, result := range results {
		record := []string{strconv.Itoa(result.Index), result.Prediction}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write result %d: %w", result.Index, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush results: %w", err)
	}
	return nil
}
