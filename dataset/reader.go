// Package dataset читает входные наборы записей для пакетной обработки и
// инкрементально пишет результаты предсказаний.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Row строка входного набора: идентификатор, ссылка на изображение и
// тип запрашиваемой сущности
type Row struct {
	Index      int
	ImageLink  string
	EntityName string
}

// requiredColumns обязательные колонки входного набора
var requiredColumns = []string{"index", "image_link", "entity_name"}

// ReadFile читает входной набор, выбирая формат по расширению файла:
// .xlsx через excelize, иначе CSV. encoding задает кодировку CSV-файла
// ("utf-8", "windows-1251", "windows-1252"); для xlsx игнорируется.
func ReadFile(path, encoding string) ([]Row, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path)
	}
	return ReadCSV(path, encoding)
}

// ReadCSV читает входной набор из CSV-файла
func ReadCSV(path, encoding string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer file.Close()

	reader, err := decodingReader(file, encoding)
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("input file is too short, expected header row and at least one data row")
	}

	columns, err := findColumnIndices(records[0])
	if err != nil {
		return nil, err
	}

	return parseRows(records[1:], columns)
}

// ReadXLSX читает входной набор из первого листа Excel-файла
func ReadXLSX(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	records, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("get rows: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("input file is too short, expected header row and at least one data row")
	}

	columns, err := findColumnIndices(records[0])
	if err != nil {
		return nil, err
	}

	return parseRows(records[1:], columns)
}

// decodingReader оборачивает источник перекодировщиком для устаревших
// кодировок выгрузок
func decodingReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "windows-1251", "cp1251":
		return transform.NewReader(r, charmap.Windows1251.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported input encoding %q", encoding)
	}
}

// findColumnIndices сопоставляет обязательные колонки с индексами по
// заголовку, без учета регистра и краевых пробелов
func findColumnIndices(header []string) (map[string]int, error) {
	indices := make(map[string]int, len(header))
	for i, name := range header {
		indices[strings.TrimSpace(strings.ToLower(name))] = i
	}

	for _, column := range requiredColumns {
		if _, exists := indices[column]; !exists {
			return nil, fmt.Errorf("input file is missing required column %q", column)
		}
	}
	return indices, nil
}

func parseRows(records [][]string, columns map[string]int) ([]Row, error) {
	rows := make([]Row, 0, len(records))
	for i, record := range records {
		index, err := strconv.Atoi(strings.TrimSpace(cell(record, columns["index"])))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid index: %w", i+2, err)
		}
		rows = append(rows, Row{
			Index:      index,
			ImageLink:  strings.TrimSpace(cell(record, columns["image_link"])),
			EntityName: strings.TrimSpace(cell(record, columns["entity_name"])),
		})
	}
	return rows, nil
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
