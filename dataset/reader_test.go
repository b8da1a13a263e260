package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeTempCSV(t,
		"index,image_link,entity_name\n"+
			"0,https://example.com/a.jpg,item_weight\n"+
			"1,https://example.com/b.jpg,width\n")

	rows, err := ReadCSV(path, "utf-8")
	if err != nil {
		t.Fatalf("ReadCSV returned error: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0] != (Row{0, "https://example.com/a.jpg", "item_weight"}) {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[1] != (Row{1, "https://example.com/b.jpg", "width"}) {
		t.Errorf("rows[1] = %+v", rows[1])
	}
}

// Колонки распознаются по заголовку независимо от порядка и регистра
func TestReadCSV_HeaderMapping(t *testing.T) {
	path := writeTempCSV(t,
		"Entity_Name,INDEX,image_link\n"+
			"voltage,7,https://example.com/c.jpg\n")

	rows, err := ReadCSV(path, "")
	if err != nil {
		t.Fatalf("ReadCSV returned error: %v", err)
	}
	if len(rows) != 1 || rows[0] != (Row{7, "https://example.com/c.jpg", "voltage"}) {
		t.Errorf("rows = %+v", rows)
	}
}

func TestReadCSV_MissingColumn(t *testing.T) {
	path := writeTempCSV(t, "index,image_link\n0,https://example.com/a.jpg\n")

	if _, err := ReadCSV(path, ""); err == nil {
		t.Error("ReadCSV should fail when entity_name column is missing")
	}
}

// Выгрузка в windows-1251 с кириллической служебной колонкой читается
// без порчи обязательных полей
func TestReadCSV_Windows1251(t *testing.T) {
	content := "index,image_link,entity_name,примечание\n" +
		"5,https://example.com/e.jpg,item_weight,вес нетто\n"
	encoded, _, err := transform.String(charmap.Windows1251.NewEncoder(), content)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	path := writeTempCSV(t, encoded)

	rows, err := ReadCSV(path, "windows-1251")
	if err != nil {
		t.Fatalf("ReadCSV returned error: %v", err)
	}
	if len(rows) != 1 || rows[0] != (Row{5, "https://example.com/e.jpg", "item_weight"}) {
		t.Errorf("rows = %+v", rows)
	}
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"index", "image_link", "entity_name"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	first := []interface{}{0, "https://example.com/a.jpg", "item_weight"}
	if err := f.SetSheetRow(sheet, "A2", &first); err != nil {
		t.Fatalf("write row: %v", err)
	}
	second := []interface{}{1, "https://example.com/b.jpg", "voltage"}
	if err := f.SetSheetRow(sheet, "A3", &second); err != nil {
		t.Fatalf("write row: %v", err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	f.Close()

	rows, err := ReadFile(path, "")
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0] != (Row{0, "https://example.com/a.jpg", "item_weight"}) {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[1] != (Row{1, "https://example.com/b.jpg", "voltage"}) {
		t.Errorf("rows[1] = %+v", rows[1])
	}
}

func TestReadXLSX_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.xlsx")

	f := excelize.NewFile()
	header := []interface{}{"index", "image_link", "entity_name"}
	if err := f.SetSheetRow(f.GetSheetName(0), "A1", &header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	f.Close()

	if _, err := ReadXLSX(path); err == nil {
		t.Error("ReadXLSX should fail without data rows")
	}
}

func TestReadCSV_UnsupportedEncoding(t *testing.T) {
	path := writeTempCSV(t, "index,image_link,entity_name\n")

	if _, err := ReadCSV(path, "koi8-r"); err == nil {
		t.Error("ReadCSV should fail on unsupported encoding")
	}
}

func TestReadFile_DispatchesByExtension(t *testing.T) {
	path := writeTempCSV(t,
		"index,image_link,entity_name\n"+
			"3,https://example.com/d.jpg,wattage\n")

	rows, err := ReadFile(path, "utf-8")
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if len(rows) != 1 || rows[0].Index != 3 {
		t.Errorf("rows = %+v", rows)
	}
}
