// Package testutil содержит помощники для тестов: генерацию книг xlsx
// в формате выгрузок амплификаторов.
package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"pcrimport/importer"

	"github.com/xuri/excelize/v2"
)

// SheetData лист тестовой книги
type SheetData struct {
	Name string
	Rows [][]string
}

// WriteXLSX сохраняет книгу с заданными листами во временный каталог теста
func WriteXLSX(t testing.TB, fileName string, sheets ...SheetData) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			t.Fatalf("create sheet %q: %v", sheet.Name, err)
		}

		for r, row := range sheet.Rows {
			if len(row) == 0 {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			values := row
			if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
				t.Fatalf("write row %d: %v", r, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), fileName)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// QuantStudioRows выгрузка QuantStudio: строки метаданных, заголовок и данные
func QuantStudioRows(data ...[]string) [][]string {
	rows := [][]string{
		{"* Block Type", "96-Well Block (0.2mL)"},
		{"* Instrument Type", "QuantStudio 5 System"},
		{"* Experiment Name", "PLATE12_20240315"},
		{},
		{"Well", "Well Position", "Omit", "Sample Name", "Target Name", "Task", "Reporter", "Quencher", "CT", "Ct Mean"},
	}
	return append(rows, data...)
}

// memoryWorkbook книга в памяти для тестов, не требующих файла
type memoryWorkbook struct {
	sheets []SheetData
}

// Workbook возвращает книгу в памяти с заданными листами
func Workbook(sheets ...SheetData) importer.Workbook {
	return &memoryWorkbook{sheets: sheets}
}

func (w *memoryWorkbook) Kind() importer.FileKind { return importer.KindXLSX }

func (w *memoryWorkbook) SheetNames() []string {
	names := make([]string, len(w.sheets))
	for i, s := range w.sheets {
		names[i] = s.Name
	}
	return names
}

func (w *memoryWorkbook) Sheet(name string) (importer.Sheet, error) {
	for _, s := range w.sheets {
		if s.Name == name {
			return importer.Sheet{Name: s.Name, Rows: s.Rows}, nil
		}
	}
	return importer.Sheet{}, fmt.Errorf("sheet %q not found", name)
}

func (w *memoryWorkbook) Close() error { return nil }
