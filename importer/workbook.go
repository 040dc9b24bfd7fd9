package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/gabriel-vasile/mimetype"
	"github.com/xuri/excelize/v2"
)

// FileKind вариант табличного файла
type FileKind string

const (
	KindAuto FileKind = "auto" // Определить по содержимому
	KindXLSX FileKind = "xlsx" // Office Open XML
	KindXLS  FileKind = "xls"  // Бинарный BIFF (Excel 97-2003)
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeXLS  = "application/vnd.ms-excel"
	mimeOLE  = "application/x-ole-storage"
	mimeZIP  = "application/zip"
)

// Sheet содержимое одного листа книги
type Sheet struct {
	Name string
	Rows [][]string
}

// ColumnCount возвращает максимальную ширину строки листа
func (s Sheet) ColumnCount() int {
	width := 0
	for _, row := range s.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// Workbook открытая книга в любом из поддерживаемых форматов
type Workbook interface {
	Kind() FileKind
	SheetNames() []string
	Sheet(name string) (Sheet, error)
	Close() error
}

// ParseFileKind разбирает строковое имя варианта файла
func ParseFileKind(s string) (FileKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return KindAuto, nil
	case "xlsx", "xlsm":
		return KindXLSX, nil
	case "xls":
		return KindXLS, nil
	}
	return "", fmt.Errorf("unknown file kind %q", s)
}

// DetectKind определяет вариант файла по сигнатуре, при неудаче по расширению
func DetectKind(path string) FileKind {
	if mt, err := mimetype.DetectFile(path); err == nil {
		switch {
		case mt.Is(mimeXLSX), mt.Is(mimeZIP):
			return KindXLSX
		case mt.Is(mimeXLS), mt.Is(mimeOLE):
			return KindXLS
		}
	}
	if strings.EqualFold(filepath.Ext(path), ".xls") {
		return KindXLS
	}
	return KindXLSX
}

// Open открывает книгу. Для KindAuto вариант определяется по содержимому,
// а при ошибке открытия пробуется второй вариант.
func Open(path string, kind FileKind) (Workbook, error) {
	if kind == "" || kind == KindAuto {
		kind = DetectKind(path)
	}

	order := []FileKind{kind, KindXLSX}
	if kind == KindXLSX {
		order[1] = KindXLS
	}

	var errs []error
	for _, k := range order {
		wb, err := openKind(path, k)
		if err == nil {
			return wb, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", k, err))
	}
	return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableFile, path, errors.Join(errs...))
}

func openKind(path string, kind FileKind) (Workbook, error) {
	switch kind {
	case KindXLS:
		return openXLS(path)
	default:
		return openXLSX(path)
	}
}

// xlsxWorkbook книга Office Open XML на базе excelize
type xlsxWorkbook struct {
	f *excelize.File
}

func openXLSX(path string) (*xlsxWorkbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	if len(f.GetSheetList()) == 0 {
		f.Close()
		return nil, fmt.Errorf("no sheets found in Excel file")
	}
	return &xlsxWorkbook{f: f}, nil
}

func (w *xlsxWorkbook) Kind() FileKind { return KindXLSX }

func (w *xlsxWorkbook) SheetNames() []string { return w.f.GetSheetList() }

func (w *xlsxWorkbook) Sheet(name string) (Sheet, error) {
	rows, err := w.f.GetRows(name)
	if err != nil {
		return Sheet{}, fmt.Errorf("failed to get rows of sheet %q: %w", name, err)
	}
	return Sheet{Name: name, Rows: rows}, nil
}

func (w *xlsxWorkbook) Close() error { return w.f.Close() }

// xlsWorkbook книга BIFF на базе extrame/xls
type xlsWorkbook struct {
	wb *xls.WorkBook
}

func openXLS(path string) (book *xlsWorkbook, err error) {
	// Разбор повреждённого BIFF может паниковать внутри библиотеки
	defer func() {
		if r := recover(); r != nil {
			book, err = nil, fmt.Errorf("xls parser panic: %v", r)
		}
	}()

	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open xls file: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("no sheets found in xls file")
	}
	return &xlsWorkbook{wb: wb}, nil
}

func (w *xlsWorkbook) Kind() FileKind { return KindXLS }

func (w *xlsWorkbook) SheetNames() []string {
	names := make([]string, 0, w.wb.NumSheets())
	for i := 0; i < w.wb.NumSheets(); i++ {
		if s := w.wb.GetSheet(i); s != nil {
			names = append(names, RepairLegacyText(s.Name))
		}
	}
	return names
}

func (w *xlsWorkbook) Sheet(name string) (sheet Sheet, err error) {
	defer func() {
		if r := recover(); r != nil {
			sheet, err = Sheet{}, fmt.Errorf("xls parser panic on sheet %q: %v", name, r)
		}
	}()

	for i := 0; i < w.wb.NumSheets(); i++ {
		s := w.wb.GetSheet(i)
		if s == nil || RepairLegacyText(s.Name) != name {
			continue
		}

		rows := make([][]string, 0, int(s.MaxRow)+1)
		for r := 0; r <= int(s.MaxRow); r++ {
			row := s.Row(r)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			cells := make([]string, row.LastCol())
			for c := row.FirstCol(); c < row.LastCol(); c++ {
				cells[c] = RepairLegacyText(row.Col(c))
			}
			rows = append(rows, cells)
		}
		return Sheet{Name: name, Rows: trimTrailingEmpty(rows)}, nil
	}
	return Sheet{}, fmt.Errorf("sheet %q not found", name)
}

func (w *xlsWorkbook) Close() error { return nil }

func trimTrailingEmpty(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && isEmptyRow(rows[end-1]) {
		end--
	}
	return rows[:end]
}

// isEmptyRow проверяет, является ли строка пустой
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
