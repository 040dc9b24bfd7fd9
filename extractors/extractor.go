// Package extractors извлекает из листа выгрузки нормализованные строки
// (лунка, образец, мишень, CT) по описанию формата.
package extractors

import (
	"fmt"

	"pcrimport/formats"
	"pcrimport/importer"
)

// bindTolerance допустимое смещение колонки при привязке к снимку листа
const bindTolerance = 2

// NormalizedRow одна строка результата
type NormalizedRow struct {
	Well   string   `json:"well"`   // Всегда в виде A01..H12
	Sample string   `json:"sample"` // Может быть пустым
	Target string   `json:"target"` // Никогда не пустое
	CT     *float64 `json:"ct"`     // nil, если амплификации нет
}

// Extractor процедура извлечения для семейства форматов
type Extractor interface {
	Extract(wb importer.Workbook, sheet string, d formats.Descriptor) ([]NormalizedRow, error)
}

// For возвращает процедуру извлечения по идентификатору.
// Неизвестный идентификатор обрабатывается как generic.
func For(kind formats.ExtractorKind) Extractor {
	switch kind {
	case formats.ExtractorBlock:
		return blockExtractor{}
	case formats.ExtractorMultiTarget:
		return multiTargetExtractor{}
	default:
		return genericExtractor{}
	}
}

// ExtractFile открывает книгу и извлекает строки листа sheet.
// Пустое имя листа означает первый лист с заголовком.
func ExtractFile(path string, kind importer.FileKind, sheet string, d formats.Descriptor) ([]NormalizedRow, error) {
	wb, err := importer.Open(path, kind)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	if sheet == "" {
		sheet = defaultSheet(wb)
	}
	return For(d.Extractor).Extract(wb, sheet, d)
}

func defaultSheet(wb importer.Workbook) string {
	if raw, err := importer.ScanWorkbook(wb, importer.ScanOptions{}); err == nil {
		return raw.SheetName
	}
	if names := wb.SheetNames(); len(names) > 0 {
		return names[0]
	}
	return ""
}

// Bind возвращает копию описания, привязанную к конкретному листу:
// индексы колонок заменяются найденными сканером, если они отличаются
// не более чем на две колонки, строка начала данных берётся из снимка.
func Bind(d formats.Descriptor, raw *importer.RawStructure) formats.Descriptor {
	bound := d.Clone()
	if raw == nil {
		return bound
	}
	for role, idx := range bound.Layout.Columns {
		if got, ok := raw.Role(role); ok && abs(got-idx) <= bindTolerance {
			bound.Layout.Columns[role] = got
		}
	}
	bound.Layout.StartRow = raw.FirstDataRow
	return bound
}

func loadSheet(wb importer.Workbook, name string) (importer.Sheet, error) {
	sheet, err := wb.Sheet(name)
	if err != nil {
		return importer.Sheet{}, fmt.Errorf("%w: %v", importer.ErrUnreadableFile, err)
	}
	return sheet, nil
}

// columns индексы колонок, проверенные по ширине листа
type columns struct {
	well, sample, target, ct int
	hasSample, hasTarget     bool
}

// resolveColumns проверяет обязательные колонки формата по ширине листа.
// requireTarget false для форматов, где мишень берется из пар заголовка.
func resolveColumns(d formats.Descriptor, width int, requireTarget bool) (columns, error) {
	c := columns{sample: -1, target: -1}

	well, ok := d.Layout.Column(importer.RoleWell)
	if !ok {
		return c, fmt.Errorf("%w: format %s has no well column", ErrMissingRequiredColumn, d.ID)
	}
	ct, ok := d.Layout.Column(importer.RoleCT)
	if !ok {
		return c, fmt.Errorf("%w: format %s has no ct column", ErrMissingRequiredColumn, d.ID)
	}
	if well < 0 || well >= width {
		return c, fmt.Errorf("%w: well column %d outside sheet width %d", ErrMissingRequiredColumn, well, width)
	}
	if ct < 0 || ct >= width {
		return c, fmt.Errorf("%w: ct column %d outside sheet width %d", ErrMissingRequiredColumn, ct, width)
	}
	c.well, c.ct = well, ct

	if idx, ok := d.Layout.Column(importer.RoleSample); ok && idx >= 0 && idx < width {
		c.sample, c.hasSample = idx, true
	}

	idx, ok := d.Layout.Column(importer.RoleTarget)
	switch {
	case ok && idx >= 0 && idx < width:
		c.target, c.hasTarget = idx, true
	case requireTarget && ok:
		return c, fmt.Errorf("%w: target column %d outside sheet width %d", ErrMissingRequiredColumn, idx, width)
	case requireTarget:
		return c, fmt.Errorf("%w: format %s requires a target column", ErrMissingRequiredColumn, d.ID)
	}
	return c, nil
}

// defaultTarget имя мишени для форматов без колонки мишени
func defaultTarget(d formats.Descriptor, sheet string) string {
	if d.DefaultTarget != "" {
		return d.DefaultTarget
	}
	if sheet != "" {
		return sheet
	}
	return "unknown"
}

func isBlank(row []string) bool {
	for i := range row {
		if cell(row, i) != "" {
			return false
		}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
