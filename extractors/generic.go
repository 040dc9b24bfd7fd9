package extractors

import (
	"fmt"

	"pcrimport/formats"
	"pcrimport/importer"
)

// genericExtractor одна пара мишень/CT на строку
type genericExtractor struct{}

func (genericExtractor) Extract(wb importer.Workbook, sheet string, d formats.Descriptor) ([]NormalizedRow, error) {
	s, err := loadSheet(wb, sheet)
	if err != nil {
		return nil, err
	}
	return extractRows(s, d, false)
}

// blockExtractor как generic, но читает только первый блок данных:
// приборы дописывают в тот же лист другие таблицы после пустой строки
type blockExtractor struct{}

func (blockExtractor) Extract(wb importer.Workbook, sheet string, d formats.Descriptor) ([]NormalizedRow, error) {
	s, err := loadSheet(wb, sheet)
	if err != nil {
		return nil, err
	}
	return extractRows(s, d, true)
}

func extractRows(sheet importer.Sheet, d formats.Descriptor, stopAtBlank bool) ([]NormalizedRow, error) {
	cols, err := resolveColumns(d, sheet.ColumnCount(), d.RequireTarget)
	if err != nil {
		return nil, err
	}
	fallback := defaultTarget(d, sheet.Name)

	var (
		out        []NormalizedRow
		started    bool
		targetSeen bool
	)
	for r := max(d.Layout.StartRow, 0); r < len(sheet.Rows); r++ {
		row := sheet.Rows[r]
		if isBlank(row) {
			if stopAtBlank && started {
				break
			}
			continue
		}
		started = true

		target := fallback
		if cols.hasTarget {
			target = cell(row, cols.target)
			if target != "" {
				targetSeen = true
			}
		}

		well, ok := importer.NormalizeWell(cell(row, cols.well))
		if !ok || target == "" {
			continue
		}

		nr := NormalizedRow{
			Well:   well,
			Target: target,
			CT:     ParseCT(cell(row, cols.ct)),
		}
		if cols.hasSample {
			nr.Sample = cell(row, cols.sample)
		}
		out = append(out, nr)
	}

	if d.RequireTarget && cols.hasTarget && !targetSeen {
		return nil, fmt.Errorf("%w: target column %d is empty in sheet %q", ErrIncompleteFile, cols.target, sheet.Name)
	}
	return out, nil
}
