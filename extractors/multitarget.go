package extractors

import (
	"fmt"

	"pcrimport/formats"
	"pcrimport/importer"
)

// multiTargetExtractor несколько пар мишень/CT в одной строке:
// одна лунка даёт по строке на каждую пару с определённым CT
type multiTargetExtractor struct{}

// targetPair колонка CT и источник имени мишени: ячейка строки
// (nameCol >= 0) или текст заголовка
type targetPair struct {
	name    string
	nameCol int
	ctCol   int
}

func (multiTargetExtractor) Extract(wb importer.Workbook, sheet string, d formats.Descriptor) ([]NormalizedRow, error) {
	s, err := loadSheet(wb, sheet)
	if err != nil {
		return nil, err
	}

	header, ok := importer.FindHeader(s.Rows)
	if !ok {
		return extractRows(s, d, false)
	}
	pairs := findTargetPairs(header.Cells)
	if len(pairs) == 0 {
		return extractRows(s, d, false)
	}

	cols, err := resolveColumns(d, s.ColumnCount(), false)
	if err != nil {
		return nil, err
	}

	targetSeen := false
	for _, p := range pairs {
		if p.nameCol < 0 {
			targetSeen = true
		}
	}

	var out []NormalizedRow
	for r := max(d.Layout.StartRow, header.Row+header.Depth); r < len(s.Rows); r++ {
		row := s.Rows[r]
		for _, p := range pairs {
			if p.nameCol >= 0 && cell(row, p.nameCol) != "" {
				targetSeen = true
			}
		}

		well, ok := importer.NormalizeWell(cell(row, cols.well))
		if !ok {
			continue
		}
		sample := ""
		if cols.hasSample {
			sample = cell(row, cols.sample)
		}

		for _, p := range pairs {
			ct := ParseCT(cell(row, p.ctCol))
			if ct == nil {
				continue
			}
			target := p.name
			if p.nameCol >= 0 {
				target = cell(row, p.nameCol)
			}
			if target == "" {
				continue
			}
			out = append(out, NormalizedRow{Well: well, Sample: sample, Target: target, CT: ct})
		}
	}

	if d.RequireTarget && !targetSeen {
		return nil, fmt.Errorf("%w: target name columns are empty in sheet %q", ErrIncompleteFile, s.Name)
	}
	return out, nil
}

// findTargetPairs ищет соседние колонки "мишень, CT". Если заголовок
// мишени является подписью ("Target", "Target 1"), имя мишени берётся
// из ячейки строки, иначе сам заголовок считается именем ("FAM", "SC2").
func findTargetPairs(headers []string) []targetPair {
	var pairs []targetPair
	for i := 0; i+1 < len(headers); i++ {
		name := headers[i]
		if name == "" || importer.IsCTHeader(name) || !importer.IsCTHeader(headers[i+1]) {
			continue
		}

		role, ok := importer.ClassifyHeader(name)
		switch {
		case ok && role == importer.RoleWell:
			continue
		case importer.IsTargetLabel(name):
			pairs = append(pairs, targetPair{nameCol: i, ctCol: i + 1})
		case ok && role == importer.RoleSample:
			continue
		default:
			pairs = append(pairs, targetPair{name: name, nameCol: -1, ctCol: i + 1})
		}
	}
	return pairs
}
