package importer

import (
	"fmt"
	"sort"
	"strings"
)

const (
	headerScanLimit  = 30  // Строки, в которых ищется заголовок
	minHeaderMatches = 3   // Минимум ячеек с ключевыми словами в заголовке
	dataScanLimit    = 100 // Строки данных для сбора непустых колонок
	probeRowCount    = 10  // Строки для поиска метаданных
	wellSampleCount  = 10  // Значения колонки лунок для проверки формата
	minDataCells     = 2   // Минимум непустых ячеек в первой строке данных
	wellPreferRate   = 0.5 // Доля значений, при которой колонка признаётся колонкой лунок
)

// ScanOptions параметры сканирования
type ScanOptions struct {
	// Sheet имя листа; пустое значение означает первый лист с заголовком
	Sheet string
}

// RawStructure структурный снимок листа без знания о приборах.
// Создаётся один раз на файл и далее не изменяется.
type RawStructure struct {
	SheetName       string       `json:"sheet_name"`
	Headers         []string     `json:"headers"`
	HeaderRow       int          `json:"header_row"` // 0-based
	HeaderDepth     int          `json:"header_depth"`
	Roles           map[Role]int `json:"roles"`
	FirstDataRow    int          `json:"first_data_row"` // 0-based
	DataRowCount    int          `json:"data_row_count"`
	NonEmptyColumns []int        `json:"non_empty_columns"`
	ColumnCount     int          `json:"column_count"`
	MetadataProbe   []string     `json:"metadata_probe"`
	WellSamples     []string     `json:"well_samples"`
}

// Role возвращает индекс колонки для роли
func (r *RawStructure) Role(role Role) (int, bool) {
	idx, ok := r.Roles[role]
	return idx, ok
}

// Scan открывает файл и строит структурный снимок
func Scan(path string, kind FileKind, opts ScanOptions) (*RawStructure, error) {
	wb, err := Open(path, kind)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	return ScanWorkbook(wb, opts)
}

// ScanWorkbook строит снимок по уже открытой книге
func ScanWorkbook(wb Workbook, opts ScanOptions) (*RawStructure, error) {
	if opts.Sheet != "" {
		sheet, err := wb.Sheet(opts.Sheet)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
		}
		raw, ok := ScanSheet(sheet)
		if !ok {
			return nil, fmt.Errorf("%w: sheet %q", ErrNoHeaderFound, opts.Sheet)
		}
		return raw, nil
	}

	names := wb.SheetNames()
	for _, name := range names {
		sheet, err := wb.Sheet(name)
		if err != nil {
			continue
		}
		if raw, ok := ScanSheet(sheet); ok {
			return raw, nil
		}
	}
	return nil, fmt.Errorf("%w: checked %d sheet(s)", ErrNoHeaderFound, len(names))
}

// ScanSheet строит снимок листа; false, если заголовок не найден
func ScanSheet(sheet Sheet) (*RawStructure, bool) {
	header, ok := FindHeader(sheet.Rows)
	if !ok {
		return nil, false
	}

	raw := &RawStructure{
		SheetName:   sheet.Name,
		Headers:     header.Cells,
		HeaderRow:   header.Row,
		HeaderDepth: header.Depth,
		ColumnCount: sheet.ColumnCount(),
	}

	raw.FirstDataRow = firstDataRow(sheet.Rows, header.Row+header.Depth)
	raw.DataRowCount = countContentRows(sheet.Rows, raw.FirstDataRow)
	raw.NonEmptyColumns = nonEmptyColumns(sheet.Rows, raw.FirstDataRow)
	raw.MetadataProbe = metadataProbe(sheet.Rows)
	raw.Roles = assignRoles(header.Cells, sheet.Rows, raw.FirstDataRow)

	if col, ok := raw.Roles[RoleWell]; ok {
		raw.WellSamples = columnSample(sheet.Rows, raw.FirstDataRow, col, wellSampleCount)
	}
	return raw, true
}

// Header найденная строка заголовков
type Header struct {
	Row   int      // Индекс первой строки заголовка (0-based)
	Depth int      // 1 или 2 для двухуровневых заголовков
	Cells []string // Тексты заголовков после слияния уровней
}

// FindHeader ищет строку заголовков в первых 30 строках. Если в строке нет
// CT-колонки, а в следующей есть, строки сливаются (двухуровневый заголовок).
func FindHeader(rows [][]string) (Header, bool) {
	limit := min(len(rows), headerScanLimit)
	for i := 0; i < limit; i++ {
		if countKeywordCells(rows[i]) < minHeaderMatches {
			continue
		}

		h := Header{Row: i, Depth: 1, Cells: trimCells(rows[i])}
		if !hasCTCell(rows[i]) && i+1 < len(rows) && hasCTCell(rows[i+1]) {
			h.Depth = 2
			h.Cells = mergeRows(rows[i], rows[i+1])
		}
		return h, true
	}
	return Header{}, false
}

func countKeywordCells(row []string) int {
	n := 0
	for _, cell := range row {
		if isHeaderKeywordCell(cell) {
			n++
		}
	}
	return n
}

func hasCTCell(row []string) bool {
	for _, cell := range row {
		if IsCTHeader(cell) {
			return true
		}
	}
	return false
}

// mergeRows сливает два уровня заголовка: побеждает первая непустая ячейка
func mergeRows(top, bottom []string) []string {
	merged := make([]string, max(len(top), len(bottom)))
	for i := range merged {
		if i < len(top) && strings.TrimSpace(top[i]) != "" {
			merged[i] = strings.TrimSpace(top[i])
		} else if i < len(bottom) {
			merged[i] = strings.TrimSpace(bottom[i])
		}
	}
	return merged
}

func trimCells(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}

func nonEmptyCount(row []string) int {
	n := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			n++
		}
	}
	return n
}

func firstDataRow(rows [][]string, from int) int {
	for i := from; i < len(rows); i++ {
		if nonEmptyCount(rows[i]) >= minDataCells {
			return i
		}
	}
	return from
}

func countContentRows(rows [][]string, from int) int {
	n := 0
	for i := from; i < len(rows); i++ {
		if !isEmptyRow(rows[i]) {
			n++
		}
	}
	return n
}

func nonEmptyColumns(rows [][]string, from int) []int {
	seen := make(map[int]struct{})
	end := min(len(rows), from+dataScanLimit)
	for i := from; i < end; i++ {
		for c, cell := range rows[i] {
			if strings.TrimSpace(cell) != "" {
				seen[c] = struct{}{}
			}
		}
	}

	cols := make([]int, 0, len(seen))
	for c := range seen {
		cols = append(cols, c)
	}
	sort.Ints(cols)
	return cols
}

func metadataProbe(rows [][]string) []string {
	limit := min(len(rows), probeRowCount)
	probe := make([]string, 0, limit)
	for i := 0; i < limit; i++ {
		parts := make([]string, 0, len(rows[i]))
		for _, cell := range rows[i] {
			if cell = strings.TrimSpace(cell); cell != "" {
				parts = append(parts, cell)
			}
		}
		probe = append(probe, strings.Join(parts, " "))
	}
	return probe
}

func columnSample(rows [][]string, from, col, limit int) []string {
	var out []string
	for i := from; i < len(rows) && len(out) < limit; i++ {
		if col < len(rows[i]) {
			if v := strings.TrimSpace(rows[i][col]); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// assignRoles назначает роли колонкам. Для CT предпочитается точный короткий
// токен, для лунок колонка, значения которой похожи на идентификаторы лунок.
func assignRoles(headers []string, rows [][]string, firstData int) map[Role]int {
	candidates := make(map[Role][]int)
	for i, h := range headers {
		if role, ok := ClassifyHeader(h); ok {
			candidates[role] = append(candidates[role], i)
		}
	}

	roles := make(map[Role]int)
	for role, cols := range candidates {
		roles[role] = cols[0]
	}

	for _, col := range candidates[RoleCT] {
		if IsExactCTHeader(headers[col]) {
			roles[RoleCT] = col
			break
		}
	}

	if wells := candidates[RoleWell]; len(wells) > 1 {
		for _, col := range wells {
			sample := columnSample(rows, firstData, col, wellSampleCount)
			if WellMatchRate(sample) >= wellPreferRate {
				roles[RoleWell] = col
				break
			}
		}
	}
	return roles
}
