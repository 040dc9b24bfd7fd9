// Package detection определяет формат выгрузки амплификатора по структурному
// снимку листа. Каждый формат реестра получает оценку от 0 до 100.
package detection

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"pcrimport/formats"
	"pcrimport/importer"
)

// Веса составляющих оценки
const (
	weightHeaders     = 30.0
	weightRoles       = 25.0
	weightDataStart   = 15.0
	weightValidations = 30.0

	roleTolerance    = 2   // Допустимое смещение колонки
	dataStartFull    = 3   // Смещение строки данных с полной оценкой
	dataStartHalf    = 5   // Смещение строки данных с половинной оценкой
	minWellMatchRate = 0.7 // Доля значений, похожих на лунки
	maxAlternatives  = 3
)

// Catalog источник форматов для оценки
type Catalog interface {
	Descriptors() []formats.Descriptor
}

// Breakdown составляющие оценки одного формата
type Breakdown struct {
	Headers           float64 `json:"headers"`
	Roles             float64 `json:"roles"`
	DataStart         float64 `json:"data_start"`
	Validations       float64 `json:"validations"`
	ValidationsPassed int     `json:"validations_passed"`
	ValidationsTotal  int     `json:"validations_total"`
	Total             float64 `json:"total"`
}

// Candidate формат с оценкой
type Candidate struct {
	ID        string    `json:"id"`
	Score     float64   `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
}

// Result результат распознавания
type Result struct {
	Best         string                 `json:"best"`
	Score        float64                `json:"score"`
	Breakdown    Breakdown              `json:"breakdown"`
	Alternatives []Candidate            `json:"alternatives"`
	Skipped      []string               `json:"skipped,omitempty"`
	Raw          *importer.RawStructure `json:"raw"`
}

// Ranked лучший формат и альтернативы одним списком
func (r *Result) Ranked() []string {
	if r.Best == "" {
		return nil
	}
	ids := make([]string, 0, len(r.Alternatives)+1)
	ids = append(ids, r.Best)
	for _, c := range r.Alternatives {
		ids = append(ids, c.ID)
	}
	return ids
}

// Detector оценивает форматы реестра
type Detector struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewDetector создает детектор поверх каталога форматов
func NewDetector(catalog Catalog, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{catalog: catalog, logger: logger}
}

// DetectFile сканирует файл и распознает формат
func (d *Detector) DetectFile(path string, kind importer.FileKind, opts importer.ScanOptions) (*Result, error) {
	raw, err := importer.Scan(path, kind, opts)
	if err != nil {
		return nil, err
	}
	return d.Detect(raw)
}

// Detect оценивает все форматы. Низкая уверенность ошибкой не считается,
// порог выбирает вызывающий.
func (d *Detector) Detect(raw *importer.RawStructure) (*Result, error) {
	descriptors := d.catalog.Descriptors()
	if len(descriptors) == 0 {
		return nil, ErrNoCandidate
	}

	result := &Result{Raw: raw}
	candidates := make([]Candidate, 0, len(descriptors))
	for _, desc := range descriptors {
		if SkipsSheet(desc, raw.SheetName) {
			result.Skipped = append(result.Skipped, desc.ID)
			continue
		}
		b := Score(desc, raw)
		candidates = append(candidates, Candidate{ID: desc.ID, Score: b.Total, Breakdown: b})
	}

	// Каталог отдаёт форматы в порядке ключей, поэтому при равных
	// оценках порядок определяется идентификатором
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) == 0 {
		d.logger.Warn("All formats skipped for sheet", "sheet", raw.SheetName)
		return result, nil
	}

	result.Best = candidates[0].ID
	result.Score = candidates[0].Score
	result.Breakdown = candidates[0].Breakdown
	rest := candidates[1:]
	result.Alternatives = append([]Candidate{}, rest[:min(len(rest), maxAlternatives)]...)

	d.logger.Debug("Format detected",
		"sheet", raw.SheetName,
		"best", result.Best,
		"score", result.Score,
		"alternatives", len(result.Alternatives))
	return result, nil
}

// SkipsSheet формат исключён для листа с таким именем
func SkipsSheet(desc formats.Descriptor, sheet string) bool {
	name := importer.NormalizeHeaderToken(sheet)
	if name == "" {
		return false
	}
	for _, s := range desc.SkipSheets {
		if token := importer.NormalizeHeaderToken(s); token != "" && strings.Contains(name, token) {
			return true
		}
	}
	return false
}

// Score вычисляет оценку одного формата
func Score(desc formats.Descriptor, raw *importer.RawStructure) Breakdown {
	var b Breakdown
	b.Headers = weightHeaders * headerFraction(desc.HeaderKeywords, raw.Headers)
	b.Roles = weightRoles * roleFraction(desc.Layout.Columns, raw.Roles)
	b.DataStart = weightDataStart * dataStartCredit(desc.Layout.StartRow, raw.FirstDataRow)

	b.ValidationsPassed, b.ValidationsTotal = validations(desc, raw)
	b.Validations = weightValidations * float64(b.ValidationsPassed) / float64(b.ValidationsTotal)

	b.Total = round2(b.Headers + b.Roles + b.DataStart + b.Validations)
	return b
}

func headerFraction(keywords, headers []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	normalized := normalizeAll(headers)
	found := 0
	for _, kw := range keywords {
		if containsIn(normalized, importer.NormalizeHeaderToken(kw)) {
			found++
		}
	}
	return float64(found) / float64(len(keywords))
}

func roleFraction(expected, actual map[importer.Role]int) float64 {
	if len(expected) == 0 {
		return 0
	}
	matched := 0
	for role, idx := range expected {
		if got, ok := actual[role]; ok && abs(got-idx) <= roleTolerance {
			matched++
		}
	}
	return float64(matched) / float64(len(expected))
}

func dataStartCredit(expected, actual int) float64 {
	switch diff := abs(expected - actual); {
	case diff <= dataStartFull:
		return 1
	case diff <= dataStartHalf:
		return 0.5
	}
	return 0
}

// validations проверки формата. Учитываются только настроенные проверки,
// проверка значений лунок выполняется всегда.
func validations(desc formats.Descriptor, raw *importer.RawStructure) (passed, total int) {
	check := func(ok bool) {
		total++
		if ok {
			passed++
		}
	}

	check(importer.WellMatchRate(raw.WellSamples) >= minWellMatchRate)

	if desc.MinDataRows > 0 {
		check(raw.DataRowCount >= desc.MinDataRows)
	}
	if len(desc.Keywords) > 0 {
		check(hasKeyword(desc.Keywords, raw))
	}
	if desc.RequiredRole != "" {
		_, ok := raw.Roles[desc.RequiredRole]
		check(ok)
	}
	return passed, total
}

func hasKeyword(keywords []string, raw *importer.RawStructure) bool {
	haystack := append(normalizeAll(raw.Headers), normalizeAll(raw.MetadataProbe)...)
	for _, kw := range keywords {
		if containsIn(haystack, importer.NormalizeHeaderToken(kw)) {
			return true
		}
	}
	return false
}

func normalizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := importer.NormalizeHeaderToken(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func containsIn(values []string, token string) bool {
	if token == "" {
		return false
	}
	for _, v := range values {
		if strings.Contains(v, token) {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// String краткое описание результата для журналов и CLI
func (r *Result) String() string {
	if r.Best == "" {
		return "no format"
	}
	return fmt.Sprintf("%s (%.2f)", r.Best, r.Score)
}
