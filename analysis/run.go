// Package analysis оценивает планшет по нормализованным строкам:
// проверяет внутренний контроль каждой пары лунок и классифицирует мишени.
package analysis

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pcrimport/extractors"
	"pcrimport/importer"

	"github.com/samber/lo"
)

// ErrInvalidState шаг анализа вызван не в своём состоянии
var ErrInvalidState = errors.New("invalid analysis state")

// State состояние анализа планшета
type State int

const (
	Initialized State = iota
	MetadataExtracted
	WellPairsEnumerated
	Evaluating
	Finalized
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case MetadataExtracted:
		return "metadata_extracted"
	case WellPairsEnumerated:
		return "well_pairs_enumerated"
	case Evaluating:
		return "evaluating"
	case Finalized:
		return "finalized"
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

const (
	plateRows    = "ABCDEFGH"
	plateColumns = 12
)

// Run анализ одного планшета. Шаги выполняются строго по порядку:
// ExtractMetadata, EnumeratePairs, EvaluateNext до исчерпания пар, Finalize.
type Run struct {
	cfg      Config
	fileName string
	wellMap  map[string]string
	byWell   map[string][]extractors.NormalizedRow
	targets  []string

	state   State
	pending [][2]string
	next    int
	pairs   []*WellPairResult
	summary RunSummary
}

// NewRun создает анализ. Ключи wellMap нормализуются, поэтому
// допустимы и "A1", и "A01".
func NewRun(cfg Config, fileName string, rows []extractors.NormalizedRow, wellMap map[string]string) *Run {
	r := &Run{
		cfg:      cfg,
		fileName: fileName,
		wellMap:  make(map[string]string, len(wellMap)),
		byWell:   make(map[string][]extractors.NormalizedRow),
		summary:  RunSummary{FileName: fileName, Valid: true},
	}

	for well, sample := range wellMap {
		if w, ok := importer.NormalizeWell(well); ok {
			r.wellMap[w] = strings.TrimSpace(sample)
		}
	}
	for _, row := range rows {
		r.byWell[row.Well] = append(r.byWell[row.Well], row)
	}

	r.targets = cfg.Targets
	if len(r.targets) == 0 {
		r.targets = lo.Uniq(lo.FilterMap(rows, func(row extractors.NormalizedRow, _ int) (string, bool) {
			return row.Target, !strings.EqualFold(row.Target, cfg.ControlTarget)
		}))
	}
	r.summary.Targets = r.targets
	return r
}

// State текущее состояние
func (r *Run) State() State {
	return r.state
}

// Pairs оценённые пары в порядке планшета
func (r *Run) Pairs() []*WellPairResult {
	return r.pairs
}

func (r *Run) expect(op string, allowed ...State) error {
	for _, s := range allowed {
		if r.state == s {
			return nil
		}
	}
	return fmt.Errorf("%w: %s called in state %s", ErrInvalidState, op, r.state)
}

// ExtractMetadata разбирает номер планшета и дату из имени файла
func (r *Run) ExtractMetadata() error {
	if err := r.expect("ExtractMetadata", Initialized); err != nil {
		return err
	}
	r.summary.PlateID, r.summary.Date = ParsePlateMetadata(r.fileName)
	r.state = MetadataExtracted
	return nil
}

// EnumeratePairs составляет список пар (1,2), (3,4) ... (11,12) для рядов A-H.
// Пара пропускается, если в данных нет ни одной из её лунок или для первой
// лунки нет образца.
func (r *Run) EnumeratePairs() error {
	if err := r.expect("EnumeratePairs", MetadataExtracted); err != nil {
		return err
	}

	for _, row := range plateRows {
		for col := 1; col < plateColumns; col += 2 {
			first := fmt.Sprintf("%c%02d", row, col)
			second := fmt.Sprintf("%c%02d", row, col+1)

			if len(r.byWell[first]) == 0 && len(r.byWell[second]) == 0 {
				continue
			}
			if r.wellMap[first] == "" {
				continue
			}
			r.pending = append(r.pending, [2]string{first, second})
		}
	}
	r.state = WellPairsEnumerated
	return nil
}

// EvaluateNext оценивает следующую пару. Возвращает false, когда пар не осталось.
func (r *Run) EvaluateNext() (bool, error) {
	if err := r.expect("EvaluateNext", WellPairsEnumerated, Evaluating); err != nil {
		return false, err
	}
	r.state = Evaluating
	if r.next >= len(r.pending) {
		return false, nil
	}

	wells := r.pending[r.next]
	r.next++

	pair := r.evaluate(wells)
	r.pairs = append(r.pairs, pair)
	r.summary.PairsEvaluated++
	if pair.Validation == Invalid {
		r.summary.InvalidSamples++
		if pair.Category.IsControl() {
			r.summary.Valid = false
		}
	}
	return true, nil
}

// Finalize подсчитывает положительные результаты по отобранным парам
func (r *Run) Finalize() (*RunSummary, error) {
	if err := r.expect("Finalize", WellPairsEnumerated, Evaluating); err != nil {
		return nil, err
	}
	if r.next < len(r.pending) {
		return nil, fmt.Errorf("%w: %d pair(s) not evaluated", ErrInvalidState, len(r.pending)-r.next)
	}

	r.summary.DetectableCounts = CountDetectable(r.pairs, r.targets)
	r.state = Finalized
	summary := r.summary
	return &summary, nil
}

func (r *Run) evaluate(wells [2]string) *WellPairResult {
	rows := append(append([]extractors.NormalizedRow{}, r.byWell[wells[0]]...), r.byWell[wells[1]]...)

	control := lo.FilterMap(rows, func(row extractors.NormalizedRow, _ int) (float64, bool) {
		if row.CT == nil || !strings.EqualFold(row.Target, r.cfg.ControlTarget) {
			return 0, false
		}
		return *row.CT, true
	})

	pair := &WellPairResult{
		Wells:     wells,
		Sample:    r.wellMap[wells[0]],
		ControlCT: control,
		Results:   make(map[string]TargetResult, len(r.targets)),
	}
	pair.Category = r.category(pair.Sample)
	pair.ControlValid = lo.SomeBy(pair.ControlCT, r.cfg.ControlRange.Contains)

	pair.Validation = Valid
	if !pair.ControlValid {
		pair.Validation = Invalid
	}

	inconclusive := false
	for _, target := range r.targets {
		res := r.classify(firstCT(rows, target))
		if res.Classification == Inconclusive {
			inconclusive = true
		}
		pair.Results[target] = res
	}

	pair.Selected = pair.Validation == Valid && !inconclusive
	return pair
}

// firstCT первое определённое значение CT мишени в строках пары
func firstCT(rows []extractors.NormalizedRow, target string) *float64 {
	for _, row := range rows {
		if row.CT != nil && strings.EqualFold(row.Target, target) {
			v := *row.CT
			return &v
		}
	}
	return nil
}

func (r *Run) classify(ct *float64) TargetResult {
	if ct == nil {
		return TargetResult{Classification: NotDetected}
	}

	res := TargetResult{CT: ct, Display: strconv.FormatFloat(*ct, 'f', 2, 64)}
	switch {
	case r.cfg.DetectableRange.Contains(*ct):
		res.Classification = Detectable
	case r.cfg.InconclusiveRange.Contains(*ct):
		res.Classification = Inconclusive
	default:
		res.Classification = Unclassified
	}
	return res
}

func (r *Run) category(sample string) Category {
	upper := strings.ToUpper(sample)
	for _, m := range r.cfg.NegativeMarkers {
		if strings.Contains(upper, strings.ToUpper(m)) {
			return CategoryNegative
		}
	}
	for _, m := range r.cfg.PositiveMarkers {
		if strings.Contains(upper, strings.ToUpper(m)) {
			return CategoryPositive
		}
	}
	return CategorySample
}

// Analyze выполняет все шаги анализа
func Analyze(cfg Config, fileName string, rows []extractors.NormalizedRow, wellMap map[string]string) (*RunSummary, []*WellPairResult, error) {
	run := NewRun(cfg, fileName, rows, wellMap)
	if err := run.ExtractMetadata(); err != nil {
		return nil, nil, err
	}
	if err := run.EnumeratePairs(); err != nil {
		return nil, nil, err
	}
	for {
		ok, err := run.EvaluateNext()
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			break
		}
	}
	summary, err := run.Finalize()
	if err != nil {
		return nil, nil, err
	}
	return summary, run.Pairs(), nil
}

// WellMapFromRows строит соответствие лунка -> образец по самим строкам
// выгрузки, если внешней раскладки планшета нет
func WellMapFromRows(rows []extractors.NormalizedRow) map[string]string {
	m := make(map[string]string)
	for _, row := range rows {
		if row.Sample == "" {
			continue
		}
		if _, ok := m[row.Well]; !ok {
			m[row.Well] = row.Sample
		}
	}
	return m
}
