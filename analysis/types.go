package analysis

// Classification результат по мишени
type Classification string

const (
	Detectable   Classification = "detectable"
	Inconclusive Classification = "inconclusive"
	NotDetected  Classification = "not_detected"
	// Unclassified CT есть, но вне обоих диапазонов. Значение
	// показывается, но ни в какие подсчёты не входит.
	Unclassified Classification = "unclassified"
)

// Validation итог проверки внутреннего контроля пары
type Validation string

const (
	Valid   Validation = "valid"
	Invalid Validation = "invalid"
)

// Category вид образца
type Category string

const (
	CategorySample   Category = ""
	CategoryNegative Category = "negative"
	CategoryPositive Category = "positive"
)

// IsControl образец является контрольным
func (c Category) IsControl() bool {
	return c != CategorySample
}

// TargetResult классификация одной мишени пары
type TargetResult struct {
	Classification Classification `json:"classification"`
	CT             *float64       `json:"ct"`
	Display        string         `json:"display"`
}

// WellPairResult результат пары лунок, в которых стоит один образец.
// После оценки меняется только через Override.
type WellPairResult struct {
	Wells        [2]string               `json:"wells"`
	Sample       string                  `json:"sample"`
	Category     Category                `json:"category,omitempty"`
	ControlCT    []float64               `json:"control_ct"`
	ControlValid bool                    `json:"control_valid"`
	Validation   Validation              `json:"validation"`
	Results      map[string]TargetResult `json:"results"`
	Selected     bool                    `json:"selected"`
	Overridden   bool                    `json:"overridden"`
}

// Override ручное решение оператора о включении пары в отчёт
func (p *WellPairResult) Override(selected bool) {
	p.Selected = selected
	p.Overridden = true
}

// RunSummary итог анализа планшета
type RunSummary struct {
	FileName         string         `json:"file_name"`
	PlateID          string         `json:"plate_id"`
	Date             string         `json:"date"`
	Valid            bool           `json:"valid"`
	InvalidSamples   int            `json:"invalid_samples"`
	PairsEvaluated   int            `json:"pairs_evaluated"`
	Targets          []string       `json:"targets"`
	DetectableCounts map[string]int `json:"detectable_counts"`
}

// CountDetectable считает по отобранным парам количество положительных
// результатов для каждой мишени
func CountDetectable(pairs []*WellPairResult, targets []string) map[string]int {
	counts := make(map[string]int, len(targets))
	for _, t := range targets {
		counts[t] = 0
	}
	for _, p := range pairs {
		if !p.Selected {
			continue
		}
		for _, t := range targets {
			if p.Results[t].Classification == Detectable {
				counts[t]++
			}
		}
	}
	return counts
}
