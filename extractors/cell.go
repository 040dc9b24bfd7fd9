package extractors

import (
	"math"
	"strconv"
	"strings"
)

// ctSentinels текстовые значения, означающие отсутствие амплификации
var ctSentinels = map[string]bool{
	"":              true,
	"undetermined":  true,
	"n/a":           true,
	"na":            true,
	"no amp":        true,
	"noamp":         true,
	"-":             true,
	"nan":           true,
	"не определено": true,
	"нет":           true,
}

// ParseCT разбирает значение CT. Возвращает nil для пустых и служебных
// значений и для всего, что не является конечным числом. Десятичная
// запятая допускается.
func ParseCT(s string) *float64 {
	s = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " ")))
	if ctSentinels[s] {
		return nil
	}

	s = strings.NewReplacer(" ", "", ",", ".").Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// cell возвращает значение ячейки или пустую строку за пределами строки
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
