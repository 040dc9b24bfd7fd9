package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// wellPattern буква ряда A-H и номер колонки 1-12 из одной или двух цифр
var wellPattern = regexp.MustCompile(`^([a-h])(0[1-9]|1[0-2]|[1-9])$`)

// CanonicalWellPattern формат нормализованного идентификатора лунки
var CanonicalWellPattern = regexp.MustCompile(`^[A-H](0[1-9]|1[0-2])$`)

// NormalizeWell приводит идентификатор лунки к виду "A01".
// Принимает "A1", "a01", "A 1", кириллические двойники букв.
// Повторная нормализация возвращает то же значение.
func NormalizeWell(s string) (string, bool) {
	token := strings.ReplaceAll(NormalizeHeaderToken(s), " ", "")
	m := wellPattern.FindStringSubmatch(token)
	if m == nil {
		return "", false
	}
	col, err := strconv.Atoi(m[2])
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%s%02d", strings.ToUpper(m[1]), col), true
}

// WellMatchRate доля значений, похожих на идентификатор лунки
func WellMatchRate(values []string) float64 {
	if len(values) == 0 {
		return 0
	}
	matched := 0
	for _, v := range values {
		if _, ok := NormalizeWell(v); ok {
			matched++
		}
	}
	return float64(matched) / float64(len(values))
}
