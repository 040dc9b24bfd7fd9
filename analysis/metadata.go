package analysis

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Unknown значение метаданных, которые не удалось разобрать
const Unknown = "unknown"

var (
	platePattern = regexp.MustCompile(`(?i)plate\s*[-_#№]?\s*(\d+)`)
	datePattern  = regexp.MustCompile(`(?:^|\D)(\d{8})(?:\D|$)`)
	dateLayouts  = []string{"20060102", "02012006"}
)

// ParsePlateMetadata извлекает номер планшета и дату из имени файла
// вида "PLATE12_20240315.xlsx". Дата ищется после номера планшета и
// пробуется как ГГГГММДД, затем как ДДММГГГГ.
func ParsePlateMetadata(fileName string) (plateID, date string) {
	name := filepath.Base(strings.TrimSpace(fileName))
	plateID, date = Unknown, Unknown

	rest := name
	if loc := platePattern.FindStringSubmatchIndex(name); loc != nil {
		plateID = name[loc[2]:loc[3]]
		rest = name[loc[1]:]
	}

	if m := datePattern.FindStringSubmatch(rest); m != nil {
		if d, ok := parseDate(m[1]); ok {
			date = d
		}
	}
	return plateID, date
}

func parseDate(s string) (string, bool) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() < 1990 || t.Year() > 2100 {
			continue
		}
		return t.Format(time.DateOnly), true
	}
	return "", false
}
