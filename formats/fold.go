package formats

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// FoldIdentifier приводит идентификатор формата к ключу поиска:
// диакритика латинских букв удалена, регистр свёрнут, пробелы заменены на "_".
// Кириллические "й" и "ё" остаются отдельными буквами.
func FoldIdentifier(id string) string {
	return strings.Join(strings.Fields(cases.Fold().String(stripLatinMarks(id))), "_")
}

// stripLatinMarks удаляет комбинируемые знаки только после латинской буквы
func stripLatinMarks(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	latin := false
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			if latin {
				continue
			}
		} else {
			latin = unicode.Is(unicode.Latin, r)
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}
