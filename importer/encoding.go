package importer

import (
	"unicode"

	"golang.org/x/text/encoding/charmap"
)

// RepairLegacyText исправляет кириллицу из старых xls-файлов, где байты
// Windows-1251 были прочитаны как Latin-1 ("Ëóíêà" -> "Лунка").
// Строки, не похожие на такую порчу, возвращаются без изменений.
func RepairLegacyText(s string) string {
	if !looksLikeCP1251Mojibake(s) {
		return s
	}

	raw, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return s
	}
	fixed, err := charmap.Windows1251.NewDecoder().String(raw)
	if err != nil {
		return s
	}
	return fixed
}

// looksLikeCP1251Mojibake: только ASCII и позиции кириллицы Windows-1251
// в Latin-1, причём такие символы составляют не меньше половины букв
func looksLikeCP1251Mojibake(s string) bool {
	high, letters := 0, 0
	for _, r := range s {
		switch {
		case r < 0x80:
			if unicode.IsLetter(r) {
				letters++
			}
		case r >= 0xC0 && r <= 0xFF, r == 0xA8, r == 0xB8: // А-я, Ё, ё
			high++
			letters++
		default:
			return false
		}
	}
	return high >= 2 && high*2 >= letters
}
