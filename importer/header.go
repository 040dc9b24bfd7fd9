package importer

import (
	"strings"
	"unicode"
)

// Role семантическая роль колонки
type Role string

const (
	RoleWell   Role = "well"
	RoleSample Role = "sample"
	RoleTarget Role = "target"
	RoleCT     Role = "ct"
)

// Roles все роли в порядке приоритета
var Roles = []Role{RoleWell, RoleSample, RoleTarget, RoleCT}

// ParseRole разбирает имя роли
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleWell, RoleSample, RoleTarget, RoleCT:
		return r, true
	}
	return "", false
}

// HeaderKeywords ключевые слова строки заголовков. Русские варианты
// встречаются в выгрузках отечественных амплификаторов.
var HeaderKeywords = []string{"well", "sample", "target", "name", "cq", "ct", "c(t)", "лунка", "образ", "мишень"}

// lookalikes кириллические символы, визуально совпадающие с латиницей
var lookalikes = map[rune]rune{
	'а': 'a',
	'в': 'b',
	'е': 'e',
	'к': 'k',
	'м': 'm',
	'н': 'h',
	'о': 'o',
	'р': 'p',
	'с': 'c',
	'т': 't',
	'у': 'y',
	'х': 'x',
}

// NormalizeHeaderToken приводит текст заголовка к виду для сравнения:
// нижний регистр, кириллические двойники заменены латиницей, скобки
// удалены, пробелы схлопнуты.
func NormalizeHeaderToken(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if l, ok := lookalikes[r]; ok {
			r = l
		}
		switch r {
		case '(', ')', '[', ']', '{', '}':
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

var (
	ctTokens       = map[string]bool{"ct": true, "cq": true, "cp": true}
	wellKeywords   = normalizeAll("well", "лунка")
	targetKeywords = normalizeAll("target", "detector", "gene", "мишень", "ген")
	sampleKeywords = normalizeAll("sample", "name", "образ", "идентификатор", "пациент")
	headerKeywords = normalizeAll(HeaderKeywords...)
)

func normalizeAll(words ...string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = NormalizeHeaderToken(w)
	}
	return out
}

// words разбивает нормализованный заголовок на слова
func words(token string) []string {
	return strings.FieldsFunc(token, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// IsExactCTHeader заголовок целиком является коротким токеном CT (ct, cq, c(t), cp)
func IsExactCTHeader(header string) bool {
	return ctTokens[NormalizeHeaderToken(header)]
}

// IsCTHeader заголовок содержит слово ct/cq/cp ("Ct Mean", "C(t) SD")
func IsCTHeader(header string) bool {
	for _, w := range words(NormalizeHeaderToken(header)) {
		if ctTokens[w] {
			return true
		}
	}
	return false
}

// ClassifyHeader определяет роль колонки по тексту заголовка
func ClassifyHeader(header string) (Role, bool) {
	token := NormalizeHeaderToken(header)
	if token == "" {
		return "", false
	}

	switch {
	case containsAny(token, wellKeywords) || token == "pos":
		return RoleWell, true
	case IsCTHeader(header):
		return RoleCT, true
	case containsAny(token, targetKeywords):
		return RoleTarget, true
	case containsAny(token, sampleKeywords):
		return RoleSample, true
	}
	return "", false
}

// IsTargetLabel заголовок обозначает колонку с именем мишени
// ("Target", "Target Name", "Name"), а не само имя мишени
func IsTargetLabel(header string) bool {
	token := NormalizeHeaderToken(header)
	if containsAny(token, targetKeywords) {
		return true
	}
	return token == "name" || token == NormalizeHeaderToken("название")
}

// isHeaderKeywordCell ячейка содержит одно из ключевых слов заголовка
func isHeaderKeywordCell(cell string) bool {
	token := NormalizeHeaderToken(cell)
	return token != "" && containsAny(token, headerKeywords)
}

// containsAny проверяет, содержит ли строка любую из подстрок
func containsAny(s string, substrings []string) bool {
	for _, substr := range substrings {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
