package formats

import (
	"fmt"
	"maps"
	"slices"

	"pcrimport/importer"

	"github.com/go-playground/validator/v10"
)

// ExtractorKind идентификатор процедуры извлечения
type ExtractorKind string

const (
	ExtractorGeneric     ExtractorKind = "generic"      // Одна пара мишень/CT на строку
	ExtractorBlock       ExtractorKind = "block"        // Как generic, но до первой пустой строки
	ExtractorMultiTarget ExtractorKind = "multi_target" // Несколько пар мишень/CT в строке
)

// Layout ожидаемая структура листа: роли колонок и строка начала данных (0-based)
type Layout struct {
	Columns  map[importer.Role]int `json:"columns" yaml:"columns" validate:"dive,keys,oneof=well sample target ct,endkeys,gte=0"`
	StartRow int                   `json:"start_row" yaml:"start_row" validate:"gte=0"`
}

// Column возвращает индекс колонки для роли
func (l Layout) Column(role importer.Role) (int, bool) {
	idx, ok := l.Columns[role]
	return idx, ok
}

// Descriptor описание формата выгрузки одного прибора.
// Неизменяем в течение распознавания и извлечения.
type Descriptor struct {
	ID        string `json:"id" yaml:"id" validate:"required"`
	Version   string `json:"version,omitempty" yaml:"version,omitempty"`
	Vendor    string `json:"vendor,omitempty" yaml:"vendor,omitempty"`
	Model     string `json:"model,omitempty" yaml:"model,omitempty"`
	PlateSize string `json:"plate_size,omitempty" yaml:"plate_size,omitempty"`

	HeaderKeywords []string `json:"header_keywords,omitempty" yaml:"header_keywords,omitempty"`
	Layout         Layout   `json:"layout" yaml:"layout"`

	// Проверки при распознавании
	Keywords     []string      `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	RequiredRole importer.Role `json:"required_role,omitempty" yaml:"required_role,omitempty" validate:"omitempty,oneof=well sample target ct"`
	MinDataRows  int           `json:"min_data_rows,omitempty" yaml:"min_data_rows,omitempty" validate:"gte=0"`
	SkipSheets   []string      `json:"skip_sheets,omitempty" yaml:"skip_sheets,omitempty"`

	// Извлечение
	Extractor     ExtractorKind `json:"extractor,omitempty" yaml:"extractor,omitempty" validate:"omitempty,oneof=generic block multi_target"`
	RequireTarget bool          `json:"require_target,omitempty" yaml:"require_target,omitempty"`
	DefaultTarget string        `json:"default_target,omitempty" yaml:"default_target,omitempty"`
}

var validate = validator.New()

// Validate проверяет описание формата
func (d Descriptor) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("invalid format descriptor %q: %w", d.ID, err)
	}
	if FoldIdentifier(d.ID) == "" {
		return fmt.Errorf("invalid format descriptor: empty identifier")
	}
	return nil
}

// Clone возвращает копию, не разделяющую срезы и карты с оригиналом
func (d Descriptor) Clone() Descriptor {
	c := d
	c.HeaderKeywords = slices.Clone(d.HeaderKeywords)
	c.Keywords = slices.Clone(d.Keywords)
	c.SkipSheets = slices.Clone(d.SkipSheets)
	c.Layout.Columns = maps.Clone(d.Layout.Columns)
	return c
}

// withDefaults заполняет необязательные поля
func (d Descriptor) withDefaults() Descriptor {
	if d.Extractor == "" {
		d.Extractor = ExtractorGeneric
	}
	if d.Layout.Columns == nil {
		d.Layout.Columns = map[importer.Role]int{}
	}
	return d
}
