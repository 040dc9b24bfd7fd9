package analysis

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Range замкнутый диапазон значений CT
type Range struct {
	Min float64 `json:"min" validate:"gte=0"`
	Max float64 `json:"max" validate:"gtefield=Min"`
}

// Contains значение входит в диапазон
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Config параметры анализа планшета
type Config struct {
	ControlTarget     string   `json:"control_target" validate:"required"`
	ControlRange      Range    `json:"control_range"`
	DetectableRange   Range    `json:"detectable_range"`
	InconclusiveRange Range    `json:"inconclusive_range"`
	NegativeMarkers   []string `json:"negative_markers" validate:"dive,required"`
	PositiveMarkers   []string `json:"positive_markers" validate:"dive,required"`
	// Targets мишени отчёта; пустой список означает все мишени файла,
	// кроме контрольной, в порядке появления
	Targets []string `json:"targets,omitempty" validate:"dive,required"`
}

// DefaultConfig параметры по умолчанию
func DefaultConfig() Config {
	return Config{
		ControlTarget:     "RP",
		ControlRange:      Range{Min: 10, Max: 35},
		DetectableRange:   Range{Min: 10, Max: 38},
		InconclusiveRange: Range{Min: 38.01, Max: 40},
		NegativeMarkers:   []string{"CN", "NEG"},
		PositiveMarkers:   []string{"CP", "POS"},
	}
}

var validate = validator.New()

// Validate проверяет параметры
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid analysis config: %w", err)
	}
	return nil
}
