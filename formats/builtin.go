package formats

import "pcrimport/importer"

// Идентификаторы встроенных форматов
const (
	FormatQuantStudio  = "abi_quantstudio"
	FormatABI7500      = "abi_7500"
	FormatCFX          = "biorad_cfx"
	FormatCFXMulti     = "biorad_cfx_multi"
	FormatDTResults    = "dna_technology_dt"
	FormatDTMulti      = "dna_technology_dt_multi"
	FormatDTExtraction = "dna_technology_extraction"
	FormatGeneric      = "generic"
)

var (
	resultSheetsOnly     = []string{"extraction", "выделение"}
	extractionSheetsOnly = []string{"results", "результаты"}
)

func cols(well, sample, target, ct int) map[importer.Role]int {
	m := map[importer.Role]int{importer.RoleWell: well, importer.RoleCT: ct}
	if sample >= 0 {
		m[importer.RoleSample] = sample
	}
	if target >= 0 {
		m[importer.RoleTarget] = target
	}
	return m
}

// Builtin возвращает встроенный набор форматов. Он присутствует всегда,
// даже если внешний источник недоступен или повреждён.
func Builtin() []Descriptor {
	return []Descriptor{
		{
			ID:             FormatQuantStudio,
			Version:        "1.5",
			Vendor:         "Applied Biosystems",
			Model:          "QuantStudio 5/7",
			PlateSize:      "96",
			HeaderKeywords: []string{"well position", "sample name", "target name", "reporter", "quencher", "ct"},
			Layout:         Layout{Columns: cols(1, 3, 4, 8), StartRow: 5},
			Keywords:       []string{"quantstudio", "block type"},
			RequiredRole:   importer.RoleTarget,
			MinDataRows:    1,
			SkipSheets:     resultSheetsOnly,
			Extractor:      ExtractorBlock,
			RequireTarget:  true,
		},
		{
			ID:             FormatABI7500,
			Version:        "2.3",
			Vendor:         "Applied Biosystems",
			Model:          "7500 Real-Time PCR System",
			PlateSize:      "96",
			HeaderKeywords: []string{"well", "sample name", "target name", "task", "reporter", "ct"},
			Layout:         Layout{Columns: cols(0, 1, 2, 6), StartRow: 8},
			Keywords:       []string{"7500"},
			RequiredRole:   importer.RoleTarget,
			MinDataRows:    1,
			SkipSheets:     resultSheetsOnly,
			Extractor:      ExtractorBlock,
			RequireTarget:  true,
		},
		{
			ID:             FormatCFX,
			Version:        "2.x",
			Vendor:         "Bio-Rad",
			Model:          "CFX96 / CFX Opus",
			PlateSize:      "96",
			HeaderKeywords: []string{"well", "fluor", "target", "content", "sample", "cq"},
			Layout:         Layout{Columns: cols(1, 5, 3, 7), StartRow: 1},
			Keywords:       []string{"fluor", "cfx", "bio-rad"},
			RequiredRole:   importer.RoleTarget,
			MinDataRows:    1,
			SkipSheets:     resultSheetsOnly,
			Extractor:      ExtractorGeneric,
		},
		{
			ID:             FormatCFXMulti,
			Version:        "2.x",
			Vendor:         "Bio-Rad",
			Model:          "CFX96 / CFX Opus (wide export)",
			PlateSize:      "96",
			HeaderKeywords: []string{"well", "sample", "target", "cq"},
			Layout:         Layout{Columns: cols(0, 1, 2, 3), StartRow: 2},
			Keywords:       []string{"cfx", "bio-rad"},
			MinDataRows:    1,
			SkipSheets:     resultSheetsOnly,
			Extractor:      ExtractorMultiTarget,
			RequireTarget:  true,
		},
		{
			ID:             FormatDTResults,
			Version:        "7.x",
			Vendor:         "ДНК-Технология",
			Model:          "ДТпрайм / ДТ-96",
			PlateSize:      "96",
			HeaderKeywords: []string{"лунка", "образ", "мишень", "ct"},
			Layout:         Layout{Columns: cols(0, 1, 2, 3), StartRow: 2},
			Keywords:       []string{"дтпрайм", "дт-96", "днк-технология", "dtprime"},
			RequiredRole:   importer.RoleTarget,
			MinDataRows:    1,
			SkipSheets:     resultSheetsOnly,
			Extractor:      ExtractorGeneric,
			RequireTarget:  true,
		},
		{
			ID:             FormatDTMulti,
			Version:        "7.x",
			Vendor:         "ДНК-Технология",
			Model:          "ДТпрайм / ДТ-96 (по каналам)",
			PlateSize:      "96",
			HeaderKeywords: []string{"лунка", "образ", "ct"},
			Layout:         Layout{Columns: cols(0, 1, -1, 3), StartRow: 2},
			Keywords:       []string{"дтпрайм", "дт-96", "днк-технология", "dtprime"},
			MinDataRows:    1,
			SkipSheets:     resultSheetsOnly,
			Extractor:      ExtractorMultiTarget,
		},
		{
			ID:             FormatDTExtraction,
			Version:        "7.x",
			Vendor:         "ДНК-Технология",
			Model:          "ДТпрайм / ДТ-96 (лист выделения)",
			PlateSize:      "96",
			HeaderKeywords: []string{"лунка", "образ", "мишень", "ct", "выделен"},
			Layout:         Layout{Columns: cols(0, 1, 2, 3), StartRow: 1},
			Keywords:       []string{"выделен", "extraction"},
			MinDataRows:    1,
			SkipSheets:     extractionSheetsOnly,
			Extractor:      ExtractorGeneric,
		},
		{
			ID:             FormatGeneric,
			Version:        "1",
			Vendor:         "generic",
			Model:          "Well / Sample / Target / Ct table",
			PlateSize:      "96",
			HeaderKeywords: []string{"well", "sample", "target", "ct"},
			Layout:         Layout{Columns: cols(0, 1, 2, 3), StartRow: 1},
			Extractor:      ExtractorGeneric,
		},
	}
}
