package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"pcrimport/analysis"
	"pcrimport/detection"
	"pcrimport/extractors"
	"pcrimport/formats"
	"pcrimport/importer"
)

// ErrNoUsableRows файл прочитан, но не дал ни одной строки. Такой результат
// принимается только явно (Request.AcceptEmpty), иначе он скрывает
// несовпадение формата.
var ErrNoUsableRows = errors.New("no usable rows")

// Registry форматы, доступные конвейеру
type Registry interface {
	Descriptors() []formats.Descriptor
	Get(id string) (formats.Descriptor, bool)
}

// Request параметры обработки одного файла
type Request struct {
	Path        string
	FileName    string            // Имя для метаданных планшета; по умолчанию имя файла из Path
	Kind        importer.FileKind // KindAuto, если не задан
	Sheet       string            // Пустое значение означает первый лист с заголовком
	FormatID    string            // Явно выбранный формат, распознавание пропускается
	WellMap     map[string]string // Раскладка планшета; nil означает взять образцы из файла
	AcceptEmpty bool
}

// Report результат обработки файла
type Report struct {
	FileName  string                     `json:"file_name"`
	Sheet     string                     `json:"sheet"`
	Detection *detection.Result          `json:"detection,omitempty"`
	Format    string                     `json:"format"`
	Rows      []extractors.NormalizedRow `json:"rows"`
	Summary   *analysis.RunSummary       `json:"summary,omitempty"`
	Pairs     []*analysis.WellPairResult `json:"pairs,omitempty"`
	Warnings  []string                   `json:"warnings,omitempty"`
}

func (r *Report) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// UseCase конвейер: сканирование, распознавание, извлечение, анализ
type UseCase struct {
	registry      Registry
	detector      *detection.Detector
	analysisCfg   analysis.Config
	minConfidence float64
	logger        *slog.Logger
}

// NewUseCase создает конвейер
func NewUseCase(
	registry Registry,
	analysisCfg analysis.Config,
	minConfidence float64,
	logger *slog.Logger,
) *UseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &UseCase{
		registry:      registry,
		detector:      detection.NewDetector(registry, logger),
		analysisCfg:   analysisCfg,
		minConfidence: minConfidence,
		logger:        logger,
	}
}

// Detect сканирует файл и распознает формат
func (uc *UseCase) Detect(ctx context.Context, req Request) (*detection.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wb, err := importer.Open(req.Path, req.Kind)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	raw, err := importer.ScanWorkbook(wb, importer.ScanOptions{Sheet: req.Sheet})
	if err != nil {
		return nil, err
	}
	return uc.detector.Detect(raw)
}

// Extract распознает формат и извлекает строки. Если выбранный формат не
// подходит файлу, по очереди пробуются альтернативы распознавания.
func (uc *UseCase) Extract(ctx context.Context, req Request) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{FileName: req.FileName}
	if report.FileName == "" {
		report.FileName = filepath.Base(req.Path)
	}

	wb, err := importer.Open(req.Path, req.Kind)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	raw, err := importer.ScanWorkbook(wb, importer.ScanOptions{Sheet: req.Sheet})
	if err != nil {
		// Без заголовка можно работать только с явно выбранным форматом
		if req.FormatID == "" || !errors.Is(err, importer.ErrNoHeaderFound) {
			return nil, err
		}
		report.warn("header not found, using format %s as declared", req.FormatID)
	}

	report.Sheet = req.Sheet
	if raw != nil {
		report.Sheet = raw.SheetName
	}
	if report.Sheet == "" {
		if names := wb.SheetNames(); len(names) > 0 {
			report.Sheet = names[0]
		}
	}

	candidates, err := uc.candidates(req, raw, report)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var lastErr error
	for _, id := range candidates {
		desc, ok := uc.registry.Get(id)
		if !ok {
			lastErr = fmt.Errorf("%w: %q", formats.ErrUnknownFormat, id)
			continue
		}

		rows, err := extractors.For(desc.Extractor).Extract(wb, report.Sheet, extractors.Bind(desc, raw))
		if errors.Is(err, extractors.ErrMissingRequiredColumn) || errors.Is(err, extractors.ErrIncompleteFile) {
			uc.logger.Info("Format does not fit file, trying next candidate",
				"file", report.FileName, "format", desc.ID, "error", err)
			report.warn("format %s rejected: %v", desc.ID, err)
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}

		report.Format = desc.ID
		report.Rows = rows
		break
	}

	if report.Format == "" {
		return nil, lastErr
	}

	uc.logger.Info("Rows extracted",
		"file", report.FileName,
		"sheet", report.Sheet,
		"format", report.Format,
		"rows", len(report.Rows))

	if len(report.Rows) == 0 && !req.AcceptEmpty {
		return report, fmt.Errorf("%w: format %s matched sheet %q but produced no rows",
			ErrNoUsableRows, report.Format, report.Sheet)
	}
	return report, nil
}

// candidates порядок форматов для извлечения
func (uc *UseCase) candidates(req Request, raw *importer.RawStructure, report *Report) ([]string, error) {
	if req.FormatID != "" {
		desc, ok := uc.registry.Get(req.FormatID)
		if !ok {
			return nil, fmt.Errorf("%w: %q", formats.ErrUnknownFormat, req.FormatID)
		}
		return []string{desc.ID}, nil
	}

	result, err := uc.detector.Detect(raw)
	if err != nil {
		return nil, err
	}
	report.Detection = result

	if result.Best == "" {
		return nil, fmt.Errorf("%w: every format excludes sheet %q", detection.ErrNoCandidate, raw.SheetName)
	}
	if result.Score < uc.minConfidence {
		report.warn("low detection confidence: %s scored %.2f, threshold %.2f",
			result.Best, result.Score, uc.minConfidence)
	}
	return result.Ranked(), nil
}

// Process извлекает строки и анализирует планшет
func (uc *UseCase) Process(ctx context.Context, req Request) (*Report, error) {
	report, err := uc.Extract(ctx, req)
	if err != nil {
		return report, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wellMap := req.WellMap
	if wellMap == nil {
		wellMap = analysis.WellMapFromRows(report.Rows)
		report.warn("well map taken from the sample column of the file")
	}

	summary, pairs, err := analysis.Analyze(uc.analysisCfg, report.FileName, report.Rows, wellMap)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze plate: %w", err)
	}
	report.Summary = summary
	report.Pairs = pairs

	uc.logger.Info("Plate analyzed",
		"file", report.FileName,
		"plate", summary.PlateID,
		"pairs", summary.PairsEvaluated,
		"invalid", summary.InvalidSamples,
		"run_valid", summary.Valid)
	return report, nil
}
