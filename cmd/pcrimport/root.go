package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pcrimport/importer"
	"pcrimport/internal/application/pipeline"
	"pcrimport/internal/config"
	"pcrimport/internal/container"
	"pcrimport/server"
)

// options общие флаги команд
type options struct {
	formatsFile   string
	formatsDB     string
	logLevel      string
	minConfidence float64
	jsonOutput    bool
}

// importOptions флаги команд, обрабатывающих файл
type importOptions struct {
	format      string
	sheet       string
	kind        string
	wellMap     string
	acceptEmpty bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "pcrimport",
		Short: "Import thermocycler exports: detect the format, extract Ct values, analyze the plate",
		Long: `pcrimport reads .xlsx and .xls exports of real-time PCR instruments,
recognizes the instrument format, extracts well/sample/target/Ct rows
and evaluates well pairs against the internal control.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.formatsFile, "formats", "", "JSON or YAML file with additional formats (FORMATS_FILE)")
	flags.StringVar(&opts.formatsDB, "formats-db", "", "SQLite database with additional formats (FORMATS_DB)")
	flags.StringVar(&opts.logLevel, "log-level", "", "DEBUG, INFO, WARN or ERROR (LOG_LEVEL)")
	flags.Float64Var(&opts.minConfidence, "min-confidence", -1, "score below which detection is reported as low confidence (MIN_CONFIDENCE)")
	flags.BoolVar(&opts.jsonOutput, "json", false, "print JSON instead of tables")

	root.AddCommand(
		newDetectCmd(opts),
		newExtractCmd(opts),
		newAnalyzeCmd(opts),
		newFormatsCmd(opts),
	)
	return root
}

// config конфигурация из окружения с учётом флагов
func (o *options) config() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if o.formatsFile != "" {
		cfg.FormatsFile = o.formatsFile
	}
	if o.formatsDB != "" {
		cfg.FormatsDB = o.formatsDB
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.minConfidence >= 0 {
		cfg.MinConfidence = o.minConfidence
	}
	// Наблюдение за файлом нужно только серверу
	cfg.FormatsWatch = false

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// container собирает реестр и конвейер для одной команды
func (o *options) container(cmd *cobra.Command) (*container.Container, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	logger := server.NewLogger(cfg.SlogLevel(), cmd.ErrOrStderr())
	return container.NewContainer(commandContext(cmd), cfg, logger)
}

func (in *importOptions) register(cmd *cobra.Command, withMap bool) {
	f := cmd.Flags()
	f.StringVar(&in.format, "format", "", "format id; skips detection")
	f.StringVar(&in.sheet, "sheet", "", "sheet name; default is the first sheet with a header row")
	f.StringVar(&in.kind, "kind", "auto", "file kind: auto, xlsx or xls")
	f.BoolVar(&in.acceptEmpty, "accept-empty", false, "accept a file that produces no rows")
	if withMap {
		f.StringVar(&in.wellMap, "map", "", "JSON or YAML file mapping wells to samples; default takes samples from the file")
	}
}

func (in *importOptions) request(path string) (pipeline.Request, error) {
	kind, err := importer.ParseFileKind(in.kind)
	if err != nil {
		return pipeline.Request{}, err
	}
	req := pipeline.Request{
		Path:        path,
		Kind:        kind,
		Sheet:       strings.TrimSpace(in.sheet),
		FormatID:    strings.TrimSpace(in.format),
		AcceptEmpty: in.acceptEmpty,
	}
	if in.wellMap != "" {
		req.WellMap, err = loadWellMap(in.wellMap)
		if err != nil {
			return pipeline.Request{}, err
		}
	}
	return req, nil
}

// loadWellMap читает раскладку планшета. JSON является подмножеством YAML,
// поэтому оба варианта разбираются одним декодером.
func loadWellMap(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read well map: %w", err)
	}
	var m map[string]string
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse well map %s: %w", path, err)
	}
	return m, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
