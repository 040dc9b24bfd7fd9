package formats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileSource описания форматов из JSON или YAML файла. Файл содержит
// список форматов либо объект с ключом "formats".
type FileSource struct {
	path   string
	logger *slog.Logger
}

// NewFileSource создает источник форматов из файла
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{path: path, logger: logger}
}

// Name имя источника для журнала
func (s *FileSource) Name() string {
	return "file:" + s.path
}

// Path путь к файлу
func (s *FileSource) Path() string {
	return s.path
}

// Descriptors читает файл. Повреждённые записи пропускаются с предупреждением,
// ошибка возвращается только если файл нельзя прочитать или разобрать целиком.
func (s *FileSource) Descriptors(ctx context.Context) ([]Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read formats file: %w", err)
	}

	var entries []entry
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		entries, err = yamlEntries(data)
	default:
		entries, err = jsonEntries(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse formats file %s: %w", s.path, err)
	}

	out := make([]Descriptor, 0, len(entries))
	for i, e := range entries {
		d, err := e.decode()
		if err != nil {
			s.logger.Warn("Skipping malformed format entry", "file", s.path, "index", i, "error", err)
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// entry одна запись файла, ещё не разобранная в Descriptor
type entry struct {
	json json.RawMessage
	yaml *yaml.Node
}

func (e entry) decode() (Descriptor, error) {
	if e.yaml != nil {
		var d Descriptor
		if err := e.yaml.Decode(&d); err != nil {
			return Descriptor{}, err
		}
		if err := d.Validate(); err != nil {
			return Descriptor{}, err
		}
		return d.withDefaults(), nil
	}
	return DecodeDescriptor(e.json)
}

func jsonEntries(data []byte) ([]entry, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var raw []json.RawMessage
	if data[0] == '[' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	} else {
		var doc struct {
			Formats []json.RawMessage `json:"formats"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		raw = doc.Formats
	}

	entries := make([]entry, len(raw))
	for i, r := range raw {
		entries[i] = entry{json: r}
	}
	return entries, nil
}

func yamlEntries(data []byte) ([]entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	var list *yaml.Node
	switch root.Kind {
	case yaml.SequenceNode:
		list = root
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value == "formats" {
				list = root.Content[i+1]
				break
			}
		}
	}
	if list == nil {
		return nil, nil
	}
	if list.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: formats must be a list", list.Line)
	}

	entries := make([]entry, len(list.Content))
	for i, n := range list.Content {
		entries[i] = entry{yaml: n}
	}
	return entries, nil
}

// DecodeDescriptor разбирает и проверяет одно описание формата в JSON
func DecodeDescriptor(data []byte) (Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return Descriptor{}, fmt.Errorf("failed to decode format descriptor: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}
	return d.withDefaults(), nil
}

// EncodeDescriptor сериализует описание формата в JSON
func EncodeDescriptor(d Descriptor) ([]byte, error) {
	return json.Marshal(d)
}
