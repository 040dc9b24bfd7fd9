package formats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// ErrUnknownFormat формат с таким идентификатором не зарегистрирован
var ErrUnknownFormat = errors.New("unknown format")

// Source внешний источник описаний форматов
type Source interface {
	Name() string
	Descriptors(ctx context.Context) ([]Descriptor, error)
}

// Registry таблица форматов: встроенные, из внешних источников и
// зарегистрированные во время работы. Создаётся один раз при старте
// и передаётся детектору и экстрактору явно.
type Registry struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	sources []Source
	entries map[string]Descriptor
	runtime map[string]Descriptor
}

// NewRegistry создает реестр, содержащий встроенные форматы.
// Форматы из источников появляются после Load.
func NewRegistry(logger *slog.Logger, sources ...Source) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{
		logger:  logger,
		sources: sources,
		runtime: make(map[string]Descriptor),
	}
	r.entries = r.build(context.Background(), false)
	return r
}

// Load загружает форматы из источников и объединяет их со встроенными.
// Ошибка источника или отдельной записи не прерывает загрузку.
func (r *Registry) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries := r.build(ctx, true)

	// Форматы, зарегистрированные во время чтения источников, не теряются
	r.mu.Lock()
	for key, d := range r.runtime {
		entries[key] = d
	}
	r.entries = entries
	n := len(entries)
	r.mu.Unlock()

	r.logger.Info("Format registry loaded", "formats", n, "sources", len(r.sources))
	return nil
}

// Reload перечитывает источники
func (r *Registry) Reload(ctx context.Context) error {
	return r.Load(ctx)
}

func (r *Registry) build(ctx context.Context, withSources bool) map[string]Descriptor {
	entries := make(map[string]Descriptor)
	for _, d := range Builtin() {
		entries[FoldIdentifier(d.ID)] = d.withDefaults()
	}

	if withSources {
		for _, src := range r.sources {
			descriptors, err := src.Descriptors(ctx)
			if err != nil {
				r.logger.Warn("Format source unavailable, keeping built-in formats",
					"source", src.Name(), "error", err)
				continue
			}
			for _, d := range descriptors {
				if err := d.Validate(); err != nil {
					r.logger.Warn("Skipping malformed format descriptor",
						"source", src.Name(), "id", d.ID, "error", err)
					continue
				}
				entries[FoldIdentifier(d.ID)] = d.Clone().withDefaults()
			}
		}
	}
	return entries
}

// Register добавляет или заменяет формат во время работы
func (r *Registry) Register(d Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}
	key := FoldIdentifier(d.ID)
	d = d.Clone().withDefaults()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.runtime[key] = d
	r.entries[key] = d

	r.logger.Info("Format registered", "id", d.ID, "key", key)
	return nil
}

// Get ищет формат без учёта регистра, диакритики и пробелов
func (r *Registry) Get(id string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.entries[FoldIdentifier(id)]
	if !ok {
		return Descriptor{}, false
	}
	return d.Clone(), true
}

// MustGet возвращает формат или ошибку ErrUnknownFormat
func (r *Registry) MustGet(id string) (Descriptor, error) {
	d, ok := r.Get(id)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownFormat, id)
	}
	return d, nil
}

// List возвращает отсортированные ключи форматов (FoldIdentifier от ID)
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.entries)
}

// Descriptors возвращает копии всех форматов в порядке ключей
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := sortedKeys(r.entries)
	out := make([]Descriptor, len(keys))
	for i, key := range keys {
		out[i] = r.entries[key].Clone()
	}
	return out
}

// Len количество форматов
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func sortedKeys(entries map[string]Descriptor) []string {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
