package container

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"pcrimport/database"
	"pcrimport/formats"
	"pcrimport/internal/application/pipeline"
	"pcrimport/internal/config"
)

// Container контейнер зависимостей: реестр форматов, его источники
// и конвейер импорта. Управляет их жизненным циклом.
type Container struct {
	mu sync.Mutex

	// Конфигурация
	Config *config.Config
	Logger *slog.Logger

	// Реестр форматов и источники
	Registry *formats.Registry
	Store    *database.DescriptorStore // nil, если FORMATS_DB не задан
	Watcher  *formats.Watcher          // nil, если наблюдение выключено

	// Конвейер
	UseCase *pipeline.UseCase

	closed bool
}

// NewContainer создает и инициализирует все компоненты
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Container{Config: cfg, Logger: logger}

	if err := c.initRegistry(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initWatcher(ctx); err != nil {
		c.Close()
		return nil, err
	}

	c.UseCase = pipeline.NewUseCase(c.Registry, cfg.AnalysisConfig(), cfg.MinConfidence, logger)
	return c, nil
}

// initRegistry подключает источники форматов и загружает реестр
func (c *Container) initRegistry(ctx context.Context) error {
	var sources []formats.Source

	if c.Config.FormatsFile != "" {
		sources = append(sources, formats.NewFileSource(c.Config.FormatsFile, c.Logger))
	}
	if c.Config.FormatsDB != "" {
		store, err := database.NewDescriptorStore(c.Config.FormatsDB, c.Logger)
		if err != nil {
			return fmt.Errorf("failed to open formats database: %w", err)
		}
		c.Store = store
		sources = append(sources, store)
	}

	c.Registry = formats.NewRegistry(c.Logger, sources...)
	if err := c.Registry.Load(ctx); err != nil {
		return fmt.Errorf("failed to load formats: %w", err)
	}
	return nil
}

// initWatcher включает перезагрузку реестра при изменении файла форматов
func (c *Container) initWatcher(ctx context.Context) error {
	if !c.Config.FormatsWatch || c.Config.FormatsFile == "" {
		return nil
	}

	w, err := formats.NewWatcher(c.Config.FormatsFile, c.Registry, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create formats watcher: %w", err)
	}
	if c.Config.WatchDelay > 0 {
		w.SetDebounce(c.Config.WatchDelay)
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return fmt.Errorf("failed to watch formats file: %w", err)
	}
	c.Watcher = w
	return nil
}

// Close освобождает ресурсы. Повторный вызов ничего не делает.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	if c.Watcher != nil {
		c.Watcher.Stop()
	}
	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			return fmt.Errorf("failed to close formats database: %w", err)
		}
	}
	return nil
}
