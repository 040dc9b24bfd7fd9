// @title PCR Import API
// @version 1.0
// @description Импорт выгрузок амплификаторов: определение формата, извлечение CT, анализ планшета.

// @BasePath /
// @schemes http https

package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"pcrimport/internal/config"
	"pcrimport/internal/container"
	"pcrimport/server"
	"pcrimport/server/handlers"
)

func main() {
	// .env необязателен
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger := server.NewLogger(cfg.SlogLevel(), os.Stdout)
	if cfg.SlogLevel() != slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Не удалось создать каталог загрузок %s: %v", cfg.UploadDir, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := container.NewContainer(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Ошибка инициализации: %v", err)
	}
	defer c.Close()

	srv := server.NewServer(cfg, server.Dependencies{
		Importer: c.UseCase,
		Formats:  c.Registry,
		Store:    storeOrNil(c),
	}, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}

// storeOrNil не даёт nil-указателю попасть в интерфейс
func storeOrNil(c *container.Container) handlers.FormatStore {
	if c.Store == nil {
		return nil
	}
	return c.Store
}
