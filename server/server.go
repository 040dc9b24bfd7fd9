package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pcrimport/internal/config"
	"pcrimport/server/handlers"
	"pcrimport/server/middleware"
)

// Dependencies компоненты, которые обслуживает HTTP сервер
type Dependencies struct {
	Importer handlers.Importer
	Formats  handlers.FormatCatalog
	Store    handlers.FormatStore // может быть nil
}

// Server HTTP сервер импорта выгрузок
type Server struct {
	config     *config.Config
	engine     *gin.Engine
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer создает сервер и регистрирует маршруты
func NewServer(cfg *config.Config, deps Dependencies, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	engine := gin.New()
	engine.Use(
		middleware.GinRecoveryMiddleware(logger),
		middleware.GinRequestIDMiddleware(),
		middleware.GinLoggerMiddleware(logger),
		middleware.GinGzipMiddleware(),
	)

	s := &Server{
		config: cfg,
		engine: engine,
		logger: logger,
	}
	s.setupRoutes(deps)

	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes(deps Dependencies) {
	imports := handlers.NewImportHandler(deps.Importer, s.config.UploadDir, s.config.MaxUploadBytes(), s.logger)
	formatsHandler := handlers.NewFormatsHandler(deps.Formats, deps.Store, s.logger)
	limiter := middleware.NewUploadLimiter(s.config.UploadRatePerSec, s.config.UploadBurst)

	s.engine.GET("/health", formatsHandler.Health)
	handlers.RegisterSwaggerRoutes(s.engine)

	api := s.engine.Group("/api")
	{
		upload := api.Group("", limiter.Middleware())
		upload.POST("/detect", imports.Detect)
		upload.POST("/extract", imports.Extract)
		upload.POST("/analyze", imports.Analyze)

		api.GET("/formats", formatsHandler.List)
		api.GET("/formats/:id", formatsHandler.Get)
		api.POST("/formats", formatsHandler.Create)
		api.POST("/formats/reload", formatsHandler.Reload)
	}
}

// Handler возвращает корневой обработчик, используется в тестах
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start запускает сервер и блокируется до его остановки
func (s *Server) Start() error {
	s.logger.Info("Server starting", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown останавливает сервер, дожидаясь завершения запросов
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Server shutting down")
	return s.httpServer.Shutdown(ctx)
}
