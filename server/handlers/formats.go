package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pcrimport/formats"
	apperrors "pcrimport/server/errors"
)

const maxDescriptorBytes = 1 << 20

// FormatCatalog реестр форматов
type FormatCatalog interface {
	Descriptors() []formats.Descriptor
	Get(id string) (formats.Descriptor, bool)
	Register(d formats.Descriptor) error
	Reload(ctx context.Context) error
}

// FormatStore постоянное хранилище форматов, добавленных через API
type FormatStore interface {
	Save(ctx context.Context, d formats.Descriptor) error
}

// FormatListResponse ответ со списком форматов
type FormatListResponse struct {
	Formats []formats.Descriptor `json:"formats"`
	Count   int                  `json:"count"`
}

// ReloadResponse ответ перезагрузки реестра
type ReloadResponse struct {
	Count int `json:"count"`
}

// HealthResponse ответ проверки состояния
type HealthResponse struct {
	Status  string `json:"status"`
	Formats int    `json:"formats"`
}

// FormatsHandler управление реестром форматов
type FormatsHandler struct {
	catalog FormatCatalog
	store   FormatStore
	logger  *slog.Logger
}

// NewFormatsHandler создает обработчик. store может быть nil:
// тогда форматы из API живут до перезапуска.
func NewFormatsHandler(catalog FormatCatalog, store FormatStore, logger *slog.Logger) *FormatsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FormatsHandler{catalog: catalog, store: store, logger: logger}
}

// List GET /api/formats
// @Summary Список форматов
// @Description Возвращает встроенные и пользовательские форматы выгрузок
// @Tags formats
// @Produce json
// @Success 200 {object} FormatListResponse "Форматы"
// @Router /api/formats [get]
func (h *FormatsHandler) List(c *gin.Context) {
	descriptors := h.catalog.Descriptors()
	c.JSON(http.StatusOK, FormatListResponse{Formats: descriptors, Count: len(descriptors)})
}

// Get GET /api/formats/:id
// @Summary Описание формата
// @Tags formats
// @Produce json
// @Param id path string true "Идентификатор формата"
// @Success 200 {object} formats.Descriptor "Формат"
// @Failure 404 {object} ErrorResponse "Формат не найден"
// @Router /api/formats/{id} [get]
func (h *FormatsHandler) Get(c *gin.Context) {
	id := c.Param("id")
	d, ok := h.catalog.Get(id)
	if !ok {
		SendJSONError(c, h.logger, apperrors.NewNotFoundError("unknown format "+id, formats.ErrUnknownFormat))
		return
	}
	c.JSON(http.StatusOK, d)
}

// Create POST /api/formats
// @Summary Добавить формат
// @Description Проверяет описание формата, сохраняет его в хранилище и регистрирует в реестре
// @Tags formats
// @Accept json
// @Produce json
// @Param descriptor body formats.Descriptor true "Описание формата"
// @Success 201 {object} formats.Descriptor "Зарегистрированный формат"
// @Failure 400 {object} ErrorResponse "Неверное описание"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/formats [post]
func (h *FormatsHandler) Create(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxDescriptorBytes))
	if err != nil {
		SendJSONError(c, h.logger, apperrors.NewValidationError("failed to read body", err))
		return
	}
	d, err := formats.DecodeDescriptor(body)
	if err != nil {
		SendJSONError(c, h.logger, apperrors.NewValidationError("invalid format descriptor", err))
		return
	}

	if h.store != nil {
		if err := h.store.Save(c.Request.Context(), d); err != nil {
			SendJSONError(c, h.logger, apperrors.NewInternalError("failed to persist format", err))
			return
		}
	}
	if err := h.catalog.Register(d); err != nil {
		SendJSONError(c, h.logger, apperrors.NewValidationError("invalid format descriptor", err))
		return
	}

	h.logger.Info("Format added via API", "id", d.ID, "persisted", h.store != nil)
	c.JSON(http.StatusCreated, d)
}

// Reload POST /api/formats/reload
// @Summary Перечитать источники форматов
// @Tags formats
// @Produce json
// @Success 200 {object} ReloadResponse "Число форматов после перезагрузки"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/formats/reload [post]
func (h *FormatsHandler) Reload(c *gin.Context) {
	if err := h.catalog.Reload(c.Request.Context()); err != nil {
		SendJSONError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ReloadResponse{Count: len(h.catalog.Descriptors())})
}

// Health GET /health
// @Summary Проверка состояния
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse "Сервер работает"
// @Router /health [get]
func (h *FormatsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Formats: len(h.catalog.Descriptors())})
}
