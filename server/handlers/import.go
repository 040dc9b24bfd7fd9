package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pcrimport/detection"
	"pcrimport/importer"
	"pcrimport/internal/application/pipeline"
	apperrors "pcrimport/server/errors"
)

// Importer конвейер импорта выгрузок
type Importer interface {
	Detect(ctx context.Context, req pipeline.Request) (*detection.Result, error)
	Extract(ctx context.Context, req pipeline.Request) (*pipeline.Report, error)
	Process(ctx context.Context, req pipeline.Request) (*pipeline.Report, error)
}

// ImportHandler принимает файлы выгрузок
type ImportHandler struct {
	importer  Importer
	uploadDir string
	maxBytes  int64
	logger    *slog.Logger
}

// NewImportHandler создает обработчик загрузок
func NewImportHandler(importer Importer, uploadDir string, maxBytes int64, logger *slog.Logger) *ImportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if uploadDir == "" {
		uploadDir = os.TempDir()
	}
	return &ImportHandler{
		importer:  importer,
		uploadDir: uploadDir,
		maxBytes:  maxBytes,
		logger:    logger,
	}
}

// Detect POST /api/detect
// @Summary Определить формат выгрузки
// @Description Сканирует файл и ранжирует известные форматы по уверенности
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Выгрузка xlsx или xls"
// @Param format formData string false "Принудительный формат"
// @Param sheet formData string false "Имя листа"
// @Param kind formData string false "Вариант файла: auto, xlsx, xls"
// @Success 200 {object} detection.Result "Результат определения"
// @Failure 400 {object} ErrorResponse "Файл не прочитан или неверные параметры"
// @Failure 404 {object} ErrorResponse "Неизвестный формат"
// @Failure 413 {object} ErrorResponse "Файл слишком большой"
// @Failure 422 {object} ErrorResponse "Файл не подходит ни под один формат"
// @Failure 429 {object} ErrorResponse "Слишком много загрузок"
// @Router /api/detect [post]
func (h *ImportHandler) Detect(c *gin.Context) {
	req, cleanup, err := h.receive(c)
	if err != nil {
		SendJSONError(c, h.logger, err)
		return
	}
	defer cleanup()

	result, err := h.importer.Detect(c.Request.Context(), req)
	if err != nil {
		SendJSONError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Extract POST /api/extract
// @Summary Извлечь строки выгрузки
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Выгрузка xlsx или xls"
// @Param format formData string false "Принудительный формат"
// @Param sheet formData string false "Имя листа"
// @Param kind formData string false "Вариант файла: auto, xlsx, xls"
// @Param accept_empty formData bool false "Допускать файл без строк"
// @Success 200 {object} pipeline.Report "Нормализованные строки"
// @Failure 400 {object} ErrorResponse "Файл не прочитан или неверные параметры"
// @Failure 404 {object} ErrorResponse "Неизвестный формат"
// @Failure 413 {object} ErrorResponse "Файл слишком большой"
// @Failure 422 {object} ErrorResponse "Файл не подходит ни под один формат"
// @Failure 429 {object} ErrorResponse "Слишком много загрузок"
// @Router /api/extract [post]
func (h *ImportHandler) Extract(c *gin.Context) {
	h.report(c, func(ctx context.Context, req pipeline.Request) (*pipeline.Report, error) {
		return h.importer.Extract(ctx, req)
	})
}

// Analyze POST /api/analyze
// @Summary Извлечь строки и проанализировать планшет
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Выгрузка xlsx или xls"
// @Param format formData string false "Принудительный формат"
// @Param sheet formData string false "Имя листа"
// @Param kind formData string false "Вариант файла: auto, xlsx, xls"
// @Param accept_empty formData bool false "Допускать файл без строк"
// @Param well_map formData string false "JSON объект лунка -> образец"
// @Success 200 {object} pipeline.Report "Строки и результаты анализа"
// @Failure 400 {object} ErrorResponse "Файл не прочитан или неверные параметры"
// @Failure 404 {object} ErrorResponse "Неизвестный формат"
// @Failure 413 {object} ErrorResponse "Файл слишком большой"
// @Failure 422 {object} ErrorResponse "Файл не подходит ни под один формат"
// @Failure 429 {object} ErrorResponse "Слишком много загрузок"
// @Router /api/analyze [post]
func (h *ImportHandler) Analyze(c *gin.Context) {
	h.report(c, func(ctx context.Context, req pipeline.Request) (*pipeline.Report, error) {
		return h.importer.Process(ctx, req)
	})
}

func (h *ImportHandler) report(c *gin.Context, run func(context.Context, pipeline.Request) (*pipeline.Report, error)) {
	req, cleanup, err := h.receive(c)
	if err != nil {
		SendJSONError(c, h.logger, err)
		return
	}
	defer cleanup()

	report, err := run(c.Request.Context(), req)
	if err != nil {
		SendJSONError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// receive сохраняет загруженный файл и разбирает параметры формы.
// cleanup удаляет временный файл.
func (h *ImportHandler) receive(c *gin.Context) (pipeline.Request, func(), error) {
	noop := func() {}
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	}

	file, err := c.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			return pipeline.Request{}, noop, &apperrors.AppError{
				Code:    http.StatusRequestEntityTooLarge,
				Message: fmt.Sprintf("file exceeds %d bytes", h.maxBytes),
				Kind:    "too_large",
				Err:     err,
			}
		}
		return pipeline.Request{}, noop, apperrors.NewValidationError("multipart field \"file\" is required", err)
	}

	req, err := parseForm(c)
	if err != nil {
		return pipeline.Request{}, noop, err
	}

	path, err := h.save(c, file)
	if err != nil {
		return pipeline.Request{}, noop, err
	}
	req.Path = path
	req.FileName = filepath.Base(file.Filename)

	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			h.logger.Warn("Failed to remove upload", "path", path, "error", err)
		}
	}
	return req, cleanup, nil
}

func (h *ImportHandler) save(c *gin.Context, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	path := filepath.Join(h.uploadDir, uuid.New().String()+ext)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", apperrors.NewInternalError("failed to save upload", err)
	}
	return path, nil
}

func parseForm(c *gin.Context) (pipeline.Request, error) {
	req := pipeline.Request{
		Sheet:    strings.TrimSpace(c.PostForm("sheet")),
		FormatID: strings.TrimSpace(c.PostForm("format")),
	}

	kind, err := importer.ParseFileKind(c.PostForm("kind"))
	if err != nil {
		return req, apperrors.NewValidationError("invalid kind", err)
	}
	req.Kind = kind

	if raw := c.PostForm("accept_empty"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return req, apperrors.NewValidationError("accept_empty must be a boolean", err)
		}
		req.AcceptEmpty = v
	}

	if raw := strings.TrimSpace(c.PostForm("well_map")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.WellMap); err != nil {
			return req, apperrors.NewValidationError("well_map must be a JSON object of well to sample", err)
		}
	}
	return req, nil
}
