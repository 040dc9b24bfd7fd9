package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	var errors []string

	// Валидация порта
	if c.Port == "" {
		errors = append(errors, "port is required")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid port: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("port must be between 1 and 65535, got %d", port))
		}
	}

	// Валидация уровня логирования
	validLogLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	if c.LogLevel != "" {
		valid := false
		logLevelUpper := strings.ToUpper(c.LogLevel)
		for _, level := range validLogLevels {
			if logLevelUpper == level {
				valid = true
				break
			}
		}
		if !valid {
			errors = append(errors, fmt.Sprintf("invalid log level: %s (valid: %s)",
				c.LogLevel, strings.Join(validLogLevels, ", ")))
		}
	}

	// Реестр форматов
	if c.FormatsWatch && c.FormatsFile == "" {
		errors = append(errors, "formats watch requires FORMATS_FILE")
	}
	if c.WatchDelay < 0 {
		errors = append(errors, "formats watch delay cannot be negative")
	}

	// Порог уверенности распознавания
	if c.MinConfidence < 0 || c.MinConfidence > 100 {
		errors = append(errors, fmt.Sprintf("min confidence must be between 0 and 100, got %v", c.MinConfidence))
	}

	// Анализ
	if err := c.AnalysisConfig().Validate(); err != nil {
		errors = append(errors, err.Error())
	}

	// Загрузка файлов
	if c.MaxUploadMB < 1 {
		errors = append(errors, "max upload size must be at least 1 MB")
	}
	if c.UploadRatePerSec <= 0 {
		errors = append(errors, "upload rate must be positive")
	}
	if c.UploadBurst < 1 {
		errors = append(errors, "upload burst must be at least 1")
	}
	if c.UploadDir == "" {
		errors = append(errors, "upload dir is required")
	}
	if c.ShutdownTimeout < time.Second {
		errors = append(errors, "shutdown timeout must be at least 1 second")
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// GetDefaults возвращает конфигурацию со значениями по умолчанию
func GetDefaults() *Config {
	return &Config{
		Port:             "9999",
		LogLevel:         "INFO",
		WatchDelay:       300 * time.Millisecond,
		MinConfidence:    60,
		ControlTarget:    "RP",
		MaxUploadMB:      20,
		UploadRatePerSec: 5,
		UploadBurst:      10,
		UploadDir:        "uploads",
		ShutdownTimeout:  10 * time.Second,
	}
}
