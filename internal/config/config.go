package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"pcrimport/analysis"
)

// Config конфигурация сервиса импорта
type Config struct {
	// Сервер
	Port string `json:"port"`

	// Логирование
	LogLevel string `json:"log_level"`

	// Реестр форматов
	FormatsFile  string        `json:"formats_file"`
	FormatsDB    string        `json:"formats_db"`
	FormatsWatch bool          `json:"formats_watch"`
	WatchDelay   time.Duration `json:"watch_delay"`

	// Распознавание
	MinConfidence float64 `json:"min_confidence"`

	// Анализ планшета
	ControlTarget   string   `json:"control_target"`
	AnalysisTargets []string `json:"analysis_targets"`

	// Загрузка файлов
	MaxUploadMB      int           `json:"max_upload_mb"`
	UploadRatePerSec float64       `json:"upload_rate_per_sec"`
	UploadBurst      int           `json:"upload_burst"`
	UploadDir        string        `json:"upload_dir"`
	ShutdownTimeout  time.Duration `json:"shutdown_timeout"`
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	config := &Config{
		Port: getEnv("SERVER_PORT", "9999"),

		LogLevel: getEnv("LOG_LEVEL", "INFO"),

		FormatsFile:  os.Getenv("FORMATS_FILE"),
		FormatsDB:    os.Getenv("FORMATS_DB"),
		FormatsWatch: getEnv("FORMATS_WATCH", "false") == "true",
		WatchDelay:   getEnvDuration("FORMATS_WATCH_DELAY", 300*time.Millisecond),

		MinConfidence: getEnvFloat("MIN_CONFIDENCE", 60),

		ControlTarget:   getEnv("CONTROL_TARGET", "RP"),
		AnalysisTargets: getEnvList("ANALYSIS_TARGETS"),

		MaxUploadMB:      getEnvInt("MAX_UPLOAD_MB", 20),
		UploadRatePerSec: getEnvFloat("UPLOAD_RATE_PER_SEC", 5),
		UploadBurst:      getEnvInt("UPLOAD_BURST", 10),
		UploadDir:        getEnv("UPLOAD_DIR", os.TempDir()),
		ShutdownTimeout:  getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	// Валидация
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// AnalysisConfig параметры анализа планшета с учётом переопределений
func (c *Config) AnalysisConfig() analysis.Config {
	cfg := analysis.DefaultConfig()
	if c.ControlTarget != "" {
		cfg.ControlTarget = c.ControlTarget
	}
	if len(c.AnalysisTargets) > 0 {
		cfg.Targets = append([]string(nil), c.AnalysisTargets...)
	}
	return cfg
}

// SlogLevel уровень логирования для slog
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MaxUploadBytes ограничение размера загружаемого файла
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat получает переменную окружения как float64 или возвращает значение по умолчанию
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как Duration или возвращает значение по умолчанию
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvList список через запятую, пустые элементы отбрасываются
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
