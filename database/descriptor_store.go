package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"pcrimport/formats"

	_ "github.com/mattn/go-sqlite3"
)

// DescriptorStore хранилище описаний форматов в SQLite.
// Реализует formats.Source.
type DescriptorStore struct {
	conn   *sql.DB
	path   string
	logger *slog.Logger
}

// NewDescriptorStore открывает или создает БД форматов
func NewDescriptorStore(path string, logger *slog.Logger) (*DescriptorStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create formats database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open formats database: %w", err)
	}

	// В :memory: каждое соединение видит свою базу
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping formats database: %w", err)
	}

	if err := InitDescriptorSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize formats schema: %w", err)
	}

	return &DescriptorStore{conn: db, path: path, logger: logger}, nil
}

// InitDescriptorSchema создает таблицу описаний форматов
func InitDescriptorSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS format_descriptors (
		id TEXT PRIMARY KEY,
		body TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create format_descriptors table: %w", err)
	}
	return nil
}

// Name имя источника для журнала
func (s *DescriptorStore) Name() string {
	return "sqlite:" + s.path
}

// Close закрывает подключение
func (s *DescriptorStore) Close() error {
	return s.conn.Close()
}

// Descriptors читает все описания. Записи, которые не разбираются
// или не проходят проверку, пропускаются с предупреждением.
func (s *DescriptorStore) Descriptors(ctx context.Context) ([]formats.Descriptor, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT id, body FROM format_descriptors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query format descriptors: %w", err)
	}
	defer rows.Close()

	var out []formats.Descriptor
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("failed to scan format descriptor: %w", err)
		}
		d, err := formats.DecodeDescriptor([]byte(body))
		if err != nil {
			s.logger.Warn("Skipping malformed stored format", "id", id, "error", err)
			continue
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate format descriptors: %w", err)
	}
	return out, nil
}

// Save сохраняет описание формата, заменяя существующее с тем же ключом
func (s *DescriptorStore) Save(ctx context.Context, d formats.Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}
	body, err := formats.EncodeDescriptor(d)
	if err != nil {
		return fmt.Errorf("failed to marshal format descriptor: %w", err)
	}

	query := `
		INSERT INTO format_descriptors (id, body, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`
	if _, err := s.conn.ExecContext(ctx, query, formats.FoldIdentifier(d.ID), string(body), time.Now()); err != nil {
		return fmt.Errorf("failed to save format descriptor: %w", err)
	}
	return nil
}

// SaveRaw сохраняет тело записи без проверки. Нужен для импорта
// из внешних систем, проверка выполняется при чтении.
func (s *DescriptorStore) SaveRaw(ctx context.Context, id, body string) error {
	query := `
		INSERT INTO format_descriptors (id, body, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`
	if _, err := s.conn.ExecContext(ctx, query, formats.FoldIdentifier(id), body, time.Now()); err != nil {
		return fmt.Errorf("failed to save format descriptor: %w", err)
	}
	return nil
}

// Delete удаляет описание формата
func (s *DescriptorStore) Delete(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM format_descriptors WHERE id = ?`, formats.FoldIdentifier(id))
	if err != nil {
		return fmt.Errorf("failed to delete format descriptor: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %q", formats.ErrUnknownFormat, id)
	}
	return nil
}
