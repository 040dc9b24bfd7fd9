package importer

import "errors"

// Ошибки структурного сканера
var (
	// ErrUnreadableFile файл не удалось открыть ни в одном из поддерживаемых форматов
	ErrUnreadableFile = errors.New("unreadable spreadsheet file")
	// ErrNoHeaderFound в первых строках листа не найдена строка заголовков
	ErrNoHeaderFound = errors.New("no header row found")
)
