package extractors

import "errors"

var (
	// ErrMissingRequiredColumn у формата нет колонки лунки или CT, либо колонка вне листа
	ErrMissingRequiredColumn = errors.New("missing required column")
	// ErrIncompleteFile обязательная колонка мишени пуста во всех строках
	ErrIncompleteFile = errors.New("incomplete file")
)
