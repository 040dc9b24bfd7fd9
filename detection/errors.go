package detection

import "errors"

// ErrNoCandidate в реестре нет ни одного формата для оценки
var ErrNoCandidate = errors.New("no format candidate")
