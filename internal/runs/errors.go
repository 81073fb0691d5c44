package runs

import "errors"

var (
	ErrNotFound = errors.New("scan run not found")
)
