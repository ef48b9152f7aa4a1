package glcm

import "errors"

// ErrInvalidInput is wrapped by every validation failure reported before any
// matrix is accumulated. Callers test for it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")
