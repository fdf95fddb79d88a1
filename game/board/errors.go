package board

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrInvalidCell       = errors.New("invalid cell")
	ErrInvalidShape      = errors.New("invalid shape")
	ErrDuplicate         = errors.New("duplicate")
	ErrCountMismatch     = errors.New("vehicle count mismatch")
	ErrMissingPrimary    = errors.New("missing primary")
	ErrExitMismatch      = errors.New("exit mismatch")
	ErrIllegalMove       = errors.New("illegal move")
)

// LoadError describes why a layout could not become a Board. It unwraps to
// one of the sentinel errors above.
type LoadError struct {
	Kind   error
	Symbol byte
	Detail string
}

func (e *LoadError) Error() string {
	if e.Symbol != 0 {
		return fmt.Sprintf("%v: vehicle %c: %s", e.Kind, e.Symbol, e.Detail)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
}

func (e *LoadError) Unwrap() error {
	return e.Kind
}

func loadErr(kind error, symbol byte, format string, args ...interface{}) *LoadError {
	return &LoadError{Kind: kind, Symbol: symbol, Detail: fmt.Sprintf(format, args...)}
}
