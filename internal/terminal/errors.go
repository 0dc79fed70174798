package terminal

import (
	"errors"
	"fmt"
)

var (
	ErrSymbolNotFound   = errors.New("symbol not found")
	ErrSymbolNotVisible = errors.New("symbol cannot be made visible")
	ErrNoData           = errors.New("no data")
)

// Error is a failure reported by the terminal together with its last-error code.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("terminal error %d", e.Code)
	}
	return fmt.Sprintf("terminal error %d: %s", e.Code, e.Message)
}

// Code extracts the terminal error code from err, or 0 when err carries none.
func Code(err error) int {
	var te *Error
	if errors.As(err, &te) {
		return te.Code
	}
	return 0
}
