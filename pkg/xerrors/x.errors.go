package xerrors

import "errors"

// Generic
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input provided")
)

// Dataset
var (
	ErrInvalidRecord = errors.New("invalid country record")
	ErrUnknownField  = errors.New("unknown lookup field")
)

// ParamError reports which query parameter failed to parse.
type ParamError struct {
	Param string
	Value string
}

func (e *ParamError) Error() string {
	return "invalid value for " + e.Param + ": " + e.Value
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidInput
}
